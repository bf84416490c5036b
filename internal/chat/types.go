package chat

// Message is a Rocket.Chat incoming-webhook message.
type Message struct {
	IconURL     string       `json:"icon_url,omitempty"`
	Alias       string       `json:"alias,omitempty"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is a card rendered below the message text.
type Attachment struct {
	AuthorIcon string  `json:"author_icon"`
	AuthorName string  `json:"author_name"`
	AuthorLink string  `json:"author_link"`
	Color      string  `json:"color,omitempty"`
	Fields     []Field `json:"fields"`
}

// Field is one labeled row of an attachment.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Envelope is the reply of the webhook endpoint: either Content or Error is set.
type Envelope struct {
	Content *Message    `json:"content,omitempty"`
	Error   *ErrorReply `json:"error,omitempty"`
}

// ErrorReply reports a payload that could not be turned into a message.
type ErrorReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success wraps a message.
func Success(msg *Message) Envelope {
	return Envelope{Content: msg}
}

// Failure wraps an error text.
func Failure(text string) Envelope {
	return Envelope{Error: &ErrorReply{Success: false, Message: text}}
}
