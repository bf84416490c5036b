package jira

import "encoding/json"

// Event tags sent by Jira in the webhookEvent field.
const (
	EventIssueCreated = "jira:issue_created"
	EventIssueUpdated = "jira:issue_updated"
	EventIssueDeleted = "jira:issue_deleted"
)

// Event is a single Jira webhook delivery.
type Event struct {
	WebhookEvent string     `json:"webhookEvent"`
	Timestamp    int64      `json:"timestamp,omitempty"`
	Issue        *Issue     `json:"issue,omitempty"`
	User         *User      `json:"user,omitempty"`
	Changelog    *Changelog `json:"changelog,omitempty"`
	Comment      *Comment   `json:"comment,omitempty"`

	raw []byte // bytes the event was parsed from, if any
}

// Issue represents the issue an event refers to
type Issue struct {
	ID     string `json:"id,omitempty"`
	Self   string `json:"self"` // REST resource URL
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields represents the inner fields of a JIRA issue used for notifications
type Fields struct {
	Summary     string     `json:"summary"`
	IssueType   *IssueType `json:"issuetype,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`    // nullable
	Description string     `json:"description,omitempty"` // free text
	Reporter    *User      `json:"reporter,omitempty"`    // nullable
	Assignee    *User      `json:"assignee,omitempty"`    // nullable
}

// IssueType represents the issuetype field of the issue
type IssueType struct {
	Name    string `json:"name"`
	IconURL string `json:"iconUrl"`
}

// Priority represents the priority field, e.g. "1. Blocker"
type Priority struct {
	Name string `json:"name"`
}

// User represents the actor, reporter or assignee
type User struct {
	DisplayName string            `json:"displayName"`
	Name        string            `json:"name,omitempty"` // login
	AvatarURLs  map[string]string `json:"avatarUrls,omitempty"`
}

// Avatar returns the 48x48 avatar URL, or "" if unknown.
func (u *User) Avatar() string {
	if u == nil {
		return ""
	}
	return u.AvatarURLs["48x48"]
}

// Changelog lists the field changes of an update event.
type Changelog struct {
	ID    string          `json:"id,omitempty"`
	Items []ChangelogItem `json:"items"`
}

// ChangelogItem is one field-level change. To is nil when the field was cleared.
type ChangelogItem struct {
	Field      string  `json:"field"`
	FieldType  string  `json:"fieldtype"`
	From       *string `json:"from"`
	FromString string  `json:"fromString"`
	To         *string `json:"to"`
	ToString   string  `json:"toString"`
}

// Key returns the composite "fieldtype:field" key of the item.
func (c ChangelogItem) Key() string {
	return c.FieldType + ":" + c.Field
}

// Comment is present on comment-related update events.
type Comment struct {
	Body    string `json:"body"`
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// Edited reports whether the comment was changed after creation.
func (c *Comment) Edited() bool {
	return c.Created != c.Updated
}

// Raw returns the payload the event was parsed from.
// Events built in code are serialized on demand.
func (e *Event) Raw() []byte {
	if e == nil {
		return []byte("null")
	}
	if len(e.raw) > 0 {
		return e.raw
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}
