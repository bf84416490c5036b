package notify

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gi8lino/jirahook/internal/chat"
	"github.com/gi8lino/jirahook/internal/jira"
)

// Rocket.Chat emoji shortcodes prefixed to the message text.
const (
	emojiCreated  = ":new: "
	emojiDeleted  = ":heavy_multiplication_x: "
	emojiChanged  = ":arrows_counterclockwise: "
	emojiResolved = ":white_check_mark: "
	emojiReopened = ":triangular_flag_on_post: "
	emojiComment  = ":speech_balloon: "
)

const (
	// AlertColor marks attachments of Blocker issues.
	AlertColor = "#FF0000"
	// DefaultDescriptionMaxLength is the truncation limit for descriptions and comments.
	DefaultDescriptionMaxLength = 140

	blockerPriority = "Blocker"
)

// Options controls which events produce a message and what it shows.
type Options struct {
	BlockerOnly          bool // notify updates only when priority became Blocker
	ShowDescription      bool // show the description on every message, not only when it changed
	DebugOnChannel       bool // attach the raw payload to the message
	DebugOnLog           bool // log the raw payload
	DescriptionMaxLength int  // truncation limit, DefaultDescriptionMaxLength if <= 0
}

// Builder turns Jira webhook events into chat messages. It holds no per-event state.
type Builder struct {
	opts   Options
	logger *slog.Logger
}

// NewBuilder returns a Builder for the given options.
func NewBuilder(opts Options, logger *slog.Logger) *Builder {
	if opts.DescriptionMaxLength <= 0 {
		opts.DescriptionMaxLength = DefaultDescriptionMaxLength
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{opts: opts, logger: logger}
}

// Options returns the effective options.
func (b *Builder) Options() Options { return b.opts }

// draft accumulates the message while an event passes through the pipeline.
type draft struct {
	emoji         string
	body          string // text without emoji; empty means no text
	fields        []chat.Field
	becameBlocker bool
}

func (d *draft) add(title, value string, short bool) {
	d.fields = append(d.fields, chat.Field{Title: title, Value: value, Short: short})
}

func (d *draft) setText(emoji, body string) {
	d.emoji = emoji
	d.body = body
}

func (d *draft) text() string {
	if d.body == "" {
		return ""
	}
	return d.emoji + d.body
}

// Build returns the message for ev, or nil if the event does not warrant one.
// Malformed payloads yield a *BuildError.
func (b *Builder) Build(ev *jira.Event) (msg *chat.Message, err error) {
	if ev == nil || ev.Issue == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			msg, err = nil, newBuildError(fmt.Errorf("%v", r), ev)
		}
	}()

	msg, err = b.build(ev)
	if err != nil {
		return nil, newBuildError(err, ev)
	}
	return msg, nil
}

func (b *Builder) build(ev *jira.Event) (*chat.Message, error) {
	issue := ev.Issue
	if ev.User == nil {
		return nil, errors.New("event has no user")
	}
	issueType := issue.Fields.IssueType
	if issueType == nil {
		return nil, errors.New("issue has no issuetype")
	}
	origin, err := jira.Origin(issue.Self)
	if err != nil {
		return nil, err
	}

	issueURL := jira.BrowseURL(origin, issue.Key)
	ref := issueType.Name + " " + issueLink(issue.Key, issueURL)
	actor := ev.User.DisplayName

	attachment := chat.Attachment{
		AuthorIcon: issueType.IconURL,
		AuthorName: issue.Fields.Summary,
		AuthorLink: issueURL,
	}
	if p := issue.Fields.Priority; p != nil && p.Name == blockerPriority {
		attachment.Color = AlertColor
	}

	d := &draft{}
	skip := scanChanges(ev.Changelog)
	existingFields(d, issue.Fields, skip)

	kind := ev.Kind()
	switch kind {
	case jira.EventIssueCreated:
		d.setText(emojiCreated, actor+" created "+ref)
	case jira.EventIssueDeleted:
		d.setText(emojiDeleted, actor+" deleted "+ref)
	case jira.EventIssueUpdated:
		if err := b.updated(d, ev, actor, ref, skip); err != nil {
			return nil, err
		}
	}

	hasContent := d.body != "" || len(d.fields) > 0

	if b.opts.DebugOnChannel {
		d.add("Request", string(ev.Raw()), false)
	}
	if b.opts.DebugOnLog {
		b.logger.Info("jira webhook payload", "event", kind, "payload", string(ev.Raw()))
	}

	if !hasContent || !b.notifies(kind, d.becameBlocker) {
		return nil, nil
	}

	attachment.Fields = d.fields
	return &chat.Message{
		IconURL:     ev.User.Avatar(),
		Alias:       ev.User.Name,
		Text:        d.text(),
		Attachments: []chat.Attachment{attachment},
	}, nil
}

// existingFields adds the current reporter, assignee and priority unless the changelog covers them.
func existingFields(d *draft, f jira.Fields, skip suppressed) {
	if !skip.reporter && f.Reporter != nil {
		d.add("Reporter", f.Reporter.DisplayName, true)
	}
	if !skip.assignee && f.Assignee != nil {
		d.add("Assignee", f.Assignee.DisplayName, true)
	}
	if !skip.priority && f.Priority != nil {
		d.add("Priority", StripPriorityPrefix(f.Priority.Name), true)
	}
}

// updated handles changelog, description and comment of an update event.
func (b *Builder) updated(d *draft, ev *jira.Event, actor, ref string, skip suppressed) error {
	if cl := ev.Changelog; cl != nil && cl.Items != nil {
		body := actor + " changed " + ref

		phrase, emoji, err := firstTransition(groupChanges(cl.Items))
		if err != nil {
			return err
		}
		body += phrase

		for _, change := range cl.Items {
			emoji = nextChangeEmoji(emoji)
			b.changedField(d, change)
		}
		d.setText(emoji, body)
	}

	if desc := ev.Issue.Fields.Description; b.opts.ShowDescription && !skip.description && desc != "" {
		d.add("Description", Truncate(desc, b.opts.DescriptionMaxLength), true)
	}

	if c := ev.Comment; c != nil {
		action := "Commented"
		if c.Edited() {
			action = "Updated comment"
		}
		d.setText(emojiComment, actor+" "+action+" "+ref)
		d.add(action, Truncate(c.Body, b.opts.DescriptionMaxLength), true)
	}
	return nil
}

// nextChangeEmoji switches to the refresh icon on the first item and to the checkmark afterwards.
func nextChangeEmoji(current string) string {
	if current == "" {
		return emojiChanged
	}
	return emojiResolved
}

// changedField adds the row for one changelog item.
func (b *Builder) changedField(d *draft, change jira.ChangelogItem) {
	if change.Field == "description" && !b.opts.ShowDescription {
		d.add("Changed: description", Truncate(change.ToString, b.opts.DescriptionMaxLength), true)
		return
	}
	if change.To == nil {
		return // cleared
	}
	if b.opts.BlockerOnly && change.Field == "priority" && change.ToString == blockerPriority {
		d.becameBlocker = true
	}
	d.add("Changed: "+CapitalizeFirst(change.Field), change.ToString, true)
}

// notifies applies the final gate for an event kind.
func (b *Builder) notifies(kind string, becameBlocker bool) bool {
	switch kind {
	case jira.EventIssueCreated, jira.EventIssueDeleted:
		return true
	case jira.EventIssueUpdated:
		return !b.opts.BlockerOnly || becameBlocker
	default:
		return false
	}
}
