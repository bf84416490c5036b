package jira

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	restSuffix = regexp.MustCompile(`/rest/.*$`)
	urlShape   = regexp.MustCompile(`^(\w+://)?([^/]+)(.*)$`)
)

// ParseEvent decodes a webhook body and keeps the raw bytes for diagnostics.
func ParseEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}
	ev.raw = append([]byte(nil), data...)
	return &ev, nil
}

// Kind returns the event tag with the "jira:" prefix, whichever form was sent.
func (e *Event) Kind() string {
	if e.WebhookEvent == "" || strings.HasPrefix(e.WebhookEvent, "jira:") {
		return e.WebhookEvent
	}
	return "jira:" + e.WebhookEvent
}

// IssueKey returns the key of the referenced issue, or "" if there is none.
func (e *Event) IssueKey() string {
	if e == nil || e.Issue == nil {
		return ""
	}
	return e.Issue.Key
}

// BaseURL strips the trailing "/rest/..." part from an issue self link.
// Links without a REST suffix are returned unchanged.
func BaseURL(self string) string {
	return restSuffix.ReplaceAllString(self, "")
}

// Origin returns scheme and host of a self link, e.g. "https://jira.example.com".
func Origin(self string) (string, error) {
	m := urlShape.FindStringSubmatch(self)
	if m == nil {
		return "", fmt.Errorf("cannot parse issue url %q", self)
	}
	return m[1] + m[2], nil
}

// BrowseURL returns the browsable URL of an issue.
func BrowseURL(origin, key string) string {
	return origin + "/browse/" + key
}
