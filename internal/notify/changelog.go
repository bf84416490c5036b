package notify

import (
	"fmt"

	"github.com/gi8lino/jirahook/internal/jira"
)

// changeGroups maps "fieldtype:field" to the last item seen for that key.
// Keys keep the order in which they first appeared.
type changeGroups struct {
	keys  []string
	items map[string]jira.ChangelogItem
}

// groupChanges builds the ordered lookup over items.
func groupChanges(items []jira.ChangelogItem) changeGroups {
	g := changeGroups{items: make(map[string]jira.ChangelogItem, len(items))}
	for _, item := range items {
		key := item.Key()
		if _, seen := g.items[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.items[key] = item
	}
	return g
}

// get returns the item stored for key.
func (g changeGroups) get(key string) (jira.ChangelogItem, bool) {
	item, ok := g.items[key]
	return item, ok
}

// transition renders a phrase for a known change and returns the emoji it implies.
type transition func(item jira.ChangelogItem, groups changeGroups) (phrase, emoji string, err error)

// transitions lists the special changes. Only the first match in group order applies.
var transitions = map[string]transition{
	"jira:resolution": resolutionTransition,
}

// resolutionTransition describes a resolution change via its paired status change.
func resolutionTransition(item jira.ChangelogItem, groups changeGroups) (string, string, error) {
	emoji := emojiResolved
	if item.To == nil {
		emoji = emojiReopened
	}
	status, ok := groups.get("jira:status")
	if !ok {
		return "", "", fmt.Errorf("resolution changed without a status change")
	}
	return fmt.Sprintf(` from "%s" to "%s"`, status.FromString, status.ToString), emoji, nil
}

// firstTransition applies the first known transition found in group order.
func firstTransition(groups changeGroups) (phrase, emoji string, err error) {
	for _, key := range groups.keys {
		fn, ok := transitions[key]
		if !ok {
			continue
		}
		item, _ := groups.get(key)
		return fn(item, groups)
	}
	return "", "", nil
}

// suppressed records which existing-value fields a changelog replaces.
type suppressed struct {
	reporter    bool
	assignee    bool
	priority    bool
	description bool
}

// scanChanges marks tracked fields that appear in the changelog.
func scanChanges(cl *jira.Changelog) suppressed {
	var s suppressed
	if cl == nil {
		return s
	}
	for _, item := range cl.Items {
		switch item.Field {
		case "reporter":
			s.reporter = true
		case "assignee":
			s.assignee = true
		case "priority":
			s.priority = true
		case "description":
			s.description = true
		}
	}
	return s
}
