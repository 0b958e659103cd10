package actionitem

import (
	"regexp"
	"strings"
)

// Item is one parsed action item from the generated tasks text.
type Item struct {
	Text     string `json:"text"`
	Owner    string `json:"owner,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

var (
	bulletRe   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	ownerRe    = regexp.MustCompile(`\(@([^)]+)\)`)
	deadlineRe = regexp.MustCompile(`\[([^\]]+)\]`)
)

// Parse splits the line-oriented tasks text into discrete items. Lines
// starting with a bullet marker become items; "(@owner)" and "[deadline]"
// annotations are lifted out of the item text when present. Non-bullet
// lines are ignored.
func Parse(text string) []Item {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		m := bulletRe.FindString(line)
		if m == "" {
			continue
		}
		body := strings.TrimSpace(line[len(m):])
		if body == "" {
			continue
		}

		item := Item{}
		if om := ownerRe.FindStringSubmatch(body); om != nil {
			item.Owner = strings.TrimSpace(om[1])
			body = strings.Replace(body, om[0], "", 1)
		}
		if dm := deadlineRe.FindStringSubmatch(body); dm != nil {
			item.Deadline = strings.TrimSpace(dm[1])
			body = strings.Replace(body, dm[0], "", 1)
		}
		item.Text = strings.Join(strings.Fields(body), " ")
		if item.Text == "" && item.Owner == "" && item.Deadline == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
