package suggest

import (
	"fmt"
	"strings"

	"github.com/pinstackapp/pinstack-server/internal/domain"
)

// buildPrompt renders the categorization prompt: item details, the current
// board hierarchy as an indented tree, placement rules, and the required
// JSON output shape.
func buildPrompt(req Request) string {
	tags := "no tags"
	if len(req.Tags) > 0 {
		tags = strings.Join(req.Tags, ", ")
	}

	hierarchy := "No existing boards."
	if lines := formatHierarchy(req.Hierarchy, 0); len(lines) > 0 {
		hierarchy = strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString("You are a media categorization assistant. Decide the best board placement for one item.\n\n")

	b.WriteString("ITEM:\n")
	fmt.Fprintf(&b, "- Description: %s\n", req.Description)
	fmt.Fprintf(&b, "- Tags: %s\n\n", tags)

	b.WriteString("CURRENT BOARD HIERARCHY:\n")
	b.WriteString(hierarchy)
	b.WriteString("\n\n")

	b.WriteString(`PLACEMENT RULES:
1. Prefer an existing board when the item clearly fits it.
2. Never place an item in a generic board when a more specific sub-board exists.
3. When a specific category is needed but only a generic parent exists, create a sub-board under it.
4. Use root boards only for truly generic content.

Respond with a single JSON object and nothing else:
{
  "action": "add_to_existing" | "create_new",
  "board_id": "<board id>" or null,
  "confidence": <float 0-1>,
  "reasoning": "<brief explanation>",
  "suggested_boards": ["<alternative board ids>"],
  "new_board": {"name": "<name>", "description": "<what belongs here>", "parent_id": "<board id>" or null}
}
`)

	return b.String()
}

// formatHierarchy renders nodes as an indented visual tree, one board per line.
func formatHierarchy(nodes []*domain.Node, indent int) []string {
	var out []string

	prefix := strings.Repeat("  ", indent)
	arrow := ""
	if indent > 0 {
		arrow = "└─ "
	}

	for _, node := range nodes {
		line := fmt.Sprintf("%s%s[ID: %s] %s", prefix, arrow, node.ID, node.Name)
		if node.Description != "" {
			line += " - " + node.Description
		}
		out = append(out, line)
		out = append(out, formatHierarchy(node.Children, indent+1)...)
	}

	return out
}
