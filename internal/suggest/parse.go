package suggest

import (
	"encoding/json/v2"
	"fmt"
	"strings"

	domainerrors "github.com/pinstackapp/pinstack-server/internal/errors"
)

// parseDecision extracts a Decision from raw model output. Models wrap JSON
// in prose and markdown fences despite instructions, so the first balanced
// object in the text is taken. Errors out rather than returning a partial
// decision.
func parseDecision(content string) (*Decision, error) {
	raw, ok := extractJSON(content)
	if !ok {
		return nil, domainerrors.SuggestionUnavailable("no JSON object in model output")
	}

	var d Decision
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, domainerrors.SuggestionUnavailable("malformed decision JSON").WithCause(err)
	}

	switch d.Action {
	case ActionAddToExisting:
		// Some responses fill board_id instead of suggested_boards; fold it in.
		if d.BoardID != "" && !contains(d.BoardIDs, d.BoardID) {
			d.BoardIDs = append([]string{d.BoardID}, d.BoardIDs...)
		}
		if len(d.BoardIDs) == 0 {
			return nil, domainerrors.SuggestionUnavailable("add_to_existing decision names no boards")
		}
	case ActionCreateNew:
		if d.NewBoard == nil || strings.TrimSpace(d.NewBoard.Name) == "" {
			return nil, domainerrors.SuggestionUnavailable("create_new decision has no board name")
		}
	default:
		return nil, domainerrors.SuggestionUnavailable(fmt.Sprintf("unknown decision action %q", d.Action))
	}

	return &d, nil
}

// extractJSON returns the first balanced {...} object in the text, tracking
// string literals so braces inside values do not confuse the depth count.
func extractJSON(content string) (string, bool) {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		c := content[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}

	return "", false
}

func contains(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
