package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinstackapp/pinstack-server/internal/domain"
)

func TestBuildPromptIncludesHierarchy(t *testing.T) {
	req := Request{
		Description: "a red sports car on a racetrack",
		Tags:        []string{"car", "red", "racing"},
		Hierarchy: []*domain.Node{
			{
				ID:   "board-nature",
				Name: "Nature",
				Children: []*domain.Node{
					{ID: "board-landscapes", Name: "Landscapes", Description: "Wide scenic shots", ParentID: "board-nature"},
				},
			},
		},
	}

	prompt := buildPrompt(req)

	assert.Contains(t, prompt, "a red sports car on a racetrack")
	assert.Contains(t, prompt, "car, red, racing")
	assert.Contains(t, prompt, "[ID: board-nature] Nature")
	assert.Contains(t, prompt, "  └─ [ID: board-landscapes] Landscapes - Wide scenic shots")
	assert.Contains(t, prompt, `"add_to_existing" | "create_new"`)
}

func TestBuildPromptEmptyHierarchy(t *testing.T) {
	prompt := buildPrompt(Request{Description: "a cat", Tags: nil})

	assert.Contains(t, prompt, "No existing boards.")
	assert.Contains(t, prompt, "Tags: no tags")
}
