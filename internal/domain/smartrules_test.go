package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartRules_Matches(t *testing.T) {
	tests := []struct {
		name        string
		rules       *SmartRules
		tags        []string
		description string
		expected    bool
	}{
		{
			name:     "include matches on shared tag",
			rules:    &SmartRules{TagsInclude: []string{"cat"}},
			tags:     []string{"cat", "indoor"},
			expected: true,
		},
		{
			name:     "include does not match without shared tag",
			rules:    &SmartRules{TagsInclude: []string{"cat"}},
			tags:     []string{"car"},
			expected: false,
		},
		{
			name:     "exclude overrides include",
			rules:    &SmartRules{TagsInclude: []string{"woman"}, TagsExclude: []string{"nsfw"}},
			tags:     []string{"woman", "nsfw"},
			expected: false,
		},
		{
			name:        "exclude overrides description match",
			rules:       &SmartRules{DescriptionContains: "sunset", TagsExclude: []string{"blurry"}},
			tags:        []string{"blurry"},
			description: "a sunset over the sea",
			expected:    false,
		},
		{
			name:     "tags_all satisfied",
			rules:    &SmartRules{TagsAll: []string{"cat", "indoor"}},
			tags:     []string{"cat", "indoor", "cute"},
			expected: true,
		},
		{
			name:     "tags_all unsatisfied blocks include",
			rules:    &SmartRules{TagsAll: []string{"cat", "outdoor"}, TagsInclude: []string{"cat"}},
			tags:     []string{"cat", "indoor"},
			expected: false,
		},
		{
			name:        "description substring matches case-insensitively",
			rules:       &SmartRules{DescriptionContains: "Golden Retriever"},
			tags:        nil,
			description: "a golden retriever playing fetch",
			expected:    true,
		},
		{
			name:     "tag comparison is case-insensitive",
			rules:    &SmartRules{TagsInclude: []string{"Cat"}},
			tags:     []string{"CAT"},
			expected: true,
		},
		{
			name:     "empty rule set never matches",
			rules:    &SmartRules{},
			tags:     []string{"anything"},
			expected: false,
		},
		{
			name:        "no clause matches",
			rules:       &SmartRules{TagsInclude: []string{"dog"}, DescriptionContains: "beach"},
			tags:        []string{"cat"},
			description: "indoor portrait",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rules.Matches(tt.tags, tt.description))
		})
	}
}

func TestSmartRules_IsEmpty(t *testing.T) {
	assert.True(t, (&SmartRules{}).IsEmpty())
	assert.False(t, (&SmartRules{TagsExclude: []string{"x"}}).IsEmpty())
	assert.False(t, (&SmartRules{DescriptionContains: "x"}).IsEmpty())
}

func TestBoard_HasSmartRules(t *testing.T) {
	assert.False(t, (&Board{}).HasSmartRules())
	assert.False(t, (&Board{SmartRules: &SmartRules{}}).HasSmartRules())
	assert.True(t, (&Board{SmartRules: &SmartRules{TagsInclude: []string{"cat"}}}).HasSmartRules())
}
