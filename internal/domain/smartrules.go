package domain

import "strings"

// SmartRules is a declarative per-board predicate over an item's tags and
// description, used for automatic categorization. All tag comparisons and the
// description substring check are case-insensitive.
//
// Clause semantics:
//   - TagsExclude: any overlap with the item's tags forces a non-match,
//     overriding every other clause.
//   - TagsAll: when present, the item's tags must be a superset or the board
//     does not match, regardless of the remaining clauses.
//   - TagsInclude: any shared tag is sufficient for a match.
//   - DescriptionContains: the substring appearing in the description is
//     sufficient for a match.
type SmartRules struct {
	TagsInclude         []string `json:"tags_include,omitempty"`
	TagsExclude         []string `json:"tags_exclude,omitempty"`
	TagsAll             []string `json:"tags_all,omitempty"`
	DescriptionContains string   `json:"description_contains,omitempty"`
}

// IsEmpty returns true if no clause is specified.
func (r *SmartRules) IsEmpty() bool {
	return len(r.TagsInclude) == 0 &&
		len(r.TagsExclude) == 0 &&
		len(r.TagsAll) == 0 &&
		r.DescriptionContains == ""
}

// Matches evaluates the rule set against an item's tags and description.
// Pure function: no side effects, absent clauses neither force nor block a match.
func (r *SmartRules) Matches(tags []string, description string) bool {
	if r.IsEmpty() {
		return false
	}

	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[strings.ToLower(t)] = true
	}

	// Exclusion short-circuits everything else.
	for _, t := range r.TagsExclude {
		if tagSet[strings.ToLower(t)] {
			return false
		}
	}

	// TagsAll is mandatory when present.
	if len(r.TagsAll) > 0 {
		for _, t := range r.TagsAll {
			if !tagSet[strings.ToLower(t)] {
				return false
			}
		}
		return true
	}

	for _, t := range r.TagsInclude {
		if tagSet[strings.ToLower(t)] {
			return true
		}
	}

	if r.DescriptionContains != "" &&
		strings.Contains(strings.ToLower(description), strings.ToLower(r.DescriptionContains)) {
		return true
	}

	return false
}
