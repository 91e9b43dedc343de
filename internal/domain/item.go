package domain

import "time"

// MediaType identifies the kind of media an item holds.
type MediaType string

// Supported media types.
const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// ParseMediaType converts a string to a MediaType.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(s) {
	case MediaTypeImage, MediaTypeVideo:
		return MediaType(s), true
	default:
		return "", false
	}
}

// Item represents a media entry (image or video). The description and tags
// are populated by the external analysis service; this core reads them for
// categorization but never derives them itself.
type Item struct {
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AnalyzedAt  *time.Time `json:"analyzed_at,omitempty"` // set when analysis output is recorded
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	MediaType   MediaType  `json:"media_type"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// IsAnalyzed returns true once analysis output has been recorded for the item.
func (i *Item) IsAnalyzed() bool {
	return i.AnalyzedAt != nil
}

// Touch updates the UpdatedAt timestamp to the current time.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (i *Item) InitTimestamps() {
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
}
