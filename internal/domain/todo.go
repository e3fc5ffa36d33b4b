package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source indicates where a todo item came from.
type Source string

const (
	// SourceManual marks items entered directly by the user. An empty
	// source on the wire is treated as manual.
	SourceManual Source = "manual"
	// SourceNotebook marks items discovered by scanning notebooks for
	// TODO markers. They are read-only: the next scan owns them.
	SourceNotebook Source = "notebook"
)

// Item is a single todo entry.
//
// CompletedAt is set exactly when Done is true, using the time of the
// transition. Origin fields are populated only for notebook items and
// are passed through untouched.
type Item struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Source      Source     `json:"source,omitempty"`
	OriginPath  string     `json:"originPath,omitempty"`
	OriginCell  *int       `json:"originCell,omitempty"`
	OriginLine  *int       `json:"originLine,omitempty"`
}

// IsNotebook reports whether the item was discovered by the scanner.
func (i Item) IsNotebook() bool {
	return i.Source == SourceNotebook
}

// NewManualItem creates a pending manual item with a fresh unique id.
// Text is trimmed; callers must reject empty text before calling.
func NewManualItem(text string) Item {
	return Item{
		ID:     uuid.NewString(),
		Text:   strings.TrimSpace(text),
		Source: SourceManual,
	}
}

// ManualOnly returns the subset of items entered by the user. This is
// the persistence subset: notebook items are derivable state and are
// never written to either tier.
func ManualOnly(items []Item) []Item {
	manual := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.IsNotebook() {
			manual = append(manual, it)
		}
	}
	return manual
}

// MergeByID appends extras whose ids are not already present in items.
// Used to fold scanner output into a loaded snapshot without
// duplicating notebook items a remote load already included.
func MergeByID(items, extras []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it.ID] = struct{}{}
	}
	merged := items
	for _, it := range extras {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		merged = append(merged, it)
	}
	return merged
}
