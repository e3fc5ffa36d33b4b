package domain

import (
	"sort"
	"strings"
	"time"
)

// Store holds the canonical ordered todo list and applies all
// mutations as pure state transitions. It performs no I/O and never
// returns an error: operations on unknown ids, notebook items, or
// empty text degrade to no-ops.
//
// The list is kept as two segments. Pending items are ordered most
// recently added first; completed items are ordered by completion
// time, most recent first. Reads concatenate the segments, which is
// exactly the display order.
type Store struct {
	pending   []Item
	completed []Item
	editingID string

	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// SetClock overrides the completion-time source. Used by tests.
func (s *Store) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Len returns the total number of items, both segments included.
func (s *Store) Len() int {
	return len(s.pending) + len(s.completed)
}

// Items returns a copy of the full list in display order.
func (s *Store) Items() []Item {
	items := make([]Item, 0, s.Len())
	items = append(items, s.pending...)
	items = append(items, s.completed...)
	return items
}

// Visible returns the display projection. With showNotebook false all
// notebook items are filtered out; the underlying list is untouched,
// so flipping the flag never loses hidden items.
func (s *Store) Visible(showNotebook bool) []Item {
	if showNotebook {
		return s.Items()
	}
	items := make([]Item, 0, s.Len())
	for _, it := range s.pending {
		if !it.IsNotebook() {
			items = append(items, it)
		}
	}
	for _, it := range s.completed {
		if !it.IsNotebook() {
			items = append(items, it)
		}
	}
	return items
}

// ManualItems returns the persistence subset in display order.
func (s *Store) ManualItems() []Item {
	return ManualOnly(s.Items())
}

// Add prepends a new pending manual item. Empty or whitespace-only
// text is a no-op. Returns the created item, or nil when nothing was
// added.
func (s *Store) Add(text string) *Item {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	item := NewManualItem(text)
	s.pending = append([]Item{item}, s.pending...)
	return &item
}

// Toggle flips the done flag of a manual item, stamping or clearing
// its completion time and moving it between segments. Unknown ids and
// notebook items are no-ops. Returns true when the list changed.
func (s *Store) Toggle(id string) bool {
	for idx, it := range s.pending {
		if it.ID != id {
			continue
		}
		if it.IsNotebook() {
			return false
		}
		if s.editingID == id {
			s.editingID = ""
		}
		now := s.now()
		it.Done = true
		it.CompletedAt = &now
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		s.insertCompleted(it)
		return true
	}
	for idx, it := range s.completed {
		if it.ID != id {
			continue
		}
		if it.IsNotebook() {
			return false
		}
		it.Done = false
		it.CompletedAt = nil
		s.completed = append(s.completed[:idx], s.completed[idx+1:]...)
		s.pending = append([]Item{it}, s.pending...)
		return true
	}
	return false
}

// Remove deletes a manual item. Notebook items cannot be removed here;
// they disappear when the next scan omits them. Order of the remaining
// items is preserved. Returns true when the list changed.
func (s *Store) Remove(id string) bool {
	for idx, it := range s.pending {
		if it.ID != id {
			continue
		}
		if it.IsNotebook() {
			return false
		}
		if s.editingID == id {
			s.editingID = ""
		}
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		return true
	}
	for idx, it := range s.completed {
		if it.ID != id {
			continue
		}
		if it.IsNotebook() {
			return false
		}
		s.completed = append(s.completed[:idx], s.completed[idx+1:]...)
		return true
	}
	return false
}

// BeginEdit opens an edit session for a pending manual item. At most
// one edit is in flight; beginning a new one replaces it. Done items,
// notebook items, and unknown ids are rejected.
func (s *Store) BeginEdit(id string) bool {
	for _, it := range s.pending {
		if it.ID == id {
			if it.IsNotebook() {
				return false
			}
			s.editingID = id
			return true
		}
	}
	return false
}

// EditingID returns the id of the in-flight edit, or empty string.
func (s *Store) EditingID() string {
	return s.editingID
}

// CancelEdit drops the in-flight edit session, if any.
func (s *Store) CancelEdit() {
	s.editingID = ""
}

// CommitEdit replaces the text of the item under edit. Empty trimmed
// text is equivalent to cancel. Done and completion time are never
// touched. Returns true when the text was replaced.
func (s *Store) CommitEdit(text string) bool {
	id := s.editingID
	s.editingID = ""
	if id == "" {
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for idx := range s.pending {
		if s.pending[idx].ID == id {
			s.pending[idx].Text = text
			return true
		}
	}
	return false
}

// Replace swaps the whole list for a loaded snapshot, re-segmenting it
// so the ordering invariant holds regardless of the snapshot's order.
// Any in-flight edit is dropped.
func (s *Store) Replace(items []Item) {
	s.editingID = ""
	s.pending = s.pending[:0]
	s.completed = nil
	for _, it := range items {
		if it.Done {
			s.completed = append(s.completed, it)
		} else {
			s.pending = append(s.pending, it)
		}
	}
	sort.SliceStable(s.completed, func(a, b int) bool {
		return completedAfter(s.completed[a], s.completed[b])
	})
}

// insertCompleted places an item into the completed segment keeping
// the most-recently-completed-first order.
func (s *Store) insertCompleted(item Item) {
	pos := sort.Search(len(s.completed), func(i int) bool {
		return !completedAfter(s.completed[i], item)
	})
	s.completed = append(s.completed, Item{})
	copy(s.completed[pos+1:], s.completed[pos:])
	s.completed[pos] = item
}

// completedAfter reports whether a finished more recently than b.
// A missing timestamp (possible in a foreign snapshot) sorts last.
func completedAfter(a, b Item) bool {
	switch {
	case a.CompletedAt == nil:
		return false
	case b.CompletedAt == nil:
		return true
	default:
		return a.CompletedAt.After(*b.CompletedAt)
	}
}
