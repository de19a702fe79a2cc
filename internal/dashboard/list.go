package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Record is an opaque backend entity as seen by the engine. Only "id"
// (stable, unique, stringified) and the screen's declared search fields are
// interpreted; everything else passes through untouched.
type Record map[string]any

// RecordID extracts the stringified id of a record.
func RecordID(r Record) string {
	switch id := r["id"].(type) {
	case string:
		return id
	case fmt.Stringer:
		return id.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}

// FetchFunc loads all items for a resource.
type FetchFunc func(ctx context.Context) ([]Record, error)

// UpdateFunc issues a partial update for the record with the given id.
type UpdateFunc func(ctx context.Context, id string, fields FieldSet) error

// ListScreen declares the per-screen search and filter behavior: which
// string fields the search term matches against, and which status-like
// field the filter partitions on. The filter value "All" passes everything.
type ListScreen struct {
	SearchFields []string
	FilterField  string
}

// FilterAll is the passthrough filter value.
const FilterAll = "All"

// ListView holds the state of one remote resource list panel: the items,
// the search term and active filter, and an optional in-progress edit.
// Filtering is a pure function of (items, term, filter) recomputed on every
// read; it never mutates items. Loads replace items wholesale, and when
// responses overlap the most recently resolved one wins.
type ListView struct {
	mu     sync.Mutex
	screen ListScreen
	fetch  FetchFunc
	update UpdateFunc
	log    zerolog.Logger

	items        []Record
	searchTerm   string
	activeFilter string
	editingID    string
	edit         FieldSet
}

// NewListView creates a list panel state with an empty item set and the
// passthrough filter active.
func NewListView(screen ListScreen, fetch FetchFunc, update UpdateFunc, log zerolog.Logger) *ListView {
	return &ListView{
		screen:       screen,
		fetch:        fetch,
		update:       update,
		log:          log,
		activeFilter: FilterAll,
	}
}

// Load fetches all items and replaces the current set wholesale. On
// failure the previous items are left untouched and the error is returned
// for the caller to surface. Overlapping loads resolve last-resolved-wins:
// whichever response completes later is the one that sticks, even if its
// request was fired earlier. No cancellation is modeled; this race is an
// accepted property of operator-facing lists.
func (l *ListView) Load(ctx context.Context) error {
	items, err := l.fetch(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Items returns the unfiltered item set.
func (l *ListView) Items() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

// SetSearchTerm updates the search term. Pure state update.
func (l *ListView) SetSearchTerm(term string) {
	l.mu.Lock()
	l.searchTerm = term
	l.mu.Unlock()
}

// SetFilter updates the active filter. Pure state update.
func (l *ListView) SetFilter(filter string) {
	l.mu.Lock()
	l.activeFilter = filter
	l.mu.Unlock()
}

// SearchTerm returns the current search term.
func (l *ListView) SearchTerm() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.searchTerm
}

// Filter returns the active filter.
func (l *ListView) Filter() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeFilter
}

// Filtered returns the items matching the current search term and filter.
// Recomputed on every call; list sizes here are operator-facing, so
// correctness beats caching.
func (l *ListView) Filtered() []Record {
	l.mu.Lock()
	items, term, filter := l.items, l.searchTerm, l.activeFilter
	l.mu.Unlock()

	out := make([]Record, 0, len(items))
	for _, r := range items {
		if l.matches(r, term, filter) {
			out = append(out, r)
		}
	}
	return out
}

// matches applies the screen's predicate: the filter partitions on equality
// of the status-like field ("All" passes), and the term is satisfied when
// any declared search field contains it case-insensitively. An empty term
// matches everything.
func (l *ListView) matches(r Record, term, filter string) bool {
	if l.screen.FilterField != "" && filter != "" && filter != FilterAll {
		v, _ := r[l.screen.FilterField].(string)
		if v != filter {
			return false
		}
	}
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range l.screen.SearchFields {
		if v, ok := r[field].(string); ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// BeginEdit snapshots the matching item's fields into a fresh editable
// field set and records the editing id. A stale id (no longer present in
// items) is a logged no-op, not an error.
func (l *ListView) BeginEdit(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.items {
		if RecordID(r) == id {
			l.editingID = id
			l.edit = snapshotRecord(r)
			return true
		}
	}
	l.log.Debug().Str("id", id).Msg("begin edit on stale record id, ignoring")
	return false
}

func snapshotRecord(r Record) FieldSet {
	fs := make(FieldSet, len(r))
	for k, v := range r {
		switch tv := v.(type) {
		case map[string]any:
			nested := make(FieldSet, len(tv))
			for nk, nv := range tv {
				nested[nk] = nv
			}
			fs[k] = nested
		case []any:
			cp := make([]any, len(tv))
			copy(cp, tv)
			fs[k] = cp
		default:
			fs[k] = v
		}
	}
	return fs
}

// EditingID returns the id of the record being edited, or "" when no edit
// is in progress.
func (l *ListView) EditingID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editingID
}

// EditFields returns the in-progress edit field set, or nil.
func (l *ListView) EditFields() FieldSet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.edit
}

// UpdateEditField writes into the in-progress edit form.
func (l *ListView) UpdateEditField(path string, value any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.edit == nil {
		return fmt.Errorf("no edit in progress")
	}
	return l.edit.Set(path, value)
}

// SubmitEdit issues one update keyed by the editing id, then reloads the
// list to resynchronize with server truth rather than patching locally. On
// failure the edit form stays open with the entered values intact.
func (l *ListView) SubmitEdit(ctx context.Context) error {
	l.mu.Lock()
	id, fields := l.editingID, l.edit
	l.mu.Unlock()
	if id == "" {
		return fmt.Errorf("no edit in progress")
	}
	if err := l.update(ctx, id, fields); err != nil {
		return err
	}
	l.mu.Lock()
	l.editingID = ""
	l.edit = nil
	l.mu.Unlock()
	return l.Load(ctx)
}

// CancelEdit discards the in-progress edit without requesting anything.
// Idempotent: cancelling twice is the same as cancelling once.
func (l *ListView) CancelEdit() {
	l.mu.Lock()
	l.editingID = ""
	l.edit = nil
	l.mu.Unlock()
}
