package editor

import "strings"

// Named is a record whose name decides whether a draft may be committed.
type Named interface {
	DisplayName() string
}

// DraftItem is a record usable with a DraftEditor.
type DraftItem[T any] interface {
	Item[T]
	Named
}

// DraftEditor adds a "new item" draft to an Editor. The draft is edited
// independently and only enters the collection through Commit.
type DraftEditor[T DraftItem[T]] struct {
	*Editor[T]
	newDraft func() T
	draft    T
}

// NewDraft wraps an editor with a draft initialized by newDraft.
func NewDraft[T DraftItem[T]](ed *Editor[T], newDraft func() T) *DraftEditor[T] {
	return &DraftEditor[T]{
		Editor:   ed,
		newDraft: newDraft,
		draft:    newDraft(),
	}
}

// Draft returns the pending record.
func (d *DraftEditor[T]) Draft() T {
	return d.draft
}

// SetDraftField edits one field of the draft. The collection is untouched.
func (d *DraftEditor[T]) SetDraftField(field string, value any) error {
	updated, err := d.draft.WithField(field, value)
	if err != nil {
		return err
	}
	d.draft = updated
	return nil
}

// Commit appends the draft with a fresh id and a trimmed name, then resets
// the draft. It is a no-op returning false when the name is blank.
func (d *DraftEditor[T]) Commit() (T, bool) {
	name := strings.TrimSpace(d.draft.DisplayName())
	if name == "" {
		var zero T
		return zero, false
	}
	record, err := d.draft.WithField("name", name)
	if err != nil {
		var zero T
		return zero, false
	}

	item := d.Append(record)
	d.draft = d.newDraft()
	return item, true
}

// ResetLocal clears the expanded set and the draft.
func (d *DraftEditor[T]) ResetLocal() {
	d.Editor.ResetLocal()
	d.draft = d.newDraft()
}
