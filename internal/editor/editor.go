// Package editor implements the section editors: controllers that edit one
// ordered collection of records and emit whole-collection replacements upward.
package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/types"
)

// Item is a collection record addressable by a stable id.
type Item[T any] interface {
	GetID() string
	WithID(id string) T
	WithField(field string, value any) (T, error)
}

// Source connects an editor to the owner of the canonical collection.
// Load returns the current collection and Store receives every replacement.
type Source[T any] struct {
	Load  func() []T
	Store func([]T)
}

// UpdateHook adjusts a record after a single-field update, as part of the same edit.
type UpdateHook[T any] func(updated T, field string) T

// Option configures an Editor.
type Option[T Item[T]] func(*Editor[T])

// WithIDGenerator overrides the id scheme. The default is a random UUID.
func WithIDGenerator[T Item[T]](gen func() string) Option[T] {
	return func(e *Editor[T]) {
		e.newID = gen
	}
}

// WithUpdateHook installs a hook run after every successful Update.
func WithUpdateHook[T Item[T]](hook UpdateHook[T]) Option[T] {
	return func(e *Editor[T]) {
		e.afterUpdate = hook
	}
}

// Editor edits one ordered collection. The collection itself lives in the
// Source; the editor only holds transient UI state (the expanded set).
// Every mutation builds a new slice; the slice handed to Store is never
// modified afterwards.
type Editor[T Item[T]] struct {
	source      Source[T]
	blank       func() T
	newID       func() string
	afterUpdate UpdateHook[T]
	expanded    map[string]struct{}
	issued      map[string]struct{}
}

// New creates an editor. blank returns a record with field defaults and no id.
func New[T Item[T]](source Source[T], blank func() T, opts ...Option[T]) *Editor[T] {
	e := &Editor[T]{
		source:   source,
		blank:    blank,
		newID:    func() string { return uuid.NewString() },
		expanded: make(map[string]struct{}),
		issued:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Items returns a copy of the current collection.
func (e *Editor[T]) Items() []T {
	items := e.source.Load()
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// Get returns the record with id, if present.
func (e *Editor[T]) Get(id string) (T, bool) {
	items := e.source.Load()
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// Add appends a new record with a fresh id and field defaults, marks it
// expanded so it is immediately editable, and emits the new collection.
func (e *Editor[T]) Add() T {
	items := e.source.Load()
	item := e.blank().WithID(e.uniqueID(items))

	e.emit(appendCopy(items, item))
	e.expanded[item.GetID()] = struct{}{}
	return item
}

// Append adds an already-built record with a fresh id and emits the new
// collection. Unlike Add, the record is not expanded.
func (e *Editor[T]) Append(record T) T {
	items := e.source.Load()
	item := record.WithID(e.uniqueID(items))

	e.emit(appendCopy(items, item))
	return item
}

// AddFields builds a record from field values and appends it with a fresh
// id. Fields go through WithField and the update hook exactly as single-field
// edits do, so a record added this way obeys the same rules. Named records
// need a non-blank name, which is stored trimmed. An "id" field is ignored.
// Nothing is emitted when an error is returned.
func (e *Editor[T]) AddFields(fields map[string]any) (T, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	record := e.blank()
	for _, k := range keys {
		updated, err := record.WithField(k, fields[k])
		if err != nil {
			var zero T
			return zero, err
		}
		record = updated
	}
	if e.afterUpdate != nil {
		for _, k := range keys {
			record = e.afterUpdate(record, k)
		}
	}

	if named, ok := any(record).(Named); ok {
		name := strings.TrimSpace(named.DisplayName())
		if name == "" {
			var zero T
			return zero, &types.FieldError{Record: recordName(record), Field: "name", Message: "name is required"}
		}
		updated, err := record.WithField("name", name)
		if err != nil {
			var zero T
			return zero, err
		}
		record = updated
	}

	return e.Append(record), nil
}

// recordName returns "skill" for a types.Skill.
func recordName(v any) string {
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// Update replaces one field of the record with id. A missing id is a no-op.
// Errors are only returned for fields the record does not have or values of
// the wrong type; content is not validated here.
func (e *Editor[T]) Update(id, field string, value any) error {
	items := e.source.Load()
	i := indexOf(items, id)
	if i < 0 {
		return nil
	}

	updated, err := items[i].WithField(field, value)
	if err != nil {
		return err
	}
	if e.afterUpdate != nil {
		updated = e.afterUpdate(updated, field)
	}

	next := make([]T, len(items))
	copy(next, items)
	next[i] = updated
	e.emit(next)
	return nil
}

// Remove drops the record with id and forgets its expanded state.
// It reports whether a record was removed; nothing is emitted otherwise.
func (e *Editor[T]) Remove(id string) bool {
	delete(e.expanded, id)

	items := e.source.Load()
	i := indexOf(items, id)
	if i < 0 {
		return false
	}

	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	next = append(next, items[i+1:]...)
	e.emit(next)
	return true
}

// ToggleExpanded flips the expanded state of an existing record and returns
// the new state. Nothing is emitted.
func (e *Editor[T]) ToggleExpanded(id string) bool {
	if indexOf(e.source.Load(), id) < 0 {
		return false
	}
	if _, ok := e.expanded[id]; ok {
		delete(e.expanded, id)
		return false
	}
	e.expanded[id] = struct{}{}
	return true
}

// IsExpanded reports whether the record with id is expanded.
func (e *Editor[T]) IsExpanded(id string) bool {
	_, ok := e.expanded[id]
	return ok
}

// Expanded returns the expanded ids in collection order.
func (e *Editor[T]) Expanded() []string {
	ids := []string{}
	for _, item := range e.source.Load() {
		if _, ok := e.expanded[item.GetID()]; ok {
			ids = append(ids, item.GetID())
		}
	}
	return ids
}

// ResetLocal clears transient state, e.g. after the whole document is replaced.
func (e *Editor[T]) ResetLocal() {
	e.expanded = make(map[string]struct{})
}

func (e *Editor[T]) emit(items []T) {
	e.source.Store(items)
}

// uniqueID draws ids until one is unused in items and was never issued by
// this editor, so a removed record's id is not handed out again.
func (e *Editor[T]) uniqueID(items []T) string {
	for {
		id := e.newID()
		if id == "" || indexOf(items, id) >= 0 {
			continue
		}
		if _, seen := e.issued[id]; seen {
			continue
		}
		e.issued[id] = struct{}{}
		return id
	}
}

func indexOf[T Item[T]](items []T, id string) int {
	for i, item := range items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

func appendCopy[T any](items []T, item T) []T {
	next := make([]T, len(items), len(items)+1)
	copy(next, items)
	return append(next, item)
}
