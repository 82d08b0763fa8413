package state

import "github.com/atomicstack/lazyadb/internal/roster"

// Selection reports the outcome of a list replacement or cursor move.
type Selection struct {
	Index   int
	Key     string
	Changed bool
}

type listStore[T any] struct {
	entries []T
	index   int
	key     func(T) string
}

func newListStore[T any](key func(T) string) *listStore[T] {
	return &listStore[T]{key: key}
}

func (l *listStore[T]) Entries() []T {
	return cloneEntries(l.entries)
}

func (l *listStore[T]) Len() int {
	return len(l.entries)
}

func (l *listStore[T]) SetEntries(entries []T) Selection {
	prevKey := roster.KeyAt(l.entries, l.index, l.key)
	l.entries = cloneEntries(entries)
	index, changed := roster.Reconcile(l.entries, l.index, prevKey, l.key)
	l.index = index
	return Selection{Index: index, Key: roster.KeyAt(l.entries, index, l.key), Changed: changed}
}

func (l *listStore[T]) Index() int {
	return l.index
}

func (l *listStore[T]) Selected() (T, bool) {
	var zero T
	if l.index < 0 || l.index >= len(l.entries) {
		return zero, false
	}
	return l.entries[l.index], true
}

func (l *listStore[T]) Move(delta int) Selection {
	if len(l.entries) == 0 {
		l.index = 0
		return Selection{}
	}
	old := l.index
	l.index = min(max(l.index+delta, 0), len(l.entries)-1)
	return Selection{Index: l.index, Key: l.key(l.entries[l.index]), Changed: l.index != old}
}

func cloneEntries[T any](entries []T) []T {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]T, len(entries))
	copy(dup, entries)
	return dup
}
