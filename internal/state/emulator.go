package state

import (
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/roster"
)

type EmulatorStore interface {
	Entries() []adb.Avd
	Len() int
	SetEntries([]adb.Avd) Selection
	Index() int
	Selected() (adb.Avd, bool)
	Move(delta int) Selection
	Loaded() bool
}

type emulatorStore struct {
	*listStore[adb.Avd]
	loaded bool
}

func NewEmulatorStore() EmulatorStore {
	return &emulatorStore{listStore: newListStore(roster.ImageKey)}
}

func (e *emulatorStore) SetEntries(entries []adb.Avd) Selection {
	e.loaded = true
	return e.listStore.SetEntries(entries)
}

// Loaded reports whether the emulator list has been fetched at least once.
func (e *emulatorStore) Loaded() bool {
	return e.loaded
}
