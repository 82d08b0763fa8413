package state

import (
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/roster"
)

type DeviceStore interface {
	Entries() []adb.Device
	Len() int
	SetEntries([]adb.Device) Selection
	Index() int
	Selected() (adb.Device, bool)
	Move(delta int) Selection
}

type deviceStore struct {
	*listStore[adb.Device]
}

func NewDeviceStore() DeviceStore {
	return &deviceStore{listStore: newListStore(roster.DeviceKey)}
}
