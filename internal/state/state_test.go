package state

import (
	"testing"

	"github.com/atomicstack/lazyadb/internal/adb"
)

func devices(serials ...string) []adb.Device {
	out := make([]adb.Device, 0, len(serials))
	for _, s := range serials {
		out = append(out, adb.Device{Serial: s, Connection: adb.ConnectionKindForSerial(s)})
	}
	return out
}

func TestDeviceStoreClonesEntries(t *testing.T) {
	store := NewDeviceStore()
	input := devices("a", "b")
	store.SetEntries(input)
	input[0].Serial = "mutated"
	if got := store.Entries()[0].Serial; got != "a" {
		t.Fatalf("expected store to keep its own copy, got %q", got)
	}
	out := store.Entries()
	out[1].Serial = "mutated"
	if got := store.Entries()[1].Serial; got != "b" {
		t.Fatalf("expected Entries to return a copy, got %q", got)
	}
}

func TestDeviceStoreFirstDeviceFiresOnce(t *testing.T) {
	store := NewDeviceStore()
	sel := store.SetEntries(devices("emulator-5554"))
	if !sel.Changed || sel.Key != "emulator-5554" {
		t.Fatalf("expected first device to change selection, got %#v", sel)
	}
	sel = store.SetEntries(devices("emulator-5554"))
	if sel.Changed {
		t.Fatalf("expected identical refresh to keep selection, got %#v", sel)
	}
}

func TestDeviceStoreSelectedDisappears(t *testing.T) {
	store := NewDeviceStore()
	store.SetEntries(devices("a", "b", "c"))
	store.Move(2)
	sel := store.SetEntries(devices("a", "b"))
	if sel.Index != 1 || sel.Key != "b" || !sel.Changed {
		t.Fatalf("expected clamp to b, got %#v", sel)
	}
	sel = store.SetEntries(nil)
	if sel.Index != 0 || sel.Key != "" || !sel.Changed {
		t.Fatalf("expected empty list to clear selection, got %#v", sel)
	}
	if _, ok := store.Selected(); ok {
		t.Fatalf("expected no selection in empty store")
	}
}

func TestDeviceStoreMoveClamps(t *testing.T) {
	store := NewDeviceStore()
	if sel := store.Move(1); sel.Changed {
		t.Fatalf("expected no movement in empty store")
	}
	store.SetEntries(devices("a", "b"))
	if sel := store.Move(-1); sel.Changed {
		t.Fatalf("expected move above top to be a no-op")
	}
	if sel := store.Move(1); !sel.Changed || sel.Key != "b" {
		t.Fatalf("expected move to b, got %#v", sel)
	}
	if sel := store.Move(1); sel.Changed || store.Index() != 1 {
		t.Fatalf("expected move below bottom to be a no-op, index %d", store.Index())
	}
}

func TestEmulatorStoreLoaded(t *testing.T) {
	store := NewEmulatorStore()
	if store.Loaded() {
		t.Fatalf("expected fresh store to be unloaded")
	}
	store.SetEntries([]adb.Avd{{Name: "Pixel_4"}, {Name: "Pixel_7"}})
	store.Move(1)
	sel := store.SetEntries([]adb.Avd{{Name: "Pixel_4"}, {Name: "Pixel_7", RunningSerial: "emulator-5554"}})
	if !store.Loaded() || sel.Changed || sel.Key != "Pixel_7" {
		t.Fatalf("expected name-keyed selection to survive a running change, got %#v", sel)
	}
}

func TestTelemetryStoreRejectsStale(t *testing.T) {
	store := NewTelemetryStore()
	if store.Accept(adb.Telemetry{Serial: "a"}) {
		t.Fatalf("expected telemetry without expectation to be rejected")
	}
	store.Expect("a")
	store.Expect("b")
	if store.Accept(adb.Telemetry{Serial: "a"}) {
		t.Fatalf("expected stale telemetry to be rejected")
	}
	if !store.Accept(adb.Telemetry{Serial: "b", Model: "Pixel"}) {
		t.Fatalf("expected matching telemetry to be accepted")
	}
	if got, ok := store.Current(); !ok || got.Model != "Pixel" {
		t.Fatalf("unexpected telemetry %#v (ok=%v)", got, ok)
	}
	store.Clear()
	if _, ok := store.Current(); ok {
		t.Fatalf("expected cleared store to hold nothing")
	}
}
