package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/google/go-cmp/cmp"
)

func ident(s string) string { return s }

func TestReconcileBounds(t *testing.T) {
	lists := [][]string{nil, {"a"}, {"a", "b", "c"}}
	for _, items := range lists {
		for prev := -3; prev < 6; prev++ {
			idx, _ := Reconcile(items, prev, "x", ident)
			if len(items) == 0 {
				if idx != 0 {
					t.Fatalf("empty list: expected 0, got %d", idx)
				}
				continue
			}
			if idx < 0 || idx >= len(items) {
				t.Fatalf("items %v prev %d: index %d out of range", items, prev, idx)
			}
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	items := []string{"a", "b", "c"}
	for prev := -2; prev < 5; prev++ {
		first, _ := Reconcile(items, prev, "", ident)
		second, changed := Reconcile(items, first, KeyAt(items, first, ident), ident)
		if second != first {
			t.Fatalf("prev %d: expected %d on second pass, got %d", prev, first, second)
		}
		if changed {
			t.Fatalf("prev %d: expected no change on second pass", prev)
		}
	}
}

func TestReconcileEmptyToOneFires(t *testing.T) {
	idx, changed := Reconcile([]string{"emulator-5554"}, 0, "", ident)
	if idx != 0 || !changed {
		t.Fatalf("expected index 0 changed, got %d %v", idx, changed)
	}
	idx, changed = Reconcile([]string{"emulator-5554"}, idx, "emulator-5554", ident)
	if idx != 0 || changed {
		t.Fatalf("expected stable second refresh, got %d %v", idx, changed)
	}
}

func TestReconcileSelectedDisappears(t *testing.T) {
	idx, changed := Reconcile([]string{"a", "b"}, 2, "c", ident)
	if idx != 1 || !changed {
		t.Fatalf("expected clamp to 1 and change, got %d %v", idx, changed)
	}
	idx, changed = Reconcile[string](nil, 1, "b", ident)
	if idx != 0 || !changed {
		t.Fatalf("expected empty list to report change, got %d %v", idx, changed)
	}
	if _, changed := Reconcile[string](nil, 0, "", ident); changed {
		t.Fatalf("expected empty to empty to be unchanged")
	}
}

type fakeImages struct {
	declared    []string
	declaredErr error
	running     map[string]string
	queries     map[string]int
}

func (f *fakeImages) ListImages(context.Context) ([]string, error) {
	return f.declared, f.declaredErr
}

func (f *fakeImages) QueryRunningImageName(_ context.Context, serial string) (string, bool) {
	if f.queries == nil {
		f.queries = map[string]int{}
	}
	f.queries[serial]++
	name, ok := f.running[serial]
	return name, ok
}

func emulator(serial string) adb.Device {
	return adb.Device{Serial: serial, State: adb.StateOnline, Connection: adb.ConnectionEmulator}
}

func TestBuildImagesJoinsRunning(t *testing.T) {
	src := &fakeImages{
		declared: []string{"Pixel_4", "Pixel_7"},
		running:  map[string]string{"emulator-5554": "Pixel_4"},
	}
	devices := []adb.Device{
		emulator("emulator-5554"),
		{Serial: "R58M", Connection: adb.ConnectionUSB},
	}
	got := BuildImages(context.Background(), src, devices)
	want := []adb.Avd{
		{Name: "Pixel_4", RunningSerial: "emulator-5554"},
		{Name: "Pixel_7"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}
	if src.queries["R58M"] != 0 {
		t.Fatalf("expected USB device not to be queried")
	}
	if src.queries["emulator-5554"] != 1 {
		t.Fatalf("expected one query per emulator, got %d", src.queries["emulator-5554"])
	}
}

func TestBuildImagesNeverDuplicatesRunningImage(t *testing.T) {
	src := &fakeImages{
		declared: []string{"Pixel_4"},
		running: map[string]string{
			"emulator-5554": "Pixel_4",
			"emulator-5556": "Pixel_4",
			"emulator-5558": "Tablet",
			"emulator-5560": "Tablet",
		},
	}
	devices := []adb.Device{
		emulator("emulator-5554"),
		emulator("emulator-5556"),
		emulator("emulator-5558"),
		emulator("emulator-5560"),
	}
	got := BuildImages(context.Background(), src, devices)
	want := []adb.Avd{
		{Name: "Pixel_4", RunningSerial: "emulator-5554"},
		{Name: "Tablet", RunningSerial: "emulator-5558"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildImagesSurvivesListFailure(t *testing.T) {
	src := &fakeImages{
		declaredErr: errors.New("no emulator binary"),
		running:     map[string]string{"emulator-5554": "Pixel_4"},
	}
	devices := []adb.Device{emulator("emulator-5554"), emulator("emulator-5556")}
	got := BuildImages(context.Background(), src, devices)
	want := []adb.Avd{{Name: "Pixel_4", RunningSerial: "emulator-5554"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}
}
