// Package roster keeps the device and emulator lists consistent across
// refreshes.
package roster

// Reconcile clamps a selection index into a freshly replaced list and reports
// whether the selected entry changed. prevKey is the key of the entry that
// was selected before the replacement, or "" when the list was empty.
func Reconcile[T any](items []T, prevIndex int, prevKey string, key func(T) string) (int, bool) {
	if len(items) == 0 {
		return 0, prevKey != ""
	}
	index := min(max(prevIndex, 0), len(items)-1)
	return index, key(items[index]) != prevKey
}

// KeyAt returns the key of the entry at index, or "" when out of range.
func KeyAt[T any](items []T, index int, key func(T) string) string {
	if index < 0 || index >= len(items) {
		return ""
	}
	return key(items[index])
}
