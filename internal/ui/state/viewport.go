package state

// Viewport tracks the first visible row of a list taller than its panel.
type Viewport struct {
	Offset int
}

// Follow adjusts the offset so cursor stays visible and returns the visible
// half-open range [start, end).
func (v *Viewport) Follow(cursor, total, maxVisible int) (int, int) {
	if total == 0 {
		v.Offset = 0
		return 0, 0
	}
	cursor = min(max(cursor, 0), total-1)
	if maxVisible <= 0 || maxVisible >= total {
		v.Offset = 0
		return 0, total
	}
	maxOffset := total - maxVisible
	v.Offset = min(max(v.Offset, 0), maxOffset)
	if cursor < v.Offset {
		v.Offset = cursor
	}
	if upper := v.Offset + maxVisible - 1; cursor > upper {
		v.Offset = min(cursor-maxVisible+1, maxOffset)
	}
	return v.Offset, v.Offset + maxVisible
}
