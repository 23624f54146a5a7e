package libassmod

import "image"

// StackResolver is the default CollisionResolver. It stacks overlapping
// events of a layer vertically.
//
// Events with DetectCollisions unset keep their place and act as obstacles.
// The remaining events are placed in run order; each one moves in its Shift
// direction until its box clears every event placed before it.
type StackResolver struct{}

// Resolve implements CollisionResolver.
func (StackResolver) Resolve(run []EventImages) {
	if len(run) == 0 {
		return
	}

	placed := make([]image.Rectangle, 0, len(run))
	for i := range run {
		if !run[i].DetectCollisions && !run[i].Box.Empty() {
			placed = append(placed, run[i].Box)
		}
	}

	for i := range run {
		e := &run[i]
		if !e.DetectCollisions || e.Box.Empty() {
			continue
		}

		box := stack(e.Box, e.Shift, placed)
		e.Translate(0, box.Min.Y-e.Box.Min.Y)
		placed = append(placed, e.Box)
	}
}

// stack moves box along dir until it overlaps none of placed. Every step
// moves the box strictly in one direction to an edge of a placed box, so
// the loop ends after at most len(placed) moves per obstacle.
func stack(box image.Rectangle, dir ShiftDirection, placed []image.Rectangle) image.Rectangle {
	for moved := true; moved; {
		moved = false
		for _, p := range placed {
			if !box.Overlaps(p) {
				continue
			}
			var dy int
			if dir == ShiftUp {
				dy = p.Min.Y - box.Max.Y
			} else {
				dy = p.Max.Y - box.Min.Y
			}
			box = box.Add(image.Pt(0, dy))
			moved = true
		}
	}
	return box
}
