package libassmod

import "bytes"

// ChangeCode reports how a frame differs from the previous one.
type ChangeCode int

const (
	// ChangeUnchanged means the frame equals the previous frame.
	ChangeUnchanged ChangeCode = 0
	// ChangeChanged means the frame differs from the previous frame.
	ChangeChanged ChangeCode = 1
	// ChangeUnknown means the frame could not be rendered.
	ChangeUnknown ChangeCode = 2
)

// String returns the name of the change code.
func (c ChangeCode) String() string {
	switch c {
	case ChangeUnchanged:
		return "unchanged"
	case ChangeChanged:
		return "changed"
	case ChangeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Frame is the merged coverage output of one RenderFrame call.
//
// A Frame is reference counted. The renderer holds one reference while the
// frame is current and drops it when the next frame supersedes it. Callers
// that keep a frame beyond that point take their own reference with Ref and
// drop it with Unref. When the count reaches zero the images are released.
type Frame struct {
	images   []*CoverageImage
	refs     int
	released bool
}

func newFrame(images []*CoverageImage) *Frame {
	return &Frame{images: images}
}

// Images returns the frame's coverage images in stacking order.
// A released frame has none.
func (f *Frame) Images() []*CoverageImage {
	if f == nil {
		return nil
	}
	return f.images
}

// Len returns the number of images in the frame.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.images)
}

// Ref takes a reference on f. A nil or released frame is ignored.
func (f *Frame) Ref() {
	if f == nil || f.released {
		return
	}
	f.refs++
}

// Unref drops a reference on f and releases the images when the last
// reference goes away. Unref on a nil frame, or one without references, is
// a no-op.
func (f *Frame) Unref() {
	if f == nil || f.refs == 0 {
		return
	}
	f.refs--
	if f.refs == 0 {
		clear(f.images)
		f.images = nil
		f.released = true
	}
}

// Refs returns the current reference count.
func (f *Frame) Refs() int {
	if f == nil {
		return 0
	}
	return f.refs
}

// Released reports whether the frame's images have been released.
func (f *Frame) Released() bool {
	return f != nil && f.released
}

// CompareFrames is the default ChangeDetector. It reports ChangeUnchanged
// when both frames hold the same number of images and every pair matches in
// size, stride, position, color, type and bitmap bytes. A nil frame is the
// same as an empty one.
func CompareFrames(cur, prev *Frame) ChangeCode {
	a, b := cur.Images(), prev.Images()
	if len(a) != len(b) {
		return ChangeChanged
	}
	for i := range a {
		if !sameImage(a[i], b[i]) {
			return ChangeChanged
		}
	}
	return ChangeUnchanged
}

func sameImage(a, b *CoverageImage) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.W != b.W || a.H != b.H || a.Stride != b.Stride ||
		a.DstX != b.DstX || a.DstY != b.DstY ||
		a.Color != b.Color || a.Type != b.Type {
		return false
	}
	if len(a.Bitmap) != len(b.Bitmap) {
		return false
	}
	if len(a.Bitmap) > 0 && &a.Bitmap[0] == &b.Bitmap[0] {
		return true
	}
	return bytes.Equal(a.Bitmap, b.Bitmap)
}
