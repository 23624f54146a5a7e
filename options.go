package libassmod

import "github.com/amanosatosi/libassmod/internal/mem"

// Option configures a Renderer or Converter during creation.
//
// Example:
//
//	r := libassmod.NewRenderer(
//	    libassmod.WithEventRenderer(raster.New(track)),
//	    libassmod.WithAlignOrder(4),
//	)
type Option func(*options)

// options holds optional configuration.
type options struct {
	events    EventRenderer
	starter   FrameStarter
	resolver  CollisionResolver
	detector  ChangeDetector
	pruner    Pruner
	alloc     Allocator
	alignOrd  int
	maxActive int
	workers   int
}

// Default configuration values.
const (
	// DefaultAlignOrder aligns RGBA rows and buffers to 32 bytes.
	DefaultAlignOrder = 5

	// maxAlignOrder caps alignment at 4 KiB.
	maxAlignOrder = 12

	// eventsGrowStep is the fixed increment of the active event array.
	eventsGrowStep = 100
)

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		starter:  FrameStarterFunc(defaultStartFrame),
		resolver: StackResolver{},
		detector: ChangeDetectorFunc(CompareFrames),
		pruner:   PrunerFunc(func(t *Track, cutoff int64) { t.Prune(cutoff) }),
		alloc:    mem.Default(),
		alignOrd: DefaultAlignOrder,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// alignment returns the byte alignment selected by the options.
func (o *options) alignment() int {
	return 1 << o.alignOrd
}

// WithEventRenderer sets the per-event renderer. Without one, no event
// produces images.
func WithEventRenderer(er EventRenderer) Option {
	return func(o *options) {
		o.events = er
	}
}

// WithFrameStarter replaces the per-frame initializer. A non-nil error from
// it makes RenderFrame return no images and ChangeUnknown.
func WithFrameStarter(fs FrameStarter) Option {
	return func(o *options) {
		if fs != nil {
			o.starter = fs
		}
	}
}

// WithCollisionResolver replaces the collision resolver.
// The default is StackResolver.
func WithCollisionResolver(cr CollisionResolver) Option {
	return func(o *options) {
		if cr != nil {
			o.resolver = cr
		}
	}
}

// WithChangeDetector replaces the frame comparison.
// The default is CompareFrames.
func WithChangeDetector(cd ChangeDetector) Option {
	return func(o *options) {
		if cd != nil {
			o.detector = cd
		}
	}
}

// WithPruner replaces event pruning. The default is Track.Prune.
func WithPruner(p Pruner) Option {
	return func(o *options) {
		if p != nil {
			o.pruner = p
		}
	}
}

// WithAllocator sets the allocator for RGBA pixel buffers.
// The default is a shared pooled allocator.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithAlignOrder sets RGBA alignment to 1<<order bytes. Orders outside
// [0, 12] are clamped.
func WithAlignOrder(order int) Option {
	return func(o *options) {
		o.alignOrd = min(max(order, 0), maxAlignOrder)
	}
}

// WithMaxActiveEvents caps the number of events a single frame may hold.
// A frame that needs more is aborted. 0 means unlimited.
func WithMaxActiveEvents(n int) Option {
	return func(o *options) {
		o.maxActive = max(n, 0)
	}
}

// WithWorkers converts RGBA images on n goroutines. n <= 1 converts on the
// calling goroutine, which is the default.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
