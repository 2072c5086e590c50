package capture

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// MinSize is the smallest width or height a capture buffer may have.
const MinSize = 8

// Buffer is an offscreen color target. *ebiten.Image satisfies it.
type Buffer interface {
	Bounds() image.Rectangle
}

// ImageFactory creates and frees the backing images for buffers.
type ImageFactory interface {
	New(width, height int) Buffer
	Dispose(b Buffer)
}

// EbitenImages backs buffers with *ebiten.Image.
type EbitenImages struct{}

func (EbitenImages) New(width, height int) Buffer {
	return ebiten.NewImage(width, height)
}

func (EbitenImages) Dispose(b Buffer) {
	if img, ok := b.(*ebiten.Image); ok && img != nil {
		img.Deallocate()
	}
}

// Allocator hands out buffers. Every buffer must go back to the allocator it
// came from.
type Allocator interface {
	Allocate(width, height int) Buffer
	Release(b Buffer)
	// Resident counts buffers the allocator still holds memory for, whether
	// checked out or idle in a pool.
	Resident() int
}

// DedicatedAllocator creates a fresh image per request and frees it on release.
type DedicatedAllocator struct {
	images ImageFactory
	live   int
}

func NewDedicatedAllocator(images ImageFactory) *DedicatedAllocator {
	if images == nil {
		images = EbitenImages{}
	}
	return &DedicatedAllocator{images: images}
}

func (a *DedicatedAllocator) Allocate(width, height int) Buffer {
	b := a.images.New(width, height)
	if b != nil {
		a.live++
	}
	return b
}

func (a *DedicatedAllocator) Release(b Buffer) {
	if b == nil {
		return
	}
	a.images.Dispose(b)
	a.live--
}

func (a *DedicatedAllocator) Resident() int {
	return a.live
}

// PooledAllocator keeps released buffers keyed by size and hands them back out
// on the next request of the same size.
type PooledAllocator struct {
	images ImageFactory
	idle   map[image.Point][]Buffer
	out    int
}

func NewPooledAllocator(images ImageFactory) *PooledAllocator {
	if images == nil {
		images = EbitenImages{}
	}
	return &PooledAllocator{images: images, idle: make(map[image.Point][]Buffer)}
}

func (a *PooledAllocator) Allocate(width, height int) Buffer {
	key := image.Pt(width, height)
	if free := a.idle[key]; len(free) > 0 {
		b := free[len(free)-1]
		a.idle[key] = free[:len(free)-1]
		a.out++
		return b
	}
	b := a.images.New(width, height)
	if b != nil {
		a.out++
	}
	return b
}

func (a *PooledAllocator) Release(b Buffer) {
	if b == nil {
		return
	}
	key := b.Bounds().Size()
	a.idle[key] = append(a.idle[key], b)
	a.out--
}

func (a *PooledAllocator) Resident() int {
	n := a.out
	for _, free := range a.idle {
		n += len(free)
	}
	return n
}

// Drain frees every idle buffer.
func (a *PooledAllocator) Drain() {
	for key, free := range a.idle {
		for _, b := range free {
			a.images.Dispose(b)
		}
		delete(a.idle, key)
	}
}
