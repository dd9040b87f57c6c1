package video

import (
	"image"
	"sync"

	"github.com/pion/mediafilter/pkg/frame"
)

// FrameBuffer keeps a private copy of the most recent frame. It is safe for
// concurrent use.
type FrameBuffer struct {
	mu     sync.RWMutex
	buffer frame.Frame
	stored bool
}

// NewFrameBuffer creates a new FrameBuffer instance and initialize internal buffer
// with initialSize
func NewFrameBuffer(initialSize int) *FrameBuffer {
	return &FrameBuffer{
		buffer: frame.Frame{Pix: make([]uint8, 0, initialSize)},
	}
}

// StoreCopy makes a copy of src and store its copy. StoreCopy will reuse as much memory as it can
// from the previous copies. For example, if StoreCopy is given an image that has the same resolution
// from the previous call, StoreCopy will not allocate extra memory and only copy the content
// from src to the previous buffer.
func (buff *FrameBuffer) StoreCopy(src image.Image) {
	buff.mu.Lock()
	defer buff.mu.Unlock()

	frame.Convert(&buff.buffer, src)
	buff.stored = true
}

// Load returns a copy of the stored frame, or nil when nothing was stored yet.
func (buff *FrameBuffer) Load() *frame.Frame {
	buff.mu.RLock()
	defer buff.mu.RUnlock()

	if !buff.stored {
		return nil
	}
	return buff.buffer.Clone()
}

// LoadInto copies the stored frame into dst, reusing dst's memory. It
// reports false when nothing was stored yet.
func (buff *FrameBuffer) LoadInto(dst *frame.Frame) bool {
	buff.mu.RLock()
	defer buff.mu.RUnlock()

	if !buff.stored {
		return false
	}
	frame.Convert(dst, &buff.buffer)
	return true
}

// Reset forgets the stored frame but keeps its memory.
func (buff *FrameBuffer) Reset() {
	buff.mu.Lock()
	defer buff.mu.Unlock()

	buff.stored = false
}
