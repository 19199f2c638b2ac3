package generator

import (
	"bytes"
	"sync"
)

// Buffer tiers, chosen by how many declarations a file will hold.
const (
	smallBufferSize  = 8 * 1024  // fewer than 10 declarations
	mediumBufferSize = 32 * 1024 // 10 to 49
	largeBufferSize  = 64 * 1024 // 50 or more

	// maxPooledBuffer keeps one huge file from pinning memory in a pool.
	maxPooledBuffer = 1 << 20
)

var bufferPools = [...]*sync.Pool{
	newBufferPool(smallBufferSize),
	newBufferPool(mediumBufferSize),
	newBufferPool(largeBufferSize),
}

func newBufferPool(size int) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			return bytes.NewBuffer(make([]byte, 0, size))
		},
	}
}

func poolFor(declCount int) *sync.Pool {
	switch {
	case declCount < 10:
		return bufferPools[0]
	case declCount < 50:
		return bufferPools[1]
	default:
		return bufferPools[2]
	}
}

// getBuffer returns an empty buffer sized for declCount declarations.
func getBuffer(declCount int) *bytes.Buffer {
	buf := poolFor(declCount).Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool it was taken from.
func putBuffer(buf *bytes.Buffer, declCount int) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	poolFor(declCount).Put(buf)
}
