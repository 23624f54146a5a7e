// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mem provides aligned, pooled pixel buffers.
//
// Buffers returned by a Pool start at an address that is a multiple of the
// requested alignment and are zeroed. Buffers handed back with Free are kept
// per size bucket and reused by later allocations of the same size and a
// compatible alignment.
package mem

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Common errors for buffer allocation.
var (
	// ErrInvalidSize is returned when the requested size is not positive.
	ErrInvalidSize = errors.New("mem: invalid size")

	// ErrInvalidAlignment is returned when alignment is not a power of two.
	ErrInvalidAlignment = errors.New("mem: alignment must be a power of two")

	// ErrTooLarge is returned when a request exceeds the pool limit.
	ErrTooLarge = errors.New("mem: allocation exceeds limit")
)

// Allocator hands out aligned byte buffers.
//
// Alloc returns a zeroed buffer of exactly size bytes whose first byte is
// aligned to align. Free returns a buffer obtained from Alloc; passing nil is
// a no-op.
type Allocator interface {
	Alloc(size, align int) ([]byte, error)
	Free(buf []byte)
}

// AlignUp rounds n up to the next multiple of align.
// align must be a power of two.
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// IsAligned reports whether the first byte of buf sits on an align boundary.
func IsAligned(buf []byte, align int) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))&uintptr(align-1) == 0
}

// Pool is a thread-safe aligned buffer allocator with reuse.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte // keyed by buffer length
	maxSize int              // max buffers per bucket
	limit   int              // max bytes per allocation, 0 = unlimited

	allocs atomic.Int64
	frees  atomic.Int64
}

// NewPool creates a buffer pool that retains up to maxPerBucket buffers per
// size. limit caps the size of a single allocation; 0 means unlimited.
func NewPool(maxPerBucket, limit int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
		limit:   limit,
	}
}

// Alloc returns a zeroed buffer of size bytes aligned to align.
func (p *Pool) Alloc(size, align int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if align <= 0 || align&(align-1) != 0 {
		return nil, ErrInvalidAlignment
	}
	if p.limit > 0 && size > p.limit {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, p.limit)
	}

	p.mu.Lock()
	bucket := p.buckets[size]
	for i := len(bucket) - 1; i >= 0; i-- {
		buf := bucket[i]
		if !IsAligned(buf, align) {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket[last] = nil
		p.buckets[size] = bucket[:last]
		p.mu.Unlock()

		clear(buf)
		p.allocs.Add(1)
		return buf, nil
	}
	p.mu.Unlock()

	p.allocs.Add(1)
	return alignedSlice(size, align), nil
}

// Free returns buf to the pool. If the bucket is full, the buffer is
// dropped and left to the GC.
func (p *Pool) Free(buf []byte) {
	if buf == nil {
		return
	}
	p.frees.Add(1)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[len(buf)]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[len(buf)] = append(bucket, buf)
}

// Allocs returns the number of successful Alloc calls.
func (p *Pool) Allocs() int64 { return p.allocs.Load() }

// Frees returns the number of Free calls with a non-nil buffer.
func (p *Pool) Frees() int64 { return p.frees.Load() }

// Retained returns the number of buffers currently held for reuse.
func (p *Pool) Retained() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// alignedSlice allocates size bytes plus slack and returns the aligned
// window. The capacity is clipped so appends cannot run into the slack.
func alignedSlice(size, align int) []byte {
	raw := make([]byte, size+align-1)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) & uintptr(align-1)); rem != 0 {
		off = align - rem
	}
	return raw[off : off+size : off+size]
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(8, 0)

// Default returns the package-level pool.
func Default() *Pool {
	return defaultPool
}
