/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package codec defines the pluggable codec surface the splice engine
// dispatches against: a capability-tagged Descriptor, an optional
// incremental Stream, and a registry of known codecs keyed by name.
package codec

import (
	"context"
	"errors"
	"io"

	"github.com/nabbar/squash/codecopts"
)

// Direction selects which half of a codec pair a call exercises.
type Direction uint8

const (
	// Compress turns raw bytes into the codec's encoded form.
	Compress Direction = iota
	// Decompress turns the codec's encoded form back into raw bytes.
	Decompress
)

func (d Direction) String() string {
	if d == Decompress {
		return "decompress"
	}
	return "compress"
}

// Capability is a bitmask of the tiers a Descriptor implements. The
// dispatcher prefers CapSplice, then mmap-backed CapBufferOneShot, then
// CapStream, then a buffered CapBufferOneShot, in that order.
type Capability uint8

const (
	// CapBufferOneShot: the codec can transform a whole buffer in one call.
	CapBufferOneShot Capability = 1 << iota
	// CapStream: the codec can process data incrementally via Stream.
	CapStream
	// CapSplice: the codec can move bytes between two endpoints natively.
	CapSplice
)

// Has reports whether mask contains every bit set in want.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// ErrBufferFull is the internal control-flow signal raised by a one-shot
// path when the destination buffer is too small. It is never returned from
// a public splice entry point; callers only ever see the effect (a larger
// buffer was allocated and the call retried).
var ErrBufferFull = errors.New("codec: destination buffer full")

// SpliceFunc moves data from src to dst through the codec, reading at most
// length bytes of src when compressing (all of src when length <= 0). It
// returns the number of uncompressed bytes it handled: bytes read from src
// when compressing, bytes written to dst when decompressing.
// Implementations must respect ctx cancellation between internal chunks.
type SpliceFunc func(ctx context.Context, dst io.Writer, src io.Reader, length int64) (int64, error)

// Descriptor is the pluggable surface a codec implementation exposes to
// the splice engine. A Descriptor must implement at least one capability.
type Descriptor interface {
	// Name is the stable registry key, e.g. "gzip", "zstd".
	Name() string

	// Capabilities reports which tiers this codec backs.
	Capabilities() Capability

	// KnowsUncompressedSize reports whether DecompressBuffer can size its
	// destination exactly instead of growing speculatively.
	KnowsUncompressedSize() bool

	// MaxCompressedSize bounds the compressed size of an input of srcLen
	// bytes; used to size the first one-shot attempt. Decompress-direction
	// callers may ignore it.
	MaxCompressedSize(srcLen int64) int64

	// CompressBuffer and DecompressBuffer implement the one-shot buffer
	// tier. Implementations that lack CapBufferOneShot may return
	// ErrUnsupported.
	CompressBuffer(dst, src []byte, opts codecopts.Options) ([]byte, error)
	DecompressBuffer(dst, src []byte, opts codecopts.Options) ([]byte, error)

	// NewStream builds an incremental processor for the given direction.
	// Implementations that lack CapStream may return ErrUnsupported.
	NewStream(dir Direction, opts codecopts.Options) (Stream, error)

	// Splice returns a native splice implementation for dir, or nil when
	// CapSplice is not set for that direction.
	Splice(dir Direction) SpliceFunc
}

// ErrUnsupported is returned by a Descriptor method for a tier its
// Capabilities() does not advertise.
var ErrUnsupported = errors.New("codec: capability not supported")

// StreamResult mirrors the three-valued progress outcome of a single
// Stream.Process call.
type StreamResult uint8

const (
	// StreamOK: more input is welcome; nothing more to flush right now.
	StreamOK StreamResult = iota
	// StreamProcessing: call Process again with the same finish value
	// before supplying more input; the destination buffer filled up.
	StreamProcessing
	// StreamEnd: the stream produced its final bytes; no further Process
	// calls are valid except Close.
	StreamEnd
)

// Stream is the incremental cursor-based processor a codec hands back from
// NewStream. It generalizes the next_in/avail_in/next_out/avail_out
// adaptor: Process consumes from src, writes into dst, and reports how much
// of each buffer it used.
type Stream interface {
	// Process consumes up to len(src) bytes and produces up to len(dst)
	// bytes. finish signals that src holds the last bytes of input; the
	// stream must then drain internal state until it reports StreamEnd.
	Process(dst, src []byte, finish bool) (written, consumed int, result StreamResult, err error)

	// Close releases any resources held by the stream. It is safe to call
	// Close after a StreamEnd result or after an error.
	Close() error
}
