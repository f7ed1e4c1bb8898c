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

// Package snappy registers the "snappy" codec on top of
// github.com/golang/snappy. It deliberately only ever advertises
// CapBufferOneShot: golang/snappy does offer a streaming frame format
// (NewBufferedWriter/NewReader), but this module keeps one codec
// one-shot-only on purpose, so the dispatcher's accumulator path (spec.md's
// lowest-preference tier) has a real, unavoidable exerciser instead of
// only being reachable by a contrived test double.
package snappy

import (
	"github.com/golang/snappy"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

func init() {
	codec.Register(descriptor{})
}

type descriptor struct{}

func (descriptor) Name() string { return "snappy" }

func (descriptor) Capabilities() codec.Capability { return codec.CapBufferOneShot }

// KnowsUncompressedSize reports true: snappy's block format always carries
// an exact varint-encoded length before the compressed payload, readable
// without decoding, unlike the streaming frame format.
func (descriptor) KnowsUncompressedSize() bool { return true }

func (descriptor) MaxCompressedSize(srcLen int64) int64 {
	return int64(snappy.MaxEncodedLen(int(srcLen)))
}

func (descriptor) CompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	return snappy.Encode(dst[:0], src), nil
}

func (descriptor) DecompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	if n, err := snappy.DecodedLen(src); err == nil && cap(dst) < n {
		dst = make([]byte, n)
	}
	return snappy.Decode(dst[:0], src)
}

func (descriptor) NewStream(codec.Direction, codecopts.Options) (codec.Stream, error) {
	return nil, codec.ErrUnsupported
}

func (descriptor) Splice(codec.Direction) codec.SpliceFunc { return nil }

func (descriptor) DetectHeader([]byte) bool {
	// snappy's raw block format carries no fixed magic number; detection
	// by content alone would be unreliable, so this codec opts out of
	// Sniff and must be selected explicitly.
	return false
}
