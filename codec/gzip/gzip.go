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

// Package gzip registers the "gzip" codec, a stream-only backend built on
// the standard library's compress/gzip. Unlike the dedicated third-party
// codecs in sibling packages, gzip has no one-shot buffer API of its own,
// so it only ever advertises CapStream and drives the splice engine's
// stream loop path.
package gzip

import (
	"compress/gzip"
	"io"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

func init() {
	codec.Register(descriptor{})
}

type descriptor struct{}

func (descriptor) Name() string { return "gzip" }

func (descriptor) Capabilities() codec.Capability { return codec.CapStream }

func (descriptor) KnowsUncompressedSize() bool { return false }

func (descriptor) MaxCompressedSize(srcLen int64) int64 {
	// gzip framing overhead: 18-byte header+trailer plus a small margin for
	// incompressible input passed through deflate stored blocks.
	return srcLen + srcLen/1000 + 64
}

func (descriptor) CompressBuffer(_, _ []byte, _ codecopts.Options) ([]byte, error) {
	return nil, codec.ErrUnsupported
}

func (descriptor) DecompressBuffer(_, _ []byte, _ codecopts.Options) ([]byte, error) {
	return nil, codec.ErrUnsupported
}

func (descriptor) NewStream(dir codec.Direction, opts codecopts.Options) (codec.Stream, error) {
	if dir == codec.Compress {
		return codec.NewCompressStream(func(w io.Writer) (io.WriteCloser, error) {
			if opts.Level() != 0 {
				return gzip.NewWriterLevel(w, clampLevel(opts.Level()))
			}
			return gzip.NewWriter(w), nil
		})
	}

	return codec.NewDecompressStream(func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	})
}

func (descriptor) Splice(codec.Direction) codec.SpliceFunc { return nil }

func (descriptor) DetectHeader(peek []byte) bool {
	return len(peek) >= 2 && peek[0] == 0x1f && peek[1] == 0x8b
}

func clampLevel(level int) int {
	if level < gzip.HuffmanOnly {
		return gzip.DefaultCompression
	}
	if level > gzip.BestCompression {
		return gzip.BestCompression
	}
	return level
}
