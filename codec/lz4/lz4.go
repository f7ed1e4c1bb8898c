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

// Package lz4 registers the "lz4" codec on top of github.com/pierrec/lz4/v4.
// It is the one codec in this module that backs all three capability
// tiers: the block API gives it a one-shot buffer transform, lz4.Writer/
// Reader give it a stream, and splice.go gives it a hand-rolled native
// splice loop built directly on the block API's compress/uncompress pair.
package lz4

import (
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

func init() {
	codec.Register(descriptor{})
}

type descriptor struct{}

func (descriptor) Name() string { return "lz4" }

func (descriptor) Capabilities() codec.Capability {
	return codec.CapBufferOneShot | codec.CapStream | codec.CapSplice
}

func (descriptor) KnowsUncompressedSize() bool { return false }

func (descriptor) MaxCompressedSize(srcLen int64) int64 {
	return int64(lz4.CompressBlockBound(int(srcLen)))
}

func (descriptor) CompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(src))
	if cap(dst) < bound {
		dst = make([]byte, bound)
	}
	dst = dst[:bound]

	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 && len(src) > 0 {
		// incompressible input: lz4 reports n==0 rather than growing the
		// block, so fall back to storing the raw bytes verbatim.
		return append(dst[:0], src...), nil
	}
	return dst[:n], nil
}

func (descriptor) DecompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	if cap(dst) == 0 {
		dst = make([]byte, len(src)*4+64)
	}
	for {
		n, err := lz4.UncompressBlock(src, dst)
		if err == nil {
			return dst[:n], nil
		}
		if err == lz4.ErrInvalidSourceShortBuffer {
			dst = make([]byte, len(dst)*2)
			continue
		}
		return nil, err
	}
}

func (descriptor) NewStream(dir codec.Direction, opts codecopts.Options) (codec.Stream, error) {
	if dir == codec.Compress {
		return codec.NewCompressStream(func(w io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(w), nil
		})
	}

	return codec.NewDecompressStream(func(r io.Reader) (io.Reader, error) {
		return lz4.NewReader(r), nil
	})
}

func (descriptor) Splice(dir codec.Direction) codec.SpliceFunc {
	if dir == codec.Compress {
		return spliceCompress
	}
	return spliceDecompress
}

func (descriptor) DetectHeader(peek []byte) bool {
	return len(peek) >= 4 && peek[0] == 0x04 && peek[1] == 0x22 && peek[2] == 0x4d && peek[3] == 0x18
}
