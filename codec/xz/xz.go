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

// Package xz registers the "xz" codec on top of github.com/ulikunitz/xz, a
// stream-only backend: the library exposes no one-shot buffer transform,
// so this codec only ever drives the splice engine's stream loop path.
package xz

import (
	"io"

	"github.com/ulikunitz/xz"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

func init() {
	codec.Register(descriptor{})
}

type descriptor struct{}

func (descriptor) Name() string { return "xz" }

func (descriptor) Capabilities() codec.Capability { return codec.CapStream }

func (descriptor) KnowsUncompressedSize() bool { return false }

func (descriptor) MaxCompressedSize(srcLen int64) int64 {
	return srcLen + srcLen/2 + 4096
}

func (descriptor) CompressBuffer(_, _ []byte, _ codecopts.Options) ([]byte, error) {
	return nil, codec.ErrUnsupported
}

func (descriptor) DecompressBuffer(_, _ []byte, _ codecopts.Options) ([]byte, error) {
	return nil, codec.ErrUnsupported
}

func (descriptor) NewStream(dir codec.Direction, _ codecopts.Options) (codec.Stream, error) {
	if dir == codec.Compress {
		return codec.NewCompressStream(func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		})
	}

	return codec.NewDecompressStream(func(r io.Reader) (io.Reader, error) {
		return xz.NewReader(r)
	})
}

func (descriptor) Splice(codec.Direction) codec.SpliceFunc { return nil }

func (descriptor) DetectHeader(peek []byte) bool {
	magic := []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	if len(peek) < len(magic) {
		return false
	}
	for i, b := range magic {
		if peek[i] != b {
			return false
		}
	}
	return true
}
