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

// Package bzip2 registers the "bzip2" codec. The standard library's
// compress/bzip2 is read-only, so compression is delegated to
// github.com/dsnet/compress/bzip2 and decompression stays on the standard
// library; both sides are stream-only.
package bzip2

import (
	stdbzip2 "compress/bzip2"
	"io"

	dbzip2 "github.com/dsnet/compress/bzip2"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

func init() {
	codec.Register(descriptor{})
}

type descriptor struct{}

func (descriptor) Name() string { return "bzip2" }

func (descriptor) Capabilities() codec.Capability { return codec.CapStream }

func (descriptor) KnowsUncompressedSize() bool { return false }

func (descriptor) MaxCompressedSize(srcLen int64) int64 {
	return srcLen + srcLen/100 + 4096
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
			cfg := &dbzip2.WriterConfig{Level: clampLevel(opts.Level())}
			return dbzip2.NewWriter(w, cfg)
		})
	}

	return codec.NewDecompressStream(func(r io.Reader) (io.Reader, error) {
		return stdbzip2.NewReader(r), nil
	})
}

func (descriptor) Splice(codec.Direction) codec.SpliceFunc { return nil }

func (descriptor) DetectHeader(peek []byte) bool {
	return len(peek) >= 3 && peek[0] == 'B' && peek[1] == 'Z' && peek[2] == 'h'
}

func clampLevel(level int) int {
	if level < 1 || level > 9 {
		return dbzip2.DefaultCompression
	}
	return level
}
