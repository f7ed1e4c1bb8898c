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

// Package zstd registers the "zstd" codec on top of
// github.com/klauspost/compress/zstd, one of the two "knowing" backends in
// this module (snappy is the other): a zstd frame header carries the
// uncompressed content size,
// so DecompressBuffer can size its destination exactly instead of growing
// speculatively.
package zstd

import (
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

func init() {
	codec.Register(descriptor{})
}

type descriptor struct{}

func (descriptor) Name() string { return "zstd" }

func (descriptor) Capabilities() codec.Capability {
	return codec.CapBufferOneShot | codec.CapStream
}

func (descriptor) KnowsUncompressedSize() bool { return true }

func (descriptor) MaxCompressedSize(srcLen int64) int64 {
	return srcLen + srcLen/5 + 1024
}

func (descriptor) CompressBuffer(dst, src []byte, opts codecopts.Options) ([]byte, error) {
	enc, err := newEncoder(opts)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, dst[:0]), nil
}

func (descriptor) DecompressBuffer(dst, src []byte, opts codecopts.Options) ([]byte, error) {
	dec, err := newDecoder(opts)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	if n, ok := uncompressedSize(src); ok && cap(dst) < int(n) {
		dst = make([]byte, 0, n)
	}
	return dec.DecodeAll(src, dst[:0])
}

func (descriptor) NewStream(dir codec.Direction, opts codecopts.Options) (codec.Stream, error) {
	if dir == codec.Compress {
		return codec.NewCompressStream(func(w io.Writer) (io.WriteCloser, error) {
			level := zstd.SpeedDefault
			if opts.Level() > 0 {
				level = zstd.EncoderLevelFromZstd(opts.Level())
			}
			return zstd.NewWriter(w, zstd.WithEncoderLevel(level))
		})
	}

	return codec.NewDecompressStream(func(r io.Reader) (io.Reader, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return &readCloserDecoder{Decoder: dec}, nil
	})
}

func (descriptor) Splice(codec.Direction) codec.SpliceFunc { return nil }

func (descriptor) DetectHeader(peek []byte) bool {
	return len(peek) >= 4 &&
		peek[0] == 0x28 && peek[1] == 0xb5 && peek[2] == 0x2f && peek[3] == 0xfd
}

// readCloserDecoder adapts *zstd.Decoder's Close() (no error return) to
// the io.Closer signature the generic stream adapter expects.
type readCloserDecoder struct {
	*zstd.Decoder
}

func (r *readCloserDecoder) Close() error {
	r.Decoder.Close()
	return nil
}

func newEncoder(opts codecopts.Options) (*zstd.Encoder, error) {
	level := zstd.SpeedDefault
	if opts.Level() > 0 {
		level = zstd.EncoderLevelFromZstd(opts.Level())
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
}

func newDecoder(_ codecopts.Options) (*zstd.Decoder, error) {
	return zstd.NewReader(nil)
}

// uncompressedSize extracts the content-size field from a zstd frame
// header, when present, following the frame layout: a 4-byte magic number,
// a frame header descriptor byte whose top two bits select the
// content-size field width, a window descriptor byte unless the frame is
// single-segment, an optional dictionary ID, then the content size in
// little-endian order.
func uncompressedSize(frame []byte) (uint64, bool) {
	if len(frame) < 6 {
		return 0, false
	}
	fhd := frame[4]
	sizeFlag := fhd >> 6
	singleSegment := fhd&(1<<5) != 0

	var fieldLen int
	switch sizeFlag {
	case 0:
		if singleSegment {
			fieldLen = 1
		} else {
			return 0, false
		}
	case 1:
		fieldLen = 2
	case 2:
		fieldLen = 4
	case 3:
		fieldLen = 8
	}

	off := 5
	if !singleSegment { // window descriptor byte
		off++
	}
	if did := fhd & 0x03; did != 0 { // dictionary ID present, skip it first
		off += []int{0, 1, 2, 4}[did]
	}
	if off+fieldLen > len(frame) {
		return 0, false
	}

	buf := make([]byte, 8)
	copy(buf, frame[off:off+fieldLen])
	size := binary.LittleEndian.Uint64(buf)

	if fieldLen == 2 {
		size += 256
	}
	return size, true
}
