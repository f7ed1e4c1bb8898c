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

package lz4

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/pierrec/lz4/v4"
)

// spliceBlockSize is the uncompressed chunk size the native splice path
// frames each block at, matching the block-oriented streaming idiom used
// by cgo LZ4 wrappers in the wild (a fixed block size plus a 4-byte
// little-endian length prefix per block).
const spliceBlockSize = 64 * 1024

// spliceCompress is lz4's native splice implementation: it frames the
// source as independent length-prefixed compressed blocks without routing
// through the generic Stream cursor adaptor, giving the dispatcher's
// CapSplice tier (spec.md's highest-preference path) a real backend to
// exercise.
func spliceCompress(ctx context.Context, dst io.Writer, src io.Reader, length int64) (int64, error) {
	var (
		total   int64
		in      = make([]byte, spliceBlockSize)
		out     = make([]byte, lz4.CompressBlockBound(spliceBlockSize))
		hdr     [4]byte
		limited = src
	)
	if length > 0 {
		limited = io.LimitReader(src, length)
	}

	var c lz4.Compressor
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, rerr := io.ReadFull(limited, in)
		if n > 0 {
			m, cerr := c.CompressBlock(in[:n], out)
			if cerr != nil {
				return total, cerr
			}

			block := out[:m]
			if m == 0 {
				block = in[:n]
			}
			binary.LittleEndian.PutUint32(hdr[:], uint32(len(block))<<1|boolToBit(m == 0))

			if _, werr := dst.Write(hdr[:]); werr != nil {
				return total, werr
			}
			if _, werr := dst.Write(block); werr != nil {
				return total, werr
			}
			total += int64(n)
		}

		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}

// spliceDecompress reverses spliceCompress's framing.
func spliceDecompress(ctx context.Context, dst io.Writer, src io.Reader, _ int64) (int64, error) {
	var (
		total int64
		hdr   [4]byte
		out   = make([]byte, spliceBlockSize)
	)

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		if _, err := io.ReadFull(src, hdr[:]); err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}

		raw := binary.LittleEndian.Uint32(hdr[:])
		stored := raw&1 == 1
		blockLen := int(raw >> 1)

		block := make([]byte, blockLen)
		if _, err := io.ReadFull(src, block); err != nil {
			return total, err
		}

		if stored {
			if _, err := dst.Write(block); err != nil {
				return total, err
			}
			total += int64(blockLen)
			continue
		}

		n, err := lz4.UncompressBlock(block, out)
		if err != nil {
			return total, err
		}
		if _, err := dst.Write(out[:n]); err != nil {
			return total, err
		}
		total += int64(n)
	}
}

func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
