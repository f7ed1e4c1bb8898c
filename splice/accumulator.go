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

package splice

import (
	"io"
	"math/bits"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
)

// accumulatorSizeCap bounds how large the one-shot destination buffer may
// grow before the doubling strategy gives up. This resolves spec.md's
// open question about an unbounded doubling loop: beyond 1 GiB the call
// fails with InvalidBuffer instead of growing further.
const accumulatorSizeCap = 1 << 30

// nextPowerOfTwo returns the smallest power of two >= n, or 1 for n <= 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// runAccumulator implements the lowest-preference dispatch tier: drain the
// whole source into memory, hand it to the codec's one-shot buffer
// transform, growing the destination by doubling whenever the codec
// reports ErrBufferFull, then write the result out in one call.
func runAccumulator(d codec.Descriptor, dir codec.Direction, w io.Writer, r io.Reader, length int64, opts codecopts.Options) (int64, error) {
	// The byte budget only bounds the compress-side source read; on
	// decompress it bounds the sink write instead (applied by the caller
	// via a limitedWriter), so the whole encoded source must be drained
	// here regardless of length.
	srcLimit := int64(-1)
	if dir == codec.Compress {
		srcLimit = length
	}

	src, err := drainAll(r, srcLimit)
	if err != nil {
		return 0, err
	}

	// On compress, size the destination from the codec's own declared
	// bound instead of guessing, per the max_output step of the one-shot
	// transform; decompress has no such bound to consult, so it keeps the
	// doubling-seed heuristic.
	seed := 0
	if dir == codec.Compress {
		if m := d.MaxCompressedSize(int64(len(src))); m > 0 {
			seed = int(m)
		}
	}
	if seed <= 0 {
		seed = nextPowerOfTwo(len(src)) << 3
	}
	if seed <= 0 {
		seed = 4096
	}

	dst := make([]byte, 0, seed)
	for {
		var out []byte
		var terr error

		if dir == codec.Compress {
			out, terr = d.CompressBuffer(dst, src, opts)
		} else {
			out, terr = d.DecompressBuffer(dst, src, opts)
		}

		if terr == codec.ErrBufferFull {
			if cap(dst)*2 > accumulatorSizeCap {
				return 0, errcode.New(errcode.InvalidBuffer, "splice: accumulator exceeded sanity cap", nil)
			}
			dst = make([]byte, 0, cap(dst)*2)
			continue
		}
		if terr != nil {
			return 0, errcode.New(errcode.Failed, "splice: buffer transform failed", terr)
		}

		n, werr := w.Write(out)
		if werr != nil {
			return int64(n), errcode.New(errcode.IO, "splice: sink write failed", werr)
		}
		return int64(n), nil
	}
}

func drainAll(r io.Reader, length int64) ([]byte, error) {
	lr := r
	if length > 0 {
		lr = io.LimitReader(r, length)
	}
	buf, err := io.ReadAll(lr)
	if err != nil {
		return nil, errcode.New(errcode.IO, "splice: source read failed", err)
	}
	return buf, nil
}
