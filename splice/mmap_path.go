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
	"os"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
	"github.com/nabbar/squash/mmapwindow"
)

// runMmapOneShot implements the mapped-file one-shot dispatch tier: map
// the whole source file, hand the codec a destination window sized by the
// doubling strategy, and grow the window (not just the codec's return
// buffer) until the transform's output fits. This also covers codecs
// whose one-shot API grows its own destination slice internally (every
// codec wired into this module does) by detecting an oversized result
// after the fact and re-running the transform against a bigger window,
// which keeps the on-disk destination file mapped and truncated to the
// exact output size rather than over-allocated.
func runMmapOneShot(d codec.Descriptor, dir codec.Direction, dstFile, srcFile *os.File, opts codecopts.Options) (int64, error) {
	st, err := srcFile.Stat()
	if err != nil {
		return 0, errcode.New(errcode.IO, "splice: stat source failed", err)
	}

	srcLen := st.Size()
	mapLen := srcLen
	if mapLen <= 0 {
		mapLen = 1
	}

	srcWin, err := mmapwindow.Open(srcFile, mapLen)
	if err != nil {
		return 0, err
	}
	rl := &releaseList{}
	rl.add(srcWin)
	defer rl.closeAll()

	src := srcWin.Bytes()[:srcLen]

	// As in the accumulator path, prefer the codec's own declared
	// compressed-size bound for sizing the compress-side destination
	// window; decompress still relies on the doubling-seed heuristic.
	var seed int64
	if dir == codec.Compress {
		if m := d.MaxCompressedSize(srcLen); m > 0 {
			seed = m
		}
	}
	if seed <= 0 {
		seed = int64(nextPowerOfTwo(int(srcLen)) << 3)
	}
	if seed <= 0 {
		seed = 4096
	}

	for {
		if seed > accumulatorSizeCap {
			return 0, errcode.New(errcode.InvalidBuffer, "splice: mmap one-shot exceeded sanity cap", nil)
		}

		dstWin, err := mmapwindow.Open(dstFile, seed)
		if err != nil {
			return 0, err
		}

		var out []byte
		var terr error
		if dir == codec.Compress {
			out, terr = d.CompressBuffer(dstWin.Bytes()[:0], src, opts)
		} else {
			out, terr = d.DecompressBuffer(dstWin.Bytes()[:0], src, opts)
		}

		if terr == codec.ErrBufferFull {
			_ = dstWin.Close()
			seed *= 2
			continue
		}
		if terr != nil {
			_ = dstWin.Close()
			return 0, errcode.New(errcode.Failed, "splice: buffer transform failed", terr)
		}

		if int64(len(out)) > seed {
			// the codec's buffer API grew its own destination past the
			// window; retry with a window large enough to hold it.
			_ = dstWin.Close()
			seed = int64(nextPowerOfTwo(len(out)))
			continue
		}

		copy(dstWin.Bytes(), out)
		if err := dstWin.Truncate(int64(len(out))); err != nil {
			_ = dstWin.Close()
			return 0, err
		}
		if err := dstWin.Sync(); err != nil {
			_ = dstWin.Close()
			return 0, err
		}
		if err := dstWin.Close(); err != nil {
			return 0, err
		}
		return int64(len(out)), nil
	}
}
