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

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
)

// minStreamBufLen is the floor on the scratch buffers the stream loop path
// allocates, regardless of what codecopts.WithStreamBufferSize requested.
const minStreamBufLen = 512

// runStreamLoop implements the incremental-processor dispatch tier: pump
// fixed scratch buffers through the codec's Stream a chunk at a time. The
// outer loop refills input from the source whenever the stream has fully
// consumed what it was given and has not yet reached end of stream; after a
// StreamProcessing result no new input is read, and Process is redriven
// with whatever input is still pending until the stream has flushed
// everything it can produce from it.
func runStreamLoop(d codec.Descriptor, dir codec.Direction, w io.Writer, r io.Reader, length int64, opts codecopts.Options) (int64, error) {
	st, err := d.NewStream(dir, opts)
	if err != nil {
		return 0, errcode.New(errcode.Failed, "splice: stream init failed", err)
	}
	defer st.Close()

	bufLen := opts.StreamBufferSize()
	if bufLen < minStreamBufLen {
		bufLen = minStreamBufLen
	}

	in := make([]byte, bufLen)
	out := make([]byte, bufLen)

	// As in the accumulator path, length bounds the compress-side read
	// only; on decompress the sink is budget-limited by the caller via a
	// limitedWriter, and the loop below stops pulling more compressed
	// input once that budget is met instead of draining the whole source.
	src := r
	if length > 0 && dir == codec.Compress {
		src = io.LimitReader(r, length)
	}

	var (
		total   int64
		pending []byte
		finish  bool
		last    codec.StreamResult
	)

	for {
		if len(pending) == 0 && !finish && last != codec.StreamProcessing {
			n, rerr := src.Read(in)
			if n > 0 {
				pending = in[:n]
			}
			switch {
			case rerr == io.EOF:
				finish = true
			case rerr != nil:
				return total, errcode.New(errcode.IO, "splice: source read failed", rerr)
			}
		}

		written, consumed, result, perr := st.Process(out, pending, finish)
		if perr != nil {
			return total, errcode.New(errcode.Failed, "splice: stream process failed", perr)
		}
		pending = pending[consumed:]
		last = result

		if written > 0 {
			n, werr := w.Write(out[:written])
			total += int64(n)
			if werr != nil {
				return total, errcode.New(errcode.IO, "splice: sink write failed", werr)
			}
		}

		if result == codec.StreamEnd {
			return total, nil
		}

		if dir == codec.Decompress && length > 0 && total >= length {
			return total, nil
		}
	}
}
