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

import "io"

// limitedReader caps the number of bytes read from r at *remaining,
// decrementing it as bytes are consumed. Used on the compress side of a
// byte-budgeted call: the budget bounds how much raw input is fed in.
type limitedReader struct {
	r         io.Reader
	remaining *int64
}

func newLimitedReader(r io.Reader, remaining *int64) io.Reader {
	return &limitedReader{r: r, remaining: remaining}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if *l.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > *l.remaining {
		p = p[:*l.remaining]
	}
	n, err := l.r.Read(p)
	*l.remaining -= int64(n)
	return n, err
}

// limitedWriter caps the number of bytes actually forwarded to w at
// *remaining. Used on the decompress side of a byte-budgeted call: once
// the budget is exhausted, further bytes are silently dropped rather than
// surfaced as an error, per the clamp-and-truncate contract.
type limitedWriter struct {
	w         io.Writer
	remaining *int64
}

func newLimitedWriter(w io.Writer, remaining *int64) io.Writer {
	return &limitedWriter{w: w, remaining: remaining}
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if *l.remaining <= 0 {
		// Budget already exhausted: silently discard without forwarding
		// anything, and without surfacing a short-write error.
		return 0, nil
	}

	q := p
	if int64(len(q)) > *l.remaining {
		q = q[:*l.remaining]
	}
	n, err := l.w.Write(q)
	*l.remaining -= int64(n)
	if err != nil {
		return n, err
	}

	// Report the bytes actually forwarded, not len(p): callers track the
	// real decompressed byte count off this return value.
	return n, nil
}
