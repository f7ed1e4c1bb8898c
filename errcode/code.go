/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package errcode provides the numeric error-code taxonomy shared by every
// splice path, modeled after HTTP-style status codes rather than ad hoc
// string errors so callers can switch on a stable code instead of matching
// message text.
package errcode

import "strconv"

// CodeError is a small numeric status, stable across message wording changes.
type CodeError uint16

const (
	// None marks the zero value, never returned from a failing call.
	None CodeError = iota

	// BadParam: invalid direction, unknown codec name, nil descriptor.
	BadParam
	// Memory: allocation or buffer-growth failure.
	Memory
	// IO: hard I/O failure surfaced by the sink, source, file, or lock.
	IO
	// InvalidBuffer: the codec rejected the supplied buffer contents.
	InvalidBuffer
	// Failed: codec-internal failure not otherwise classified.
	Failed
	// UnableToLoad: codec registration or lookup failure.
	UnableToLoad
)

var names = map[CodeError]string{
	None:          "none",
	BadParam:      "bad parameter",
	Memory:        "memory",
	IO:            "io",
	InvalidBuffer: "invalid buffer",
	Failed:        "failed",
	UnableToLoad:  "unable to load",
}

// String returns the lower-case name of the code, or its numeric value if unknown.
func (c CodeError) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// Uint16 returns the numeric code value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}
