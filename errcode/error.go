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

package errcode

import (
	"errors"
	"fmt"
)

// Error pairs a CodeError with a message and an optional wrapped cause.
type Error struct {
	code   CodeError
	msg    string
	parent error
}

// New builds an Error with the given code and message, optionally wrapping a parent.
func New(code CodeError, msg string, parent error) *Error {
	return &Error{code: code, msg: msg, parent: parent}
}

// Newf builds an Error with a formatted message.
func Newf(code CodeError, parent error, format string, args ...interface{}) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...), parent: parent}
}

func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("%s: %s: %s", e.code, e.msg, e.parent.Error())
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.parent
}

// Code returns the numeric status code carried by err, or None if err does
// not carry one.
func Code(err error) CodeError {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return None
}

// Is reports whether err (or any error it wraps) carries the given code.
func Is(err error, code CodeError) bool {
	return Code(err) == code
}
