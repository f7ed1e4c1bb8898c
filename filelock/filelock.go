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

// Package filelock wraps github.com/gofrs/flock to give the splice engine
// an exclusive advisory lock held for the duration of a single file-backed
// call, per the concurrency model's "lock the file for the call" rule.
package filelock

import (
	"context"
	"time"

	"github.com/gofrs/flock"

	"github.com/nabbar/squash/errcode"
)

const defaultRetryInterval = 5 * time.Millisecond

// Lock is an exclusive advisory lock on path, released by Close.
type Lock struct {
	fl *flock.Flock
}

// Acquire blocks until it holds an exclusive lock on path or ctx is done.
// The lock file is path+".lock"; it is created if missing and never
// removed, matching flock's own convention.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	fl := flock.New(path + ".lock")

	ok, err := fl.TryLockContext(ctx, defaultRetryInterval)
	if err != nil {
		return nil, errcode.New(errcode.IO, "filelock: acquire failed", err)
	}
	if !ok {
		return nil, errcode.New(errcode.IO, "filelock: could not acquire lock", ctx.Err())
	}
	return &Lock{fl: fl}, nil
}

// Release unlocks path. It is safe to call Release more than once.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return errcode.New(errcode.IO, "filelock: release failed", err)
	}
	return nil
}
