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

// Package mmapwindow provides a growable, page-aligned memory-mapped view
// over a regular file, used by the splice engine's mmap one-shot path when
// an endpoint is backed by *os.File.
package mmapwindow

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/nabbar/squash/errcode"
)

// Window is a memory-mapped region over a file, grown in place by Grow and
// flushed back to disk by Sync. Open maps it read/write, or read-only when
// the file was opened read-only.
type Window struct {
	mu   sync.Mutex
	file *os.File
	data []byte
	size int64
}

// Open maps the first size bytes of f. The file is truncated up to size if
// it is currently shorter.
func Open(f *os.File, size int64) (*Window, error) {
	if size <= 0 {
		return nil, errcode.New(errcode.BadParam, "mmapwindow: size must be positive", nil)
	}

	st, err := f.Stat()
	if err != nil {
		return nil, errcode.New(errcode.IO, "mmapwindow: stat failed", err)
	}
	if st.Size() < size {
		if err := f.Truncate(size); err != nil {
			return nil, errcode.New(errcode.IO, "mmapwindow: truncate failed", err)
		}
	}

	prot := unix.PROT_READ | unix.PROT_WRITE
	if fl, ferr := unix.FcntlInt(f.Fd(), unix.F_GETFL, 0); ferr == nil && fl&unix.O_ACCMODE == unix.O_RDONLY {
		prot = unix.PROT_READ
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, errcode.New(errcode.Memory, "mmapwindow: mmap failed", err)
	}

	return &Window{file: f, data: data, size: size}, nil
}

// Bytes returns the mapped region. The slice is only valid until the next
// call to Grow or Close.
func (w *Window) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data
}

// Grow remaps the window to newSize, which must be >= the current size.
// The file is truncated to match before remapping.
func (w *Window) Grow(newSize int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if newSize <= w.size {
		return nil
	}
	if err := w.file.Truncate(newSize); err != nil {
		return errcode.New(errcode.IO, "mmapwindow: truncate on grow failed", err)
	}
	if err := unix.Munmap(w.data); err != nil {
		return errcode.New(errcode.Memory, "mmapwindow: munmap on grow failed", err)
	}

	data, err := unix.Mmap(int(w.file.Fd()), 0, int(newSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return errcode.New(errcode.Memory, "mmapwindow: remap on grow failed", err)
	}

	w.data = data
	w.size = newSize
	return nil
}

// Sync flushes dirty mapped pages back to the file.
func (w *Window) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := unix.Msync(w.data, unix.MS_SYNC); err != nil {
		return errcode.New(errcode.IO, "mmapwindow: msync failed", err)
	}
	return nil
}

// Close unmaps the window. It does not close the underlying file.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.data == nil {
		return nil
	}
	err := unix.Munmap(w.data)
	w.data = nil
	if err != nil {
		return errcode.New(errcode.Memory, "mmapwindow: munmap on close failed", err)
	}
	return nil
}

// Truncate shrinks the on-disk file (and the caller's view of the window)
// to n bytes without remapping; callers must re-slice Bytes()[:n] since
// the mapping itself keeps its original size until the next Grow.
func (w *Window) Truncate(n int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n > w.size {
		return errcode.Newf(errcode.BadParam, nil, "mmapwindow: truncate length %d exceeds window size %d", n, w.size)
	}
	if err := w.file.Truncate(n); err != nil {
		return errcode.New(errcode.IO, "mmapwindow: truncate failed", err)
	}
	return nil
}
