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
	"context"
	"os"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
	"github.com/nabbar/squash/filelock"
)

// Files runs Splice between two paths, holding an exclusive advisory lock
// on both srcPath and dstPath for the duration of the call, per the
// concurrency model's file-locking rule. dstPath is created or truncated.
func Files(ctx context.Context, d codec.Descriptor, dir codec.Direction, dstPath, srcPath string, opts codecopts.Options) (int64, error) {
	lock, err := filelock.Acquire(ctx, srcPath)
	if err != nil {
		return 0, err
	}
	defer lock.Release()

	dstLock, err := filelock.Acquire(ctx, dstPath)
	if err != nil {
		return 0, err
	}
	defer dstLock.Release()

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return 0, errcode.New(errcode.IO, "splice: open source failed", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dstPath)
	if err != nil {
		return 0, errcode.New(errcode.IO, "splice: open destination failed", err)
	}
	defer dstFile.Close()

	return Splice(ctx, d, dir, dstFile, srcFile, -1, opts)
}
