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

// Package splice implements the capability-tiered dispatcher at the heart
// of this module: given a codec, a direction, and a pair of endpoints, it
// picks the best available path among native splice, mapped-file one-shot,
// incremental stream, and buffered one-shot accumulator, in that order of
// preference.
package splice

import (
	"context"
	"io"
	"os"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
)

// Splice moves bytes from source to sink through d, in the given
// direction. length bounds the number of raw (uncompressed) bytes the
// call is allowed to touch: on Compress it caps how much of source is
// read; on Decompress it caps how much is written to sink, with any
// overshoot truncated silently. length <= 0 means unbounded: the entire
// input on Compress, until end-of-stream on Decompress.
//
// Splice never returns codec.ErrBufferFull: that sentinel is an internal
// control-flow signal consumed entirely by the one-shot paths.
func Splice(ctx context.Context, d codec.Descriptor, dir codec.Direction, sink io.Writer, source io.Reader, length int64, opts codecopts.Options) (int64, error) {
	if d == nil {
		return 0, errcode.New(errcode.BadParam, "splice: nil codec descriptor", nil)
	}
	if sink == nil || source == nil {
		return 0, errcode.New(errcode.BadParam, "splice: nil sink or source", nil)
	}
	if err := ctx.Err(); err != nil {
		return 0, errcode.New(errcode.IO, "splice: context already done", err)
	}

	log := opts.Logger().WithField("codec", d.Name()).WithField("direction", dir.String())
	caps := d.Capabilities()
	if caps == 0 {
		return 0, errcode.New(errcode.BadParam, "splice: codec advertises no capability", nil)
	}

	budgeted := length > 0
	var remaining int64
	if budgeted {
		remaining = length
		if dir == codec.Compress {
			source = newLimitedReader(source, &remaining)
		} else {
			sink = newLimitedWriter(sink, &remaining)
		}
	}

	if caps.Has(codec.CapSplice) {
		if fn := d.Splice(dir); fn != nil {
			log.WithField("path", "native-splice").Debug("dispatching")
			n, err := fn(ctx, sink, source, length)
			if err != nil {
				return n, errcode.New(errcode.IO, "splice: native splice failed", err)
			}
			return n, nil
		}
	}

	// The mmap one-shot tier only applies to whole, unbudgeted files: a
	// partial byte budget and a single mmap-backed transform don't compose,
	// since the codec's one-shot API has no notion of "stop after N bytes".
	if !budgeted && caps.Has(codec.CapBufferOneShot) && mmapAllowed(opts, caps) {
		if dstFile, srcFile, ok := fileEndpoints(sink, source); ok {
			n, err := runMmapOneShot(d, dir, dstFile, srcFile, opts)
			if err == nil {
				log.WithField("path", "mmap").WithField("bytes", n).Debug("dispatched")
				return n, nil
			}
			log.WithField("path", "mmap").WithError(err).Warn("mmap one-shot path failed, falling back")
			if _, serr := srcFile.Seek(0, io.SeekStart); serr != nil {
				return 0, errcode.New(errcode.IO, "splice: rewind after mmap fallback failed", serr)
			}
			if _, serr := dstFile.Seek(0, io.SeekStart); serr != nil {
				return 0, errcode.New(errcode.IO, "splice: rewind after mmap fallback failed", serr)
			}
			if terr := dstFile.Truncate(0); terr != nil {
				return 0, errcode.New(errcode.IO, "splice: truncate after mmap fallback failed", terr)
			}
		}
	}

	if caps.Has(codec.CapStream) {
		log.WithField("path", "stream").Debug("dispatching")
		return runStreamLoop(d, dir, sink, source, length, opts)
	}

	if caps.Has(codec.CapBufferOneShot) {
		log.WithField("path", "accumulator").Debug("dispatching")
		return runAccumulator(d, dir, sink, source, length, opts)
	}

	return 0, errcode.New(errcode.BadParam, "splice: codec advertises no usable capability for this call", nil)
}

func fileEndpoints(sink io.Writer, source io.Reader) (*os.File, *os.File, bool) {
	dstFile, ok1 := sink.(*os.File)
	srcFile, ok2 := source.(*os.File)
	return dstFile, srcFile, ok1 && ok2
}
