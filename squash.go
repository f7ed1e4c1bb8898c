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

// Package squash is the front door to the module: five entry points over
// the splice engine in package splice, covering every combination of
// "pick a codec by name or hand one in directly" and "pass option
// functions or a caller-built bundle."
package squash

import (
	"context"
	"io"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
	"github.com/nabbar/squash/splice"

	_ "github.com/nabbar/squash/codec/bzip2"
	_ "github.com/nabbar/squash/codec/gzip"
	_ "github.com/nabbar/squash/codec/lz4"
	_ "github.com/nabbar/squash/codec/snappy"
	_ "github.com/nabbar/squash/codec/xz"
	_ "github.com/nabbar/squash/codec/zstd"
)

// Direction re-exports codec.Direction so callers never need to import
// the codec package just to say which way a call goes.
type Direction = codec.Direction

const (
	Compress   = codec.Compress
	Decompress = codec.Decompress
)

// Splice moves bytes between source and sink through the codec registered
// under codecName, with options built from opts over the defaults.
func Splice(ctx context.Context, codecName string, dir Direction, sink io.Writer, source io.Reader, length int64, opts ...codecopts.Option) (int64, error) {
	return SpliceWithOptions(ctx, codecName, dir, sink, source, length, codecopts.New(opts...))
}

// SpliceCodec is Splice with an already-resolved codec.Descriptor instead
// of a registry lookup by name.
func SpliceCodec(ctx context.Context, c codec.Descriptor, dir Direction, sink io.Writer, source io.Reader, length int64, opts ...codecopts.Option) (int64, error) {
	return SpliceCodecWithOptions(ctx, c, dir, sink, source, length, codecopts.New(opts...))
}

// SpliceWithOptions is Splice with an explicit options bundle. An unknown
// codecName fails with errcode.BadParam.
func SpliceWithOptions(ctx context.Context, codecName string, dir Direction, sink io.Writer, source io.Reader, length int64, opts codecopts.Options) (int64, error) {
	c, err := codec.Lookup(codecName)
	if err != nil {
		return 0, errcode.New(errcode.BadParam, "squash: unknown codec name", err)
	}
	return SpliceCodecWithOptions(ctx, c, dir, sink, source, length, opts)
}

// SpliceCodecWithOptions is SpliceCodec with an explicit options bundle.
func SpliceCodecWithOptions(ctx context.Context, c codec.Descriptor, dir Direction, sink io.Writer, source io.Reader, length int64, opts codecopts.Options) (int64, error) {
	return splice.Splice(ctx, c, dir, sink, source, length, opts)
}

// SpliceCustomCodecWithOptions is identical to SpliceCodecWithOptions; it
// exists as a distinct, explicitly named entry point for callers who
// implement their own codec.Descriptor outside this module and want that
// intent visible at the call site, matching the five-entry-point surface
// the splice engine's design calls for.
func SpliceCustomCodecWithOptions(ctx context.Context, c codec.Descriptor, dir Direction, sink io.Writer, source io.Reader, length int64, opts codecopts.Options) (int64, error) {
	return splice.Splice(ctx, c, dir, sink, source, length, opts)
}
