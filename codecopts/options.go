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

// Package codecopts builds the per-call option bundle passed down into a
// codec and the splice engine. It follows the functional-options idiom used
// by klauspost/compress/zstd's own Encoder/Decoder constructors rather than
// a variadic-any config map.
package codecopts

import (
	"github.com/sirupsen/logrus"
)

// Options is the immutable bundle produced by applying a list of Option.
type Options struct {
	level        int
	windowSize   int
	dictionary   []byte
	logger       *logrus.Entry
	mapSplice    MapPreference
	spliceBufLen int
}

// MapPreference mirrors the SQUASH_MAP_SPLICE values from the environment.
type MapPreference uint8

const (
	// MapAuto lets the dispatcher decide based on the process-wide default.
	MapAuto MapPreference = iota
	// MapNever forbids memory-mapped I/O for this call.
	MapNever
	// MapAlways forces memory-mapped I/O whenever the endpoints are files.
	MapAlways
)

// Option mutates an in-progress Options value.
type Option func(*Options)

// New applies opts over the documented defaults and returns the bundle.
func New(opts ...Option) Options {
	o := Options{
		level:        0,
		spliceBufLen: 512,
		logger:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// WithLevel sets the codec compression level; meaning is codec-specific and
// ignored by codecs without a level knob.
func WithLevel(level int) Option {
	return func(o *Options) { o.level = level }
}

// WithWindowSize sets the codec window size in bytes; meaning is
// codec-specific (e.g. zstd/xz dictionary window).
func WithWindowSize(size int) Option {
	return func(o *Options) { o.windowSize = size }
}

// WithDictionary attaches a preset dictionary, when the codec supports one.
func WithDictionary(dict []byte) Option {
	return func(o *Options) { o.dictionary = dict }
}

// WithLogger attaches a structured logger entry; the default is an entry on
// the standard logrus logger, so output follows that logger's level.
func WithLogger(entry *logrus.Entry) Option {
	return func(o *Options) { o.logger = entry }
}

// WithMapPreference overrides the process-wide memory-mapping preference
// for a single call.
func WithMapPreference(p MapPreference) Option {
	return func(o *Options) { o.mapSplice = p }
}

// WithStreamBufferSize overrides the scratch buffer length used by the
// stream loop path; values below 512 are raised to 512.
func WithStreamBufferSize(n int) Option {
	return func(o *Options) {
		if n < 512 {
			n = 512
		}
		o.spliceBufLen = n
	}
}

func (o Options) Level() int                     { return o.level }
func (o Options) WindowSize() int                { return o.windowSize }
func (o Options) Dictionary() []byte              { return o.dictionary }
func (o Options) Logger() *logrus.Entry           { return o.logger }
func (o Options) MapPreference() MapPreference    { return o.mapSplice }
func (o Options) StreamBufferSize() int           { return o.spliceBufLen }
