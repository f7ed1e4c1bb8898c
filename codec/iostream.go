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

package codec

import (
	"bytes"
	"io"
)

// NewCompressStream adapts a push-based io.WriteCloser compressor (the
// shape stdlib compress/gzip, dsnet/compress/bzip2, pierrec/lz4/v4 and
// klauspost/compress/zstd all share) to the Stream cursor contract. The
// compressor writes into an internal buffer that Process drains into the
// caller's destination slice across as many calls as it takes.
func NewCompressStream(newWriter func(io.Writer) (io.WriteCloser, error)) (Stream, error) {
	s := &compressStream{out: &bytes.Buffer{}}

	wc, err := newWriter(s.out)
	if err != nil {
		return nil, err
	}
	s.wc = wc
	return s, nil
}

type compressStream struct {
	wc     io.WriteCloser
	out    *bytes.Buffer
	closed bool
}

func (s *compressStream) Process(dst, src []byte, finish bool) (written, consumed int, result StreamResult, err error) {
	if len(src) > 0 {
		n, werr := s.wc.Write(src)
		consumed = n
		if werr != nil {
			return 0, consumed, StreamOK, werr
		}
	}

	if finish && !s.closed && s.out.Len() == 0 {
		s.closed = true
		if cerr := s.wc.Close(); cerr != nil {
			return 0, consumed, StreamOK, cerr
		}
	}

	written = s.out.Len()
	if written > len(dst) {
		written = len(dst)
	}
	if written > 0 {
		copy(dst, s.out.Next(written))
	}

	switch {
	case !finish:
		result = StreamOK
	case s.out.Len() > 0 || !s.closed:
		result = StreamProcessing
	default:
		result = StreamEnd
	}
	return written, consumed, result, nil
}

func (s *compressStream) Close() error {
	return s.wc.Close()
}

// NewDecompressStream adapts a pull-based decompressor (anything built
// from an io.Reader constructor, e.g. gzip.NewReader, bzip2.NewReader,
// lz4.NewReader, xz.NewReader, zstd.NewReader) to the Stream cursor
// contract. Input fed via Process is queued in an internal buffer that the
// decompressor reads from on demand.
func NewDecompressStream(newReader func(io.Reader) (io.Reader, error)) (Stream, error) {
	fr := &feedReader{buf: &bytes.Buffer{}}

	r, err := newReader(fr)
	if err != nil {
		return nil, err
	}
	return &decompressStream{fr: fr, r: r}, nil
}

// feedReader exposes a bytes.Buffer filled incrementally by Process as an
// io.Reader whose EOF is deferred until finish is signaled and the buffer
// has drained, matching the "no more input yet" vs "true end of stream"
// distinction the decompressor needs.
type feedReader struct {
	buf      *bytes.Buffer
	finished bool
}

func (f *feedReader) Read(p []byte) (int, error) {
	if f.buf.Len() == 0 {
		if f.finished {
			return 0, io.EOF
		}
		return 0, nil
	}
	return f.buf.Read(p)
}

type decompressStream struct {
	fr *feedReader
	r  io.Reader
}

func (s *decompressStream) Process(dst, src []byte, finish bool) (written, consumed int, result StreamResult, err error) {
	if len(src) > 0 {
		n, werr := s.fr.buf.Write(src)
		consumed = n
		if werr != nil {
			return 0, consumed, StreamOK, werr
		}
	}
	if finish {
		s.fr.finished = true
	}

	n, rerr := s.r.Read(dst)
	written = n

	switch {
	case rerr == io.EOF:
		return written, consumed, StreamEnd, nil
	case rerr != nil:
		return written, consumed, StreamOK, rerr
	default:
		return written, consumed, StreamOK, nil
	}
}

func (s *decompressStream) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
