package splice_test

import (
	"context"
	"io"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

// xorDescriptor is a trivial reversible "codec": XOR every byte with a
// fixed key. It exists purely to exercise the dispatcher's tier-selection
// logic without depending on a real compression library producing
// format-specific output that would make the test fragile.
type xorDescriptor struct {
	caps       codec.Capability
	failFirstN int // when > 0, CompressBuffer/DecompressBuffer return ErrBufferFull this many times first
	callCount  int

	bufferCalls int // counts CompressBuffer/DecompressBuffer invocations, to tell mmap/accumulator apart from stream in tests
	streamCalls int // counts NewStream invocations
}

const xorKey = 0x5a

func xorBytes(dst, src []byte) []byte {
	dst = dst[:0]
	for _, b := range src {
		dst = append(dst, b^xorKey)
	}
	return dst
}

func (d *xorDescriptor) Name() string                    { return "xor-fixture" }
func (d *xorDescriptor) Capabilities() codec.Capability  { return d.caps }
func (d *xorDescriptor) KnowsUncompressedSize() bool     { return false }
func (d *xorDescriptor) MaxCompressedSize(n int64) int64 { return n }

func (d *xorDescriptor) CompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	return d.transform(dst, src)
}

func (d *xorDescriptor) DecompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	return d.transform(dst, src)
}

func (d *xorDescriptor) transform(dst, src []byte) ([]byte, error) {
	d.bufferCalls++
	if d.callCount < d.failFirstN {
		d.callCount++
		return nil, codec.ErrBufferFull
	}
	if cap(dst) < len(src) {
		return nil, codec.ErrBufferFull
	}
	return xorBytes(dst, src), nil
}

func (d *xorDescriptor) NewStream(dir codec.Direction, _ codecopts.Options) (codec.Stream, error) {
	if !d.caps.Has(codec.CapStream) {
		return nil, codec.ErrUnsupported
	}
	d.streamCalls++
	return &xorStream{}, nil
}

func (d *xorDescriptor) Splice(dir codec.Direction) codec.SpliceFunc {
	if !d.caps.Has(codec.CapSplice) {
		return nil
	}
	return func(ctx context.Context, dst io.Writer, src io.Reader, length int64) (int64, error) {
		r := src
		if length > 0 {
			r = io.LimitReader(src, length)
		}
		buf, err := io.ReadAll(r)
		if err != nil {
			return 0, err
		}
		out := xorBytes(nil, buf)
		n, err := dst.Write(out)
		return int64(n), err
	}
}

type xorStream struct{}

func (*xorStream) Process(dst, src []byte, finish bool) (written, consumed int, result codec.StreamResult, err error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i] ^ xorKey
	}
	result = codec.StreamOK
	if finish && n == len(src) {
		result = codec.StreamEnd
	} else if n < len(src) {
		result = codec.StreamProcessing
	}
	return n, n, result, nil
}

func (*xorStream) Close() error { return nil }
