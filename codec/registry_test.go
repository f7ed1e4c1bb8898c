package codec_test

import (
	"context"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
)

type fakeDescriptor struct {
	name string
	caps codec.Capability
}

func (f *fakeDescriptor) Name() string                          { return f.name }
func (f *fakeDescriptor) Capabilities() codec.Capability        { return f.caps }
func (f *fakeDescriptor) KnowsUncompressedSize() bool           { return false }
func (f *fakeDescriptor) MaxCompressedSize(n int64) int64       { return n + 64 }
func (f *fakeDescriptor) Splice(codec.Direction) codec.SpliceFunc { return nil }

func (f *fakeDescriptor) CompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	return append(dst, src...), nil
}

func (f *fakeDescriptor) DecompressBuffer(dst, src []byte, _ codecopts.Options) ([]byte, error) {
	return append(dst, src...), nil
}

func (f *fakeDescriptor) NewStream(codec.Direction, codecopts.Options) (codec.Stream, error) {
	return nil, codec.ErrUnsupported
}

var _ = Describe("TC-CD-001: codec registry", func() {
	var d *fakeDescriptor

	BeforeEach(func() {
		d = &fakeDescriptor{name: "fake-registry-test", caps: codec.CapBufferOneShot}
		codec.Register(d)
	})

	Context("TC-CD-002: a registered codec", func() {
		It("TC-CD-003: should be returned by Lookup and listed", func() {
			got, err := codec.Lookup("fake-registry-test")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(d))
			Expect(codec.List()).To(ContainElement("fake-registry-test"))
		})
	})

	Context("TC-CD-004: an unregistered name", func() {
		It("TC-CD-005: should fail with UnableToLoad", func() {
			_, err := codec.Lookup("does-not-exist")
			Expect(err).To(HaveOccurred())
			Expect(errcode.Is(err, errcode.UnableToLoad)).To(BeTrue())
		})
	})
})

var _ = Describe("TC-CD-010: header sniffing", func() {
	It("TC-CD-011: should report an error for empty input without panicking", func() {
		_, _, err := codec.Sniff(io.LimitReader(strictReader{}, 0))
		Expect(err).To(HaveOccurred())
	})
})

type strictReader struct{}

func (strictReader) Read(p []byte) (int, error) { return 0, context.Canceled }
