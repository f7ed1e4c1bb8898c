package splice_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/errcode"
	"github.com/nabbar/squash/splice"
)

var _ = Describe("TC-SP-001: capability-tiered dispatch", func() {
	payload := bytes.Repeat([]byte("splice-dispatch-payload "), 200)

	DescribeTable("TC-SP-002: round-trip through each capability tier",
		func(caps codec.Capability) {
			d := &xorDescriptor{caps: caps}

			var compressed bytes.Buffer
			n, err := splice.Splice(context.Background(), d, codec.Compress, &compressed, bytes.NewReader(payload), int64(len(payload)), codecopts.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(len(payload))))

			var decompressed bytes.Buffer
			_, err = splice.Splice(context.Background(), d, codec.Decompress, &decompressed, bytes.NewReader(compressed.Bytes()), -1, codecopts.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(decompressed.Bytes()).To(Equal(payload))
		},
		Entry("TC-SP-003: native splice tier", codec.CapSplice),
		Entry("TC-SP-004: stream tier", codec.CapStream),
		Entry("TC-SP-005: buffer one-shot (accumulator) tier", codec.CapBufferOneShot),
	)

	Context("TC-SP-006: empty input", func() {
		It("TC-SP-007: should round-trip zero bytes through the accumulator tier", func() {
			d := &xorDescriptor{caps: codec.CapBufferOneShot}

			var compressed bytes.Buffer
			n, err := splice.Splice(context.Background(), d, codec.Compress, &compressed, bytes.NewReader(nil), 0, codecopts.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(0)))
			Expect(compressed.Len()).To(Equal(0))

			var decompressed bytes.Buffer
			_, err = splice.Splice(context.Background(), d, codec.Decompress, &decompressed, bytes.NewReader(compressed.Bytes()), -1, codecopts.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(decompressed.Len()).To(Equal(0))
		})
	})

	Context("TC-SP-010: a zero length on non-empty input", func() {
		It("TC-SP-011: should mean unbounded, not a zero-byte budget", func() {
			d := &xorDescriptor{caps: codec.CapBufferOneShot}

			var compressed bytes.Buffer
			n, err := splice.Splice(context.Background(), d, codec.Compress, &compressed, bytes.NewReader(payload), 0, codecopts.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(len(payload))))
			Expect(compressed.Bytes()).To(Equal(xorBytes(nil, payload)))
		})
	})

	Context("TC-SP-008: a nil codec", func() {
		It("TC-SP-009: should fail with BadParam", func() {
			var compressed bytes.Buffer
			_, err := splice.Splice(context.Background(), nil, codec.Compress, &compressed, bytes.NewReader(payload), int64(len(payload)), codecopts.New())
			Expect(err).To(HaveOccurred())
			Expect(errcode.Is(err, errcode.BadParam)).To(BeTrue())
		})
	})
})
