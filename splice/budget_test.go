package splice_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/splice"
)

var _ = Describe("TC-BD-001: byte-budget limiting", func() {
	full := bytes.Repeat([]byte("budget-test-payload-"), 50)

	Context("TC-BD-002: compressing with a budget shorter than the source", func() {
		It("TC-BD-003: should only read the first N bytes of input", func() {
			d := &xorDescriptor{caps: codec.CapBufferOneShot}
			budget := int64(37)

			var compressed bytes.Buffer
			n, err := splice.Splice(context.Background(), d, codec.Compress, &compressed, bytes.NewReader(full), budget, codecopts.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(budget))
			Expect(compressed.Len()).To(Equal(int(budget)))
		})
	})

	Context("TC-BD-004: decompressing with a budget shorter than the decoded output", func() {
		It("TC-BD-005: should truncate the sink silently instead of erroring", func() {
			d := &xorDescriptor{caps: codec.CapBufferOneShot}

			var compressed bytes.Buffer
			_, err := splice.Splice(context.Background(), d, codec.Compress, &compressed, bytes.NewReader(full), int64(len(full)), codecopts.New())
			Expect(err).NotTo(HaveOccurred())

			budget := int64(10)
			var decompressed bytes.Buffer
			_, err = splice.Splice(context.Background(), d, codec.Decompress, &decompressed, bytes.NewReader(compressed.Bytes()), budget, codecopts.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(decompressed.Len()).To(Equal(int(budget)))
			Expect(decompressed.Bytes()).To(Equal(full[:budget]))
		})
	})
})
