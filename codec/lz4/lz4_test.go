package lz4_test

import (
	"bytes"
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	_ "github.com/nabbar/squash/codec/lz4"
	"github.com/nabbar/squash/codecopts"
)

func TestSquashCodecLz4(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lz4 Codec Suite")
}

var _ = Describe("TC-LZ-001: lz4 capability tiers", func() {
	It("TC-LZ-002: should advertise all three tiers", func() {
		d, err := codec.Lookup("lz4")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Capabilities().Has(codec.CapBufferOneShot)).To(BeTrue())
		Expect(d.Capabilities().Has(codec.CapStream)).To(BeTrue())
		Expect(d.Capabilities().Has(codec.CapSplice)).To(BeTrue())
	})

	It("TC-LZ-003: should round-trip through the one-shot buffer tier", func() {
		d, _ := codec.Lookup("lz4")
		payload := bytes.Repeat([]byte("lz4-one-shot-payload"), 300)

		compressed, err := d.CompressBuffer(nil, payload, codecopts.New())
		Expect(err).NotTo(HaveOccurred())

		decompressed, err := d.DecompressBuffer(nil, compressed, codecopts.New())
		Expect(err).NotTo(HaveOccurred())
		Expect(decompressed).To(Equal(payload))
	})

	It("TC-LZ-004: should round-trip through the native splice tier", func() {
		d, _ := codec.Lookup("lz4")
		payload := bytes.Repeat([]byte("lz4-splice-payload-"), 10000)

		var compressed bytes.Buffer
		n, err := d.Splice(codec.Compress)(context.Background(), &compressed, bytes.NewReader(payload), int64(len(payload)))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(len(payload))))

		var decompressed bytes.Buffer
		_, err = d.Splice(codec.Decompress)(context.Background(), &decompressed, bytes.NewReader(compressed.Bytes()), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(decompressed.Bytes()).To(Equal(payload))
	})
})
