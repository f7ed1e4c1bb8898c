package gzip_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	_ "github.com/nabbar/squash/codec/gzip"
	"github.com/nabbar/squash/codecopts"
)

func TestSquashCodecGzip(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Gzip Codec Suite")
}

var _ = Describe("TC-GZ-001: gzip stream round-trip", func() {
	It("TC-GZ-002: should reproduce the original payload through the stream tier", func() {
		d, err := codec.Lookup("gzip")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Capabilities().Has(codec.CapStream)).To(BeTrue())

		payload := bytes.Repeat([]byte("squash-gzip-roundtrip "), 500)

		enc, err := d.NewStream(codec.Compress, codecopts.New())
		Expect(err).NotTo(HaveOccurred())

		var compressed bytes.Buffer
		out := make([]byte, 4096)
		for off := 0; ; {
			finish := off >= len(payload)
			chunk := payload[off:]
			if len(chunk) > 256 {
				chunk = chunk[:256]
			}
			w, c, res, err := enc.Process(out, chunk, finish)
			Expect(err).NotTo(HaveOccurred())
			compressed.Write(out[:w])
			off += c
			if res == codec.StreamEnd {
				break
			}
		}
		Expect(enc.Close()).To(Succeed())

		dec, err := d.NewStream(codec.Decompress, codecopts.New())
		Expect(err).NotTo(HaveOccurred())

		var decompressed bytes.Buffer
		in := compressed.Bytes()
		for off := 0; ; {
			finish := off >= len(in)
			chunk := in[off:]
			if len(chunk) > 256 {
				chunk = chunk[:256]
			}
			w, c, res, err := dec.Process(out, chunk, finish)
			Expect(err).NotTo(HaveOccurred())
			decompressed.Write(out[:w])
			off += c
			if res == codec.StreamEnd {
				break
			}
		}
		Expect(dec.Close()).To(Succeed())

		Expect(decompressed.Bytes()).To(Equal(payload))
	})
})
