package bzip2_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	_ "github.com/nabbar/squash/codec/bzip2"
	"github.com/nabbar/squash/codecopts"
)

func TestSquashCodecBzip2(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bzip2 Codec Suite")
}

var _ = Describe("TC-BZ-001: bzip2 stream round-trip", func() {
	It("TC-BZ-002: should reproduce the original payload through the stream tier", func() {
		d, err := codec.Lookup("bzip2")
		Expect(err).NotTo(HaveOccurred())

		payload := bytes.Repeat([]byte("squash-bzip2-roundtrip "), 800)

		enc, err := d.NewStream(codec.Compress, codecopts.New())
		Expect(err).NotTo(HaveOccurred())

		var compressed bytes.Buffer
		out := make([]byte, 4096)
		for off := 0; ; {
			finish := off >= len(payload)
			chunk := payload[off:]
			if len(chunk) > 512 {
				chunk = chunk[:512]
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
			if len(chunk) > 512 {
				chunk = chunk[:512]
			}
			w, c, res, err := dec.Process(out, chunk, finish)
			Expect(err).NotTo(HaveOccurred())
			decompressed.Write(out[:w])
			off += c
			if res == codec.StreamEnd {
				break
			}
		}

		Expect(decompressed.Bytes()).To(Equal(payload))
	})
})
