package splice_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/splice"
)

var _ = Describe("TC-FS-001: file-backed splice", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "squash-splice-file-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	Context("TC-FS-002: mmap equivalence", func() {
		It("TC-FS-003: should produce the same bytes whether mapped I/O is forced on or off", func() {
			payload := bytes.Repeat([]byte("mmap-equivalence-fixture "), 4096)
			srcPath := filepath.Join(dir, "src.bin")
			Expect(os.WriteFile(srcPath, payload, 0o644)).To(Succeed())

			d := &xorDescriptor{caps: codec.CapBufferOneShot}

			mappedOut := filepath.Join(dir, "mapped.out")
			_, err := splice.Files(context.Background(), d, codec.Compress, mappedOut, srcPath,
				codecopts.New(codecopts.WithMapPreference(codecopts.MapAlways)))
			Expect(err).NotTo(HaveOccurred())

			bufferedOut := filepath.Join(dir, "buffered.out")
			_, err = splice.Files(context.Background(), d, codec.Compress, bufferedOut, srcPath,
				codecopts.New(codecopts.WithMapPreference(codecopts.MapNever)))
			Expect(err).NotTo(HaveOccurred())

			mapped, err := os.ReadFile(mappedOut)
			Expect(err).NotTo(HaveOccurred())
			buffered, err := os.ReadFile(bufferedOut)
			Expect(err).NotTo(HaveOccurred())
			Expect(mapped).To(Equal(buffered))
		})
	})

	Context("TC-FS-004: path fallback", func() {
		It("TC-FS-005: a stream-only codec should still splice two files without mmap", func() {
			payload := bytes.Repeat([]byte("fallback-fixture "), 2048)
			srcPath := filepath.Join(dir, "src.bin")
			Expect(os.WriteFile(srcPath, payload, 0o644)).To(Succeed())

			d := &xorDescriptor{caps: codec.CapStream}
			dstPath := filepath.Join(dir, "out.bin")

			_, err := splice.Files(context.Background(), d, codec.Compress, dstPath, srcPath, codecopts.New())
			Expect(err).NotTo(HaveOccurred())

			got, err := os.ReadFile(dstPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(xorBytes(nil, payload)))
		})
	})

	Context("TC-FS-006: dispatch preference between mmap and stream", func() {
		It("TC-FS-007: should prefer the stream tier over mmap under the default preference when the codec supports both", func() {
			payload := bytes.Repeat([]byte("dual-capability-fixture "), 2048)
			srcPath := filepath.Join(dir, "src.bin")
			Expect(os.WriteFile(srcPath, payload, 0o644)).To(Succeed())

			d := &xorDescriptor{caps: codec.CapBufferOneShot | codec.CapStream}
			dstPath := filepath.Join(dir, "out.bin")

			_, err := splice.Files(context.Background(), d, codec.Compress, dstPath, srcPath, codecopts.New())
			Expect(err).NotTo(HaveOccurred())

			Expect(d.streamCalls).To(BeNumerically(">", 0))
			Expect(d.bufferCalls).To(Equal(0))
		})

		It("TC-FS-008: should prefer mmap over stream when the caller forces MapAlways", func() {
			payload := bytes.Repeat([]byte("dual-capability-fixture "), 2048)
			srcPath := filepath.Join(dir, "src.bin")
			Expect(os.WriteFile(srcPath, payload, 0o644)).To(Succeed())

			d := &xorDescriptor{caps: codec.CapBufferOneShot | codec.CapStream}
			dstPath := filepath.Join(dir, "out.bin")

			_, err := splice.Files(context.Background(), d, codec.Compress, dstPath, srcPath,
				codecopts.New(codecopts.WithMapPreference(codecopts.MapAlways)))
			Expect(err).NotTo(HaveOccurred())

			Expect(d.bufferCalls).To(BeNumerically(">", 0))
			Expect(d.streamCalls).To(Equal(0))
		})
	})
})
