package errcode_test

import (
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/errcode"
)

var _ = Describe("TC-EC-001: error code classification", func() {
	Context("TC-EC-002: a wrapped parent error", func() {
		It("TC-EC-003: should report its code and unwrap to the parent", func() {
			e := errcode.New(errcode.InvalidBuffer, "rejected header", io.ErrUnexpectedEOF)

			Expect(errcode.Code(e)).To(Equal(errcode.InvalidBuffer))
			Expect(errcode.Is(e, errcode.InvalidBuffer)).To(BeTrue())
			Expect(errcode.Is(e, errcode.IO)).To(BeFalse())
			Expect(errors.Is(e, io.ErrUnexpectedEOF)).To(BeTrue())
		})
	})

	Context("TC-EC-004: a plain stdlib error", func() {
		It("TC-EC-005: should classify as None", func() {
			Expect(errcode.Code(errors.New("boom"))).To(Equal(errcode.None))
		})
	})

	Context("TC-EC-006: formatted construction", func() {
		It("TC-EC-007: should format the message", func() {
			e := errcode.Newf(errcode.BadParam, nil, "unknown codec %q", "lz5")
			Expect(e.Error()).To(ContainSubstring(`unknown codec "lz5"`))
		})
	})
})
