package splice_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
	"github.com/nabbar/squash/splice"
)

var _ = Describe("TC-CC-001: concurrent splice calls", func() {
	It("TC-CC-002: should produce independent, correct output for disjoint streams run in parallel", func() {
		const workers = 16
		d := &xorDescriptor{caps: codec.CapBufferOneShot}

		var wg sync.WaitGroup
		results := make([][]byte, workers)
		errs := make([]error, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				payload := []byte(fmt.Sprintf("concurrent-splice-fixture-%02d-", idx))
				payload = bytes.Repeat(payload, 64)

				var compressed bytes.Buffer
				if _, err := splice.Splice(context.Background(), d, codec.Compress, &compressed, bytes.NewReader(payload), int64(len(payload)), codecopts.New()); err != nil {
					errs[idx] = err
					return
				}

				var decompressed bytes.Buffer
				if _, err := splice.Splice(context.Background(), d, codec.Decompress, &decompressed, bytes.NewReader(compressed.Bytes()), -1, codecopts.New()); err != nil {
					errs[idx] = err
					return
				}

				if !bytes.Equal(decompressed.Bytes(), payload) {
					errs[idx] = fmt.Errorf("worker %d: round-trip mismatch", idx)
					return
				}
				results[idx] = decompressed.Bytes()
			}(i)
		}

		wg.Wait()

		for i := 0; i < workers; i++ {
			Expect(errs[i]).NotTo(HaveOccurred())
			Expect(results[i]).NotTo(BeEmpty())
		}
	})
})
