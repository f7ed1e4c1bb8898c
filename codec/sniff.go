/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package codec

import (
	"bufio"
	"io"

	"github.com/nabbar/squash/errcode"
)

// sniffPeekLen is the largest magic number among the registered codecs
// (xz's six-byte header); kept generous for headers added later.
const sniffPeekLen = 8

// Sniffer is implemented by codecs whose encoded form starts with a fixed
// magic byte sequence, letting Sniff identify them without consuming input.
type Sniffer interface {
	DetectHeader(peek []byte) bool
}

// Sniff peeks at the head of r and returns the name of the first
// registered, Sniffer-implementing codec whose DetectHeader matches, along
// with a reader that replays the peeked bytes ahead of the rest of r. It
// never advances r's logical position.
//
// Sniff is a convenience layered above the registry; splice.Splice never
// calls it itself, since format auto-detection is outside the splice
// engine's own contract.
func Sniff(r io.Reader) (string, io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffPeekLen*4)

	peek, _ := br.Peek(sniffPeekLen)
	if len(peek) == 0 {
		return "", br, errcode.New(errcode.BadParam, "codec: empty input, nothing to sniff", io.ErrUnexpectedEOF)
	}

	regMu.RLock()
	defer regMu.RUnlock()

	for _, name := range List() {
		d := reg[name]
		if s, ok := d.(Sniffer); ok && s.DetectHeader(peek) {
			return name, br, nil
		}
	}

	return "", br, errcode.New(errcode.UnableToLoad, "codec: no registered codec matches this header", nil)
}
