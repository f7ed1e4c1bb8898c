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
	"sort"
	"sync"

	"github.com/nabbar/squash/errcode"
)

var (
	regMu sync.RWMutex
	reg   = make(map[string]Descriptor)
)

// Register adds d to the process-wide registry under d.Name(), replacing
// any codec previously registered under the same name. It is typically
// called from the init() of a codec/<name> subpackage.
func Register(d Descriptor) {
	regMu.Lock()
	defer regMu.Unlock()
	reg[d.Name()] = d
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Descriptor, error) {
	regMu.RLock()
	defer regMu.RUnlock()

	d, ok := reg[name]
	if !ok {
		return nil, errcode.Newf(errcode.UnableToLoad, nil, "codec: no codec registered under %q", name)
	}
	return d, nil
}

// List returns the names of every registered codec, sorted for stable
// output.
func List() []string {
	regMu.RLock()
	defer regMu.RUnlock()

	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
