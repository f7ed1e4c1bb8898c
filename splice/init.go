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

package splice

import (
	"os"
	"sync"

	"github.com/nabbar/squash/codec"
	"github.com/nabbar/squash/codecopts"
)

// pageSize is queried lazily, once, the first time any call needs it.
var pageSize = sync.OnceValue(func() int {
	return os.Getpagesize()
})

type mapPref uint8

const (
	mapAuto mapPref = iota
	mapNever
	mapAlways
)

var (
	envMapPrefOnce sync.Once
	envMapPref     mapPref

	overrideMu  sync.RWMutex
	overrideSet bool
	overrideVal mapPref
)

// processMapPreference resolves SQUASH_MAP_SPLICE exactly once per process,
// unless a test or caller has installed an override via SetMapPreference.
func processMapPreference() mapPref {
	overrideMu.RLock()
	if overrideSet {
		v := overrideVal
		overrideMu.RUnlock()
		return v
	}
	overrideMu.RUnlock()

	envMapPrefOnce.Do(func() {
		switch os.Getenv("SQUASH_MAP_SPLICE") {
		case "always":
			envMapPref = mapAlways
		case "no":
			envMapPref = mapNever
		default:
			envMapPref = mapAuto
		}
	})
	return envMapPref
}

// SetMapPreference overrides the process-wide memory-mapping preference,
// bypassing SQUASH_MAP_SPLICE. It exists for tests that need deterministic
// path selection without mutating the process environment; production
// callers should prefer codecopts.WithMapPreference for a single call.
func SetMapPreference(p codecopts.MapPreference) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	overrideSet = true
	overrideVal = fromOptsPreference(p)
}

// ClearMapPreference removes an override installed by SetMapPreference,
// reverting to the SQUASH_MAP_SPLICE-derived value.
func ClearMapPreference() {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	overrideSet = false
}

func fromOptsPreference(p codecopts.MapPreference) mapPref {
	switch p {
	case codecopts.MapNever:
		return mapNever
	case codecopts.MapAlways:
		return mapAlways
	default:
		return mapAuto
	}
}

// mmapAllowed decides whether the mmap one-shot tier may run for a codec
// with the given capabilities. "always" (whether set per-call via opts or
// process-wide via SQUASH_MAP_SPLICE) prefers mmap unconditionally; the
// default/"yes" preference only prefers it over the stream tier when the
// codec has no process_stream capability of its own, per the documented
// dispatch order.
func mmapAllowed(opts codecopts.Options, caps codec.Capability) bool {
	switch opts.MapPreference() {
	case codecopts.MapNever:
		return false
	case codecopts.MapAlways:
		return true
	default:
		switch processMapPreference() {
		case mapNever:
			return false
		case mapAlways:
			return true
		default:
			return !caps.Has(codec.CapStream)
		}
	}
}
