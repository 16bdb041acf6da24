package selector

import (
	"iter"
	"strings"
)

var heads = []string{"@p", "@a", "@r", "@e", "@s"}

var sortValues = []string{string(SortNearest), string(SortFurthest), string(SortRandom), string(SortArbitrary)}

// Suggest returns completions for a partially typed selector.
//
// Outside of an option block it yields the selector heads followed by
// names. Inside "@x[" it completes option keys and sort values, each
// candidate being the full token up to and including the completion.
func Suggest(partial string, names iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		open := strings.LastIndexByte(partial, '[')
		if strings.HasPrefix(partial, "@") && open == 2 && !strings.Contains(partial[open:], "]") {
			suggestOptions(partial, open, yield)
			return
		}
		if len(partial) == 2 && strings.HasPrefix(partial, "@") {
			if _, ok := targetByChar[partial[1]]; ok {
				_ = yield(partial+"[") && yield(partial)
				return
			}
		}
		for _, h := range heads {
			if !yield(h) {
				return
			}
		}
		if names == nil {
			return
		}
		for n := range names {
			if !yield(n) {
				return
			}
		}
	}
}

func suggestOptions(partial string, open int, yield func(string) bool) {
	segStart := open + 1
	if i := strings.LastIndexByte(partial, ','); i > open {
		segStart = i + 1
	}
	prefix, seg := partial[:segStart], strings.TrimLeft(partial[segStart:], " ")
	key, value, hasValue := strings.Cut(seg, "=")
	if !hasValue {
		for _, k := range optionKeys {
			if strings.HasPrefix(k, key) && !yield(prefix+k+"=") {
				return
			}
		}
		if key == "" && segStart == open+1 {
			_ = yield(prefix + "]")
		}
		return
	}
	base := prefix + key + "="
	switch key {
	case "sort":
		for _, v := range sortValues {
			if strings.HasPrefix(v, value) && !yield(base+v) {
				return
			}
		}
	case "type", "name", "tag":
		if value == "" {
			_ = yield(base + "!")
		}
	}
}
