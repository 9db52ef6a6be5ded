package render

import (
	"sort"
	"strings"

	"github.com/fork-tongue/ruff-cgx/internal/markup"
)

// Attribute precedence follows the Vue style guide ordering the reference
// formatter uses: definition, list rendering, conditionals, unique identity,
// slots, bindings and plain attributes, events. Longer prefixes come first
// within a bucket so v-else-if is not claimed by v-else.
var sortBuckets = [][]string{
	{"v-is"},
	{"v-for"},
	{"v-else-if", "v-if", "v-else"},
	{"id", "ref", "key"},
	{"v-slot", "#"},
	{"v-bind", ":"},
	{"v-on", "@"},
}

const (
	uniqueBucket = 3
	otherBucket  = 5
)

// sortKey returns the precedence bucket and the tie-breaking name for an
// attribute. Unique attributes match exactly; everything else matches by
// directive prefix, with the prefix stripped from the tie-breaker so
// `:value` and `value` order together. Unrecognized names without a
// directive prefix join the plain-attribute bucket; unrecognized directives
// sort after every named bucket.
func sortKey(name string) (int, string) {
	for bucket, prefixes := range sortBuckets {
		for _, prefix := range prefixes {
			if bucket == uniqueBucket {
				if name == prefix {
					return bucket, name
				}
			} else if strings.HasPrefix(name, prefix) {
				return bucket, strings.TrimPrefix(name, prefix)
			}
		}
	}
	if !strings.HasPrefix(name, "v-") {
		return otherBucket, name
	}
	return len(sortBuckets), name
}

// sortAttrs returns the attributes in canonical order. The sort is stable:
// attributes with identical keys keep their original relative order.
func sortAttrs(attrs []markup.Attr) []markup.Attr {
	sorted := append([]markup.Attr(nil), attrs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		bi, ki := sortKey(sorted[i].Name)
		bj, kj := sortKey(sorted[j].Name)
		if bi != bj {
			return bi < bj
		}
		return ki < kj
	})
	return sorted
}
