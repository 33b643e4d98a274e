package util

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// EnsureDir creates dir (and parents) if it is missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// FileStem turns a song name into the stem used for output files:
// lowercased, spaces replaced by underscores.
func FileStem(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// GetSortedKeys is GetKeys in ascending order.
func GetSortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Abs[A constraints.Signed](num A) A {
	if num < 0 {
		return -num
	}
	return num
}

func Sum[A constraints.Integer](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv[A constraints.Signed](a, b A) A {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CeilDiv divides rounding toward positive infinity.
func CeilDiv[A constraints.Signed](a, b A) A {
	return -FloorDiv(-a, b)
}
