package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Repeat returns a new slice holding times back-to-back copies of s.
func Repeat[A any](s []A, times int) []A {
	if times < 0 {
		times = 0
	}
	res := make([]A, 0, len(s)*times)
	for i := 0; i < times; i++ {
		res = append(res, s...)
	}
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) int64 {
	var total int64
	for _, v := range nums {
		total += int64(v)
	}
	return total
}

// FloorDivMod divides rounding toward negative infinity, so the remainder
// always has the sign of the divisor.
func FloorDivMod[A constraints.Signed](a, b A) (A, A) {
	q, r := a/b, a%b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return q, r
}
