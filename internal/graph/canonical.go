package graph

import "strings"

// LabelFunc resolves a node id to its label, satisfied by *Registry.
type LabelFunc func(id int) string

// Canonicalize returns a rotation- and reversal-invariant ordering of
// cycle's nodes: the lexicographically smaller of the min-label-first
// rotation of cycle and of its reverse.
func Canonicalize(nodes []int, label LabelFunc) []int {
	if len(nodes) == 0 {
		return nodes
	}
	fwd := rotateToMinLabel(nodes, label)
	rev := make([]int, len(nodes))
	for i, n := range nodes {
		rev[len(nodes)-1-i] = n
	}
	rev = rotateToMinLabel(rev, label)

	for i := range fwd {
		a, b := label(fwd[i]), label(rev[i])
		if a < b {
			return fwd
		}
		if a > b {
			return rev
		}
	}
	return fwd
}

// rotateToMinLabel rotates seq so the lexicographically smallest label
// comes first, the first position achieving the minimum winning ties.
func rotateToMinLabel(seq []int, label LabelFunc) []int {
	n := len(seq)
	m := 0
	for i := 1; i < n; i++ {
		if label(seq[i]) < label(seq[m]) {
			m = i
		}
	}
	rot := make([]int, n)
	for i := 0; i < n; i++ {
		rot[i] = seq[(m+i)%n]
	}
	return rot
}

// Signature returns the canonical string signature of cycle: the
// "->"-joined labels of its canonical node order.
func Signature(nodes []int, label LabelFunc) string {
	canon := Canonicalize(nodes, label)
	var b strings.Builder
	for i, n := range canon {
		if i > 0 {
			b.WriteString("->")
		}
		b.WriteString(label(n))
	}
	return b.String()
}
