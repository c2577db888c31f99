package graph

import "testing"

func labelsFixture() (LabelFunc, func(string) int) {
	names := []string{"A_X", "B_X", "C_X"}
	ids := map[string]int{}
	for i, n := range names {
		ids[n] = i
	}
	return func(id int) string { return names[id] }, func(name string) int { return ids[name] }
}

func TestCanonicalizeRotationInvariant(t *testing.T) {
	label, id := labelsFixture()
	c1 := []int{id("A_X"), id("B_X"), id("C_X")}
	c2 := []int{id("B_X"), id("C_X"), id("A_X")}
	c3 := []int{id("C_X"), id("A_X"), id("B_X")}

	s1, s2, s3 := Signature(c1, label), Signature(c2, label), Signature(c3, label)
	if s1 != s2 || s2 != s3 {
		t.Fatalf("expected rotation-invariant signatures, got %q %q %q", s1, s2, s3)
	}
}

func TestCanonicalizeReversalInvariant(t *testing.T) {
	label, id := labelsFixture()
	fwd := []int{id("A_X"), id("C_X"), id("B_X")}
	rev := []int{id("A_X"), id("B_X"), id("C_X")}
	// reverse of fwd starting at A_X is A_X,B_X,C_X
	if Signature(fwd, label) != Signature(rev, label) {
		t.Fatalf("expected reversal-invariant signature")
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	label, id := labelsFixture()
	c := []int{id("C_X"), id("A_X"), id("B_X")}
	canon1 := Canonicalize(c, label)
	canon2 := Canonicalize(canon1, label)
	if Signature(canon1, label) != Signature(canon2, label) {
		t.Fatalf("expected idempotent canonicalization")
	}
}

func TestSignatureStartsAtLexSmallest(t *testing.T) {
	label, id := labelsFixture()
	c := []int{id("C_X"), id("A_X"), id("B_X")}
	sig := Signature(c, label)
	if sig != "A_X->B_X->C_X" && sig != "A_X->C_X->B_X" {
		t.Fatalf("expected signature to start at lexicographically smallest label, got %s", sig)
	}
	if sig[:3] != "A_X" {
		t.Fatalf("expected canonical signature to start at A_X, got %s", sig)
	}
}
