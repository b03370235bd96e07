package sema_test

import (
	"testing"

	"github.com/linkpy/neolang/internal/diag"
)

// Calls, strings and (at the resolver level) segmented names are
// explicit not-implemented paths, never silent fallbacks.

func TestCallInConstantFails(t *testing.T) {
	ok, _, _, bag := checkInput(t, "proc f begin end\nconst a = f!;")
	if ok {
		t.Fatal("expected failure")
	}
	if findMessage(bag, "cannot be used as a value yet") == nil &&
		findMessage(bag, "Calls are not supported") == nil {
		t.Fatalf("missing not-implemented diagnostic: %v", bag.Items())
	}
}

func TestCallArgumentsStillResolve(t *testing.T) {
	// call arguments resolve and get diagnosed before the call itself is
	// rejected
	ok, _, _, bag := resolveInput(t, "proc f begin end\nconst a = f 1, zzz;")
	if ok {
		t.Fatal("expected failure")
	}
	if findMessage(bag, "Usage of undeclared identifier 'zzz'.") == nil {
		t.Fatalf("arguments must be resolved: %v", bag.Items())
	}
}

func TestStringInConstantFails(t *testing.T) {
	ok, _, _, bag := checkInput(t, `const s = "hello";`)
	if ok {
		t.Fatal("expected failure")
	}
	d := findMessage(bag, "String literals are not supported")
	if d == nil || d.Code != diag.SemaNotImplemented {
		t.Fatalf("missing string diagnostic: %v", bag.Items())
	}
}

func TestBrokenNodeDiagnosedOnce(t *testing.T) {
	// a broken node is diagnosed once even though the fixed-point loop
	// runs several passes
	ok, _, _, bag := checkInput(t, `const s = "x"; const later = missing_later; const missing_later = 1;`)
	if ok {
		t.Fatal("expected failure")
	}
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SemaNotImplemented {
			count++
		}
	}
	if count != 1 {
		t.Errorf("string literal diagnosed %d times", count)
	}
}
