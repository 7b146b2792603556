package models

import "testing"

func TestHasImageAccount(t *testing.T) {
	for _, method := range KnownMethods() {
		m := PaymentMethod{Method: method}
		want := method == MethodQRIS
		if got := m.HasImageAccount(); got != want {
			t.Errorf("HasImageAccount(%s) = %v, want %v", method, got, want)
		}
	}
}

func TestKnownMethodsClosedSet(t *testing.T) {
	methods := KnownMethods()
	if len(methods) != 4 {
		t.Fatalf("expected 4 payment channels, got %d", len(methods))
	}
	seen := map[string]bool{}
	for _, m := range methods {
		if seen[m] {
			t.Errorf("duplicate method %s", m)
		}
		seen[m] = true
	}
	for _, want := range []string{MethodQRIS, MethodGopay, MethodOVO, MethodDana} {
		if !seen[want] {
			t.Errorf("missing method %s", want)
		}
	}
}
