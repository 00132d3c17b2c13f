package state

import "testing"

func TestTabStoreReturnsCopies(t *testing.T) {
	s := NewTabStore()
	input := []string{"Received", "Send"}
	s.Replace(input, 1)
	input[0] = "mutated"
	tabs := s.Tabs()
	if tabs[0] != "Received" {
		t.Fatalf("expected store to copy input, got %v", tabs)
	}
	tabs[1] = "mutated"
	if label, _ := s.Label(1); label != "Send" {
		t.Fatalf("expected store to return copies, got %q", label)
	}
}

func TestTabStoreSetActiveBounds(t *testing.T) {
	s := NewTabStore()
	if s.SetActive(0) {
		t.Fatalf("expected empty store to reject index 0")
	}
	s.Replace([]string{"A", "B", "C"}, 0)
	if !s.SetActive(2) || s.Active() != 2 {
		t.Fatalf("expected active 2, got %d", s.Active())
	}
	if s.SetActive(3) || s.SetActive(-1) {
		t.Fatalf("expected out of range indexes to be rejected")
	}
	if s.Active() != 2 {
		t.Fatalf("expected active unchanged, got %d", s.Active())
	}
}

func TestTabStoreResetKeepsLabels(t *testing.T) {
	s := NewTabStore()
	s.Replace([]string{"A", "B"}, 1)
	if !s.Ready() {
		t.Fatalf("expected ready after replace")
	}
	s.Reset()
	if s.Ready() {
		t.Fatalf("expected not ready after reset")
	}
	if s.Len() != 2 {
		t.Fatalf("expected labels kept, got %d", s.Len())
	}
}
