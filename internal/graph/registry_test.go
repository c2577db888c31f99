package graph

import "testing"

func TestRegistryInternIsStable(t *testing.T) {
	r := NewRegistry()
	id1 := r.Intern("BTC_Binance")
	id2 := r.Intern("ETH_Binance")
	id3 := r.Intern("BTC_Binance")

	if id1 != id3 {
		t.Fatalf("expected re-intern to return same id, got %d and %d", id1, id3)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct ids for distinct labels")
	}
	if r.Label(id1) != "BTC_Binance" {
		t.Fatalf("expected label BTC_Binance, got %s", r.Label(id1))
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", r.Len())
	}
}

func TestRegistryIdsAreContiguous(t *testing.T) {
	r := NewRegistry()
	for i, label := range []string{"A", "B", "C"} {
		if id := r.Intern(label); id != i {
			t.Fatalf("expected id %d for %s, got %d", i, label, id)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Intern("BTC_Binance")
	if _, ok := r.Lookup("ETH_Binance"); ok {
		t.Fatalf("expected lookup miss for unseen label")
	}
	id, ok := r.Lookup("BTC_Binance")
	if !ok || r.Label(id) != "BTC_Binance" {
		t.Fatalf("expected lookup hit for interned label")
	}
}
