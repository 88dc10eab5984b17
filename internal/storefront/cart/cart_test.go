package cart

import (
	"errors"
	"testing"

	"techmobile/internal/domain"
	"techmobile/internal/storefront/kv"
)

func product(id string, priceCents int64) domain.Product {
	return domain.Product{
		ID:         id,
		Title:      "Product " + id,
		Brand:      "Acme",
		Category:   domain.CategoryAccessories,
		PriceCents: priceCents,
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)

	svc.AddItem(product("p1", 1000), 2)
	svc.AddItem(product("p1", 1000), 3)
	svc.AddItem(product("p1", 1000), 1)

	lines := svc.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", lines[0].Quantity)
	}
}

func TestAddItemDefaultsBadQuantityToOne(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)

	svc.AddItem(product("p1", 1000), 0)
	svc.AddItem(product("p2", 1000), -3)

	for _, line := range svc.Lines() {
		if line.Quantity != 1 {
			t.Fatalf("expected quantity 1 for %s, got %d", line.Product.ID, line.Quantity)
		}
	}
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)

	svc.AddItem(product("p1", 1000), 5)
	svc.RemoveItem("p1")
	svc.AddItem(product("p1", 1000), 2)

	lines := svc.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected fresh line with quantity 2, got %+v", lines)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)
	svc.AddItem(product("p1", 1000), 1)

	svc.RemoveItem("missing")

	if got := len(svc.Lines()); got != 1 {
		t.Fatalf("expected 1 line, got %d", got)
	}
}

func TestCountAndSubtotalDerived(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)

	svc.AddItem(product("p1", 1000), 2)
	if svc.Count() != 2 || svc.Subtotal() != 2000 {
		t.Fatalf("after add: count=%d subtotal=%d", svc.Count(), svc.Subtotal())
	}

	svc.UpdateQuantity("p1", -1)
	if svc.Count() != 1 || svc.Subtotal() != 1000 {
		t.Fatalf("after decrement: count=%d subtotal=%d", svc.Count(), svc.Subtotal())
	}

	// A drop below 1 clamps at 1 rather than removing the line.
	svc.UpdateQuantity("p1", -5)
	if svc.Count() != 1 || svc.Subtotal() != 1000 {
		t.Fatalf("after clamp: count=%d subtotal=%d", svc.Count(), svc.Subtotal())
	}

	svc.AddItem(product("p2", 500), 3)
	if svc.Count() != 4 || svc.Subtotal() != 2500 {
		t.Fatalf("after second product: count=%d subtotal=%d", svc.Count(), svc.Subtotal())
	}
}

func TestUpdateQuantityAbsentIsNoop(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)
	svc.AddItem(product("p1", 1000), 2)

	svc.UpdateQuantity("missing", 5)

	if svc.Count() != 2 {
		t.Fatalf("expected count 2, got %d", svc.Count())
	}
}

func TestClearEmptiesCart(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)
	svc.AddItem(product("p1", 1000), 2)
	svc.AddItem(product("p2", 500), 1)

	svc.Clear()

	if svc.Count() != 0 || svc.Subtotal() != 0 || len(svc.Lines()) != 0 {
		t.Fatalf("expected empty cart, got count=%d", svc.Count())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := kv.NewMemoryStore()

	svc := New(store, nil)
	svc.AddItem(product("p1", 1000), 2)
	svc.AddItem(product("p2", 500), 1)
	svc.UpdateQuantity("p2", 4)

	// A fresh instance over the same store reproduces the cart,
	// insertion order included.
	reloaded := New(store, nil)
	want := svc.Lines()
	got := reloaded.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Product.ID != want[i].Product.ID || got[i].Quantity != want[i].Quantity {
			t.Fatalf("line %d mismatch: want %+v got %+v", i, want[i], got[i])
		}
	}
	if reloaded.Count() != svc.Count() || reloaded.Subtotal() != svc.Subtotal() {
		t.Fatalf("derived values mismatch after reload")
	}
}

func TestCorruptStateStartsEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	store.Put(StorageKey, []byte(`{not json`))

	svc := New(store, nil)

	if svc.Count() != 0 || len(svc.Lines()) != 0 {
		t.Fatalf("expected empty cart from corrupt state")
	}
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	store := kv.NewMemoryStore()
	store.SaveErr = errors.New("quota exceeded")

	svc := New(store, nil)
	svc.AddItem(product("p1", 1000), 2)

	if svc.Count() != 2 {
		t.Fatalf("expected in-memory state to survive save failure, count=%d", svc.Count())
	}
}

func TestObserverFiresAfterMutation(t *testing.T) {
	svc := New(kv.NewMemoryStore(), nil)

	fired := 0
	svc.OnChange(func() { fired++ })

	svc.AddItem(product("p1", 1000), 1)
	svc.UpdateQuantity("p1", 1)
	svc.RemoveItem("p1")
	svc.Clear()

	if fired != 4 {
		t.Fatalf("expected 4 notifications, got %d", fired)
	}
}
