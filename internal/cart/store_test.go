package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"tailorhub/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStoreWithClient(client, time.Hour)
}

func testItem(name string, price float64) models.CatalogItem {
	return models.CatalogItem{Name: name, Price: price, IsActive: true}
}

func TestAddComputesLineTotal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	line, err := store.Add(ctx, "session-1", testItem("Sherwani", 40), testItem("Silk", 25))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if line.TotalPrice != 65 {
		t.Fatalf("expected line total 65, got %v", line.TotalPrice)
	}

	lines, err := store.Get(ctx, "session-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Design.Name != "Sherwani" || lines[0].Fabric.Name != "Silk" {
		t.Fatalf("unexpected snapshots: %+v", lines[0])
	}
}

func TestAddSamePairAppendsSecondLine(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	design := testItem("Kurta", 30)
	fabric := testItem("Cotton", 12)
	if _, err := store.Add(ctx, "s", design, fabric); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := store.Add(ctx, "s", design, fabric); err != nil {
		t.Fatalf("second add: %v", err)
	}

	lines, err := store.Get(ctx, "s")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected duplicate pair to append, got %d lines", len(lines))
	}
	if got := Total(lines); got != 84 {
		t.Fatalf("expected total 84, got %v", got)
	}
}

func TestRemoveByPosition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.Add(ctx, "s", testItem("A", 10), testItem("X", 1))
	_, _ = store.Add(ctx, "s", testItem("B", 20), testItem("Y", 2))

	if err := store.Remove(ctx, "s", 0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	lines, _ := store.Get(ctx, "s")
	if len(lines) != 1 || lines[0].Design.Name != "B" {
		t.Fatalf("expected only line B to remain, got %+v", lines)
	}

	if err := store.Remove(ctx, "s", 5); err != ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound for out-of-range index, got %v", err)
	}
}

func TestClearThenTotalIsZero(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.Add(ctx, "s", testItem("A", 40), testItem("X", 25))
	_, _ = store.Add(ctx, "s", testItem("B", 40), testItem("Y", 25))

	if err := store.Clear(ctx, "s"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	lines, err := store.Get(ctx, "s")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
	if got := Total(lines); got != 0 {
		t.Fatalf("expected zero total, got %v", got)
	}
}

func TestMissingSessionReadsAsEmptyCart(t *testing.T) {
	store := newTestStore(t)

	lines, err := store.Get(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestCartsAreScopedPerSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.Add(ctx, "alice", testItem("A", 10), testItem("X", 5))

	lines, err := store.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected bob's cart to be empty, got %d lines", len(lines))
	}
}
