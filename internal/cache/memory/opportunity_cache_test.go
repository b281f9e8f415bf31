package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

func TestOpportunityCache(t *testing.T) {
	ctx := context.Background()
	c := NewOpportunityCache()

	if _, err := c.GetLatest(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetLatest before first scan = %v, want ErrNotFound", err)
	}

	opps := []domain.Opportunity{{ID: "1", Spread: 3.0}}
	if err := c.SetLatest(ctx, opps); err != nil {
		t.Fatalf("SetLatest: %v", err)
	}

	got, err := c.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("GetLatest = %+v", got)
	}

	// The cache hands out copies, not its internal slice.
	got[0].ID = "mutated"
	again, _ := c.GetLatest(ctx)
	if again[0].ID != "1" {
		t.Error("caller mutation leaked into the cache")
	}

	// An empty scan result is a real result, not absence.
	if err := c.SetLatest(ctx, nil); err != nil {
		t.Fatalf("SetLatest(nil): %v", err)
	}
	empty, err := c.GetLatest(ctx)
	if err != nil || len(empty) != 0 {
		t.Errorf("GetLatest after empty scan = %v, %v", empty, err)
	}
}
