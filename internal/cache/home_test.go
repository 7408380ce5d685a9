package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/hanshat/infinitunes/internal/models"
	th "github.com/hanshat/infinitunes/internal/testing"
)

func testPayload() *models.HomePayload {
	return &models.HomePayload{
		Trending: models.TrendingLists{
			Albums: []models.CatalogItem{{ItemID: "al1"}},
			Songs:  []models.CatalogItem{{ItemID: "s1"}},
		},
		Albums: []models.CatalogItem{{ItemID: "al2"}},
	}
}

func TestHomeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("first call fetches, second call hits the cache", func(t *testing.T) {
		catalog := &th.MockCatalog{HomePayload: testPayload()}
		store := NewHomeStore(catalog)

		first, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if catalog.HomeCalls != 1 {
			t.Errorf("expected exactly one fetch, got %d", catalog.HomeCalls)
		}
		if len(first.Trending) != 2 || first.Trending[0].ItemID != "al1" {
			t.Errorf("unexpected trending reshape: %+v", first.Trending)
		}

		second, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if catalog.HomeCalls != 1 {
			t.Errorf("cached read should not refetch, got %d fetches", catalog.HomeCalls)
		}
		if len(second.Trending) != len(first.Trending) {
			t.Error("both reads should reshape the same payload")
		}
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		wantErr := errors.New("upstream down")
		catalog := &th.MockCatalog{HomeErr: wantErr}
		store := NewHomeStore(catalog)

		if _, err := store.Get(ctx); !errors.Is(err, wantErr) {
			t.Errorf("expected fetch error to propagate, got %v", err)
		}
	})

	t.Run("absent payload yields nil without error", func(t *testing.T) {
		catalog := &th.MockCatalog{}
		store := NewHomeStore(catalog)

		home, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if home != nil {
			t.Errorf("expected nil home for absent payload, got %+v", home)
		}
	})

	t.Run("invalidate forces a refetch", func(t *testing.T) {
		catalog := &th.MockCatalog{HomePayload: testPayload()}
		store := NewHomeStore(catalog)

		if _, err := store.Get(ctx); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		store.Invalidate()
		if _, err := store.Get(ctx); err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		if catalog.HomeCalls != 2 {
			t.Errorf("expected refetch after invalidate, got %d fetches", catalog.HomeCalls)
		}
	})

	t.Run("set seeds the cache", func(t *testing.T) {
		catalog := &th.MockCatalog{}
		store := NewHomeStore(catalog)
		store.Set(testPayload())

		home, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if home == nil || len(home.Trending) != 2 {
			t.Errorf("expected seeded payload, got %+v", home)
		}
		if catalog.HomeCalls != 0 {
			t.Errorf("seeded store should not fetch, got %d fetches", catalog.HomeCalls)
		}
	})
}
