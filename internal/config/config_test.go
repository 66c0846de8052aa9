package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Filter.Price.IsAll() || cfg.Currency != "" {
		t.Errorf("Load on empty dir = %+v, want zero config", cfg)
	}
}

func TestFilterStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := models.FilterState{
		Price:      rangefilter.Between(100, 500),
		Stock:      rangefilter.AtLeast(101),
		CategoryID: "ct-1234abcd",
		Search:     "monitor",
		SortMode:   "price",
	}
	if err := SetFilterState(dir, want); err != nil {
		t.Fatalf("SetFilterState: %v", err)
	}

	got, err := GetFilterState(dir)
	if err != nil {
		t.Fatalf("GetFilterState: %v", err)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(rangefilter.Bound{})); diff != "" {
		t.Errorf("filter state mismatch (-want +got):\n%s", diff)
	}

	if err := ClearFilterState(dir); err != nil {
		t.Fatal(err)
	}
	got, _ = GetFilterState(dir)
	if !got.Price.IsAll() || got.Search != "" {
		t.Errorf("after clear = %+v", got)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &models.Config{Currency: "€"}); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, ".starterkit"))
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestConcurrentUpdatesKeepBothFields(t *testing.T) {
	dir := t.TempDir()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := SetFilterState(dir, models.FilterState{Search: "lamp"}); err != nil {
			t.Error(err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := SetDisplay(dir, "Rp", "id"); err != nil {
			t.Error(err)
		}
	}()
	wg.Wait()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Filter.Search != "lamp" || cfg.Currency != "Rp" {
		t.Errorf("lost update: %+v", cfg)
	}
}

func TestSetDisplayRejectsBadLocale(t *testing.T) {
	if err := SetDisplay(t.TempDir(), "$", "not a locale!"); err == nil {
		t.Error("SetDisplay accepted an invalid locale")
	}
}

func TestDomains(t *testing.T) {
	price, stock := Domains(&models.Config{Currency: "Rp", Locale: "id"})
	if got := price.Format(25000); got != "Rp25.000" {
		t.Errorf("price.Format = %q", got)
	}
	if stock.Name != rangefilter.DomainStock {
		t.Errorf("stock domain = %q", stock.Name)
	}

	price, _ = Domains(&models.Config{})
	if got := price.Format(1000); got != "$1,000" {
		t.Errorf("default price.Format = %q", got)
	}
}
