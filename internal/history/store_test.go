// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/luckysolanki/dailicle/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := types.HistoryConfig{
		DBPath: filepath.Join(t.TempDir(), "data", "dailicle.db"),
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(title, category string, age time.Duration, tags ...string) types.TopicRecord {
	return types.TopicRecord{
		ID:          uuid.NewString(),
		Title:       title,
		Category:    category,
		Tags:        tags,
		WordCount:   5200,
		GeneratedAt: time.Now().UTC().Add(-age),
	}
}

func TestRecordAndRecentTopics(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, rec := range []types.TopicRecord{
		record("Old Essay", "learning", 40*24*time.Hour, "memory"),
		record("Last Week", "psychology", 6*24*time.Hour, "bias", "habits"),
		record("Yesterday", "creativity", 24*time.Hour, "constraints"),
	} {
		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Record(%s): %v", rec.Title, err)
		}
	}

	recent, err := store.RecentTopics(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentTopics(30d) = %d records, want 2", len(recent))
	}
	// Most recent first.
	if recent[0].Title != "Yesterday" || recent[1].Title != "Last Week" {
		t.Errorf("ordering wrong: %q, %q", recent[0].Title, recent[1].Title)
	}
	if len(recent[1].Tags) != 2 || recent[1].Tags[0] != "bias" {
		t.Errorf("tags round-trip failed: %v", recent[1].Tags)
	}

	all, err := store.RecentTopics(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("RecentTopics(0) = %d records, want 3", len(all))
	}
}

func TestRecordRejectsEmptyTitle(t *testing.T) {
	store := testStore(t)
	err := store.Record(context.Background(), types.TopicRecord{ID: uuid.NewString(), Title: "  "})
	if err == nil {
		t.Fatal("Record accepted an empty title")
	}
}

func TestDuplicateTitlesTolerated(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := store.Record(ctx, record("Same Title", "psychology", 0)); err != nil {
			t.Fatalf("duplicate insert %d: %v", i, err)
		}
	}

	titles, err := store.AllTitles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 2 {
		t.Errorf("AllTitles = %d, want 2", len(titles))
	}
}

func TestReadStats(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, rec := range []types.TopicRecord{
		record("A", "psychology", 0),
		record("B", "psychology", time.Hour),
		record("C", "learning", 2*time.Hour),
	} {
		if err := store.Record(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.ReadStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.Categories["psychology"] != 2 || stats.Categories["learning"] != 1 {
		t.Errorf("Categories = %v", stats.Categories)
	}
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, record("Exported Topic", "systems-thinking", 0, "loops")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportYAML(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Exported Topic", "systems-thinking", "loops"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestCategoriesWithin(t *testing.T) {
	now := time.Now().UTC()
	records := []types.TopicRecord{
		{Title: "A", Category: "creativity", GeneratedAt: now.Add(-24 * time.Hour)},
		{Title: "B", Category: "psychology", GeneratedAt: now.Add(-3 * 24 * time.Hour)},
		{Title: "C", Category: "learning", GeneratedAt: now.Add(-20 * 24 * time.Hour)},
	}

	got := CategoriesWithin(records, 7*24*time.Hour, now)
	if len(got) != 2 || got[0] != "creativity" || got[1] != "psychology" {
		t.Errorf("CategoriesWithin = %v", got)
	}
}
