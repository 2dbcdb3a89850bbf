// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/luckysolanki/dailicle/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.ArchiveConfig{
		DBPath: filepath.Join(t.TempDir(), "data", "archive.db"),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePayload() *types.ArticlePayload {
	return &types.ArticlePayload{
		Title:    "Thinking in Feedback Loops",
		Category: "systems-thinking",
		Tags:     []string{"loops", "compounding"},
		Sections: []types.Section{
			{Content: "An opening scene."},
			{Heading: "Compounding", Content: "Small effects accumulate."},
		},
		Resources: []types.Resource{
			{Kind: types.ResourceReading, Title: "Thinking in Systems", URL: "https://example.org/meadows"},
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	ref, err := store.Save(ctx, "record-1", samplePayload())
	if err != nil {
		t.Fatal(err)
	}
	if ref == "" {
		t.Fatal("Save returned empty ref")
	}

	got, err := store.Get(ctx, ref)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Thinking in Feedback Loops" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Sections) != 2 || got.Sections[1].Heading != "Compounding" {
		t.Errorf("sections round-trip failed: %+v", got.Sections)
	}
	if len(got.Resources) != 1 {
		t.Errorf("resources round-trip failed: %+v", got.Resources)
	}
}

func TestGetMissing(t *testing.T) {
	store := testStore(t)
	_, err := store.Get(context.Background(), "no-such-ref")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, "record-1", samplePayload()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportYAML(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Thinking in Feedback Loops")) {
		t.Errorf("export missing title:\n%s", buf.String())
	}
}
