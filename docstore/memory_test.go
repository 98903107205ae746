package docstore

import (
	"context"
	"testing"

	"github.com/fieldgate/fieldgate/schema"
)

func TestMemoryInsertAndFindOne(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	id, err := st.Insert(ctx, schema.Document{"title": "hello"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	doc, err := st.FindOne(ctx, id)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if doc["title"] != "hello" {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestMemoryFindOneAbsent(t *testing.T) {
	st := NewMemory()
	doc, err := st.FindOne(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected nil error for absent document, got %v", err)
	}
	if doc != nil {
		t.Fatalf("expected nil document, got %v", doc)
	}
}

func TestMemoryFindOneReturnsCopy(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	id, _ := st.Insert(ctx, schema.Document{"title": "a"})

	doc, _ := st.FindOne(ctx, id)
	doc["title"] = "mutated"

	again, _ := st.FindOne(ctx, id)
	if again["title"] != "a" {
		t.Fatal("expected stored document isolated from caller mutation")
	}
}

func TestMemoryUpdateSetAndUnset(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	id, _ := st.Insert(ctx, schema.Document{"title": "a", "body": "b"})

	err := st.Update(ctx, id, schema.Document{"title": "c"}, []string{"body"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	doc, _ := st.FindOne(ctx, id)
	if doc["title"] != "c" {
		t.Fatalf("expected title updated, got %v", doc)
	}
	if _, ok := doc["body"]; ok {
		t.Fatal("expected body removed")
	}
}

func TestMemoryUpdateEmptyIDRejected(t *testing.T) {
	st := NewMemory()
	if err := st.Update(context.Background(), "", schema.Document{"a": 1}, nil); err != ErrEmptyID {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	if err := st.Remove(context.Background(), ""); err != ErrEmptyID {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestMemoryRemove(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	id, _ := st.Insert(ctx, schema.Document{"title": "a"})
	if err := st.Remove(ctx, id); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expected empty store, got %d documents", st.Len())
	}

	// Absent id is a no-op.
	if err := st.Remove(ctx, id); err != nil {
		t.Fatalf("expected no-op remove, got %v", err)
	}
}
