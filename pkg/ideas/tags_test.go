package ideas

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestCreateTag(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	tag, err := CreateTag(ctx, testDB, "urgent")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	if tag.Name != "urgent" {
		t.Errorf("Expected tag name 'urgent', got %s", tag.Name)
	}
	if tag.ID == uuid.Nil {
		t.Errorf("Expected tag ID to be set, got nil UUID")
	}
	if tag.Synced {
		t.Errorf("Expected a freshly created tag to have is_synced = false")
	}

	if _, err = CreateTag(ctx, testDB, ""); err == nil {
		t.Errorf("Expected error when creating tag with empty name")
	}
}

func TestCreateTagDuplicateNamesAllowed(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	first, err := CreateTag(ctx, testDB, "later")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	second, err := CreateTag(ctx, testDB, "later")
	if err != nil {
		t.Fatalf("Expected duplicate tag names to be allowed, got: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("Expected distinct IDs for tags sharing a name")
	}

	tags, err := ListTags(ctx, testDB)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(tags))
	}
}

func TestListTags(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	tags, err := ListTags(ctx, testDB)
	if err != nil {
		t.Fatalf("ListTags failed on empty database: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("Expected no tags, got %d", len(tags))
	}

	t1, _ := CreateTag(ctx, testDB, "urgent")
	t2, _ := CreateTag(ctx, testDB, "someday")

	tags, err = ListTags(ctx, testDB)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}

	byID := map[uuid.UUID]string{}
	for _, tag := range tags {
		byID[tag.ID] = tag.Name
	}
	if byID[t1.ID] != "urgent" || byID[t2.ID] != "someday" {
		t.Errorf("Listed tags don't match created ones: %v", byID)
	}
}
