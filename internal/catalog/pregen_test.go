package catalog

import (
	"path/filepath"
	"testing"
)

const samplePregenerated = `{
  "version": "1.0",
  "generated_date": "2024-06-01",
  "total_count": 3,
  "description": "test batch",
  "milestones": [
    {"id": 101, "category": "工作成就", "original": "raw a", "message": "💪 你完成了 A"},
    {"id": 102, "category": "工作成就", "original": "raw b", "message": "你完成了 B"},
    {"id": 103, "category": "生活", "original": "raw c", "message": "你完成了 C"}
  ]
}`

func TestLoadPregenerated(t *testing.T) {
	path := writeTempFile(t, "pre.json", samplePregenerated)
	cat, meta, err := LoadPregenerated(path)
	if err != nil {
		t.Fatalf("LoadPregenerated: %v", err)
	}

	if cat.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cat.Len())
	}
	if meta.Version != "1.0" || meta.TotalCount != 3 {
		t.Errorf("meta = %+v", meta)
	}

	first := cat.Items()[0]
	if first.ID != 101 {
		t.Errorf("first ID = %d, want 101", first.ID)
	}
	if first.Text != "💪 你完成了 A" {
		t.Errorf("first Text = %q", first.Text)
	}

	work, ok := cat.Category("工作成就")
	if !ok || len(work) != 2 {
		t.Errorf("工作成就 = %v (ok=%v), want 2 items", work, ok)
	}
}

func TestLoadPregenerated_MissingFile(t *testing.T) {
	if _, _, err := LoadPregenerated(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPregenerated_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "bad.json", "{not json")
	if _, _, err := LoadPregenerated(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadPregenerated_MissingMilestones(t *testing.T) {
	path := writeTempFile(t, "empty.json", `{"version": "1.0"}`)
	if _, _, err := LoadPregenerated(path); err == nil {
		t.Error("expected error for missing milestones array")
	}
}

func TestLoadPregenerated_EntryMissingID(t *testing.T) {
	path := writeTempFile(t, "noid.json", `{"milestones": [{"category": "c", "message": "m"}]}`)
	if _, _, err := LoadPregenerated(path); err == nil {
		t.Error("expected error for entry without id")
	}
}
