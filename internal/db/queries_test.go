package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNotes_RoundTrip(t *testing.T) {
	d := openTestDB(t)

	if err := d.SetNote(ChannelNoteKey, "chan-123"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	got, err := d.GetNote(ChannelNoteKey)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got != "chan-123" {
		t.Errorf("got %q, want %q", got, "chan-123")
	}
}

func TestNotes_Upsert(t *testing.T) {
	d := openTestDB(t)

	if err := d.SetNote("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetNote("k", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := d.GetNote("k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "v2" {
		t.Errorf("got %q, want %q", got, "v2")
	}
}

func TestNotes_MissingKey(t *testing.T) {
	d := openTestDB(t)
	got, err := d.GetNote("absent")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestDeliveries_RecordAndList(t *testing.T) {
	d := openTestDB(t)

	if err := d.RecordDelivery(1, "工作成就", "pregenerated", "msg one"); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	if err := d.RecordDelivery(2, "生活", "api", "msg two"); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}

	n, err := d.DeliveryCount()
	if err != nil {
		t.Fatalf("DeliveryCount: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	recent, err := d.RecentDeliveries(10)
	if err != nil {
		t.Fatalf("RecentDeliveries: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d deliveries, want 2", len(recent))
	}
	// Newest first
	if recent[0].MilestoneID != 2 {
		t.Errorf("first delivery milestone = %d, want 2", recent[0].MilestoneID)
	}
	if recent[1].Category != "工作成就" {
		t.Errorf("second delivery category = %q", recent[1].Category)
	}
}

func TestDeliveries_LimitDefault(t *testing.T) {
	d := openTestDB(t)
	for i := 0; i < 15; i++ {
		if err := d.RecordDelivery(i, "c", "pregenerated", "m"); err != nil {
			t.Fatal(err)
		}
	}
	recent, err := d.RecentDeliveries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 10 {
		t.Errorf("got %d deliveries, want default limit 10", len(recent))
	}
}
