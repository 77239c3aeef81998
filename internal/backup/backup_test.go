package backup

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"pp-governance/internal/models"
)

func TestDir_WritesOnClose(t *testing.T) {
	d, err := NewDir(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	d.Offer(&models.Snapshot{Active: "Contoso", Projects: []*models.Project{{Name: "Contoso"}}})
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}

	files, err := d.Files()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(files))
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Active != "Contoso" {
		t.Errorf("Active = %q", snap.Active)
	}
}

func TestDir_OfferNeverBlocks(t *testing.T) {
	d, err := NewDir(t.TempDir(), 3)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			d.Offer(&models.Snapshot{})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Offer blocked")
	}
}

func TestDir_Prune(t *testing.T) {
	d, err := NewDir(t.TempDir(), 2)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		d.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if err := d.write(&models.Snapshot{}); err != nil {
			t.Fatal(err)
		}
		if err := d.prune(); err != nil {
			t.Fatal(err)
		}
	}
	d.Close()

	files, err := d.Files()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files after prune, got %d", len(files))
	}
}

func TestDir_OfferAfterClose(t *testing.T) {
	d, err := NewDir(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	d.Close()
	d.Offer(&models.Snapshot{})
	if err := d.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
