package database

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"pp-governance/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "governance.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.ProjectRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testProject(name, clientRef string, answer bool) *models.Project {
	ts := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	rag := models.RAGRed
	if answer {
		rag = models.RAGGreen
	}
	return &models.Project{
		Name: name, ClientRef: clientRef, CreatedAt: ts, LastModified: ts, OverallRAG: rag,
		Standards: []models.Standard{{
			Name: "DLP", Slug: "dlp", Weight: 1, Completion: 100, RAGStatus: rag,
			Questions: []models.Question{{
				ID: "tenant", Text: "Tenant policy?", Type: models.AnswerBoolean, Weight: 1,
				Answer: models.BoolAnswer(answer), RAGStatus: rag,
			}},
		}},
	}
}

func rowCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Unscoped().Model(&models.ProjectRecord{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewStore(db)

	a := testProject("Contoso", "Contoso Ltd", true)
	b := testProject("Fabrikam", "", false)
	if err := s.Save(ctx, &models.Snapshot{Active: "Fabrikam", Projects: []*models.Project{a, b}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snap, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Active != "Fabrikam" {
		t.Errorf("active = %q, want Fabrikam", snap.Active)
	}
	if len(snap.Projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(snap.Projects))
	}
	if !reflect.DeepEqual(snap.Projects[0], a) || !reflect.DeepEqual(snap.Projects[1], b) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", snap.Projects, []*models.Project{a, b})
	}
}

func TestStore_UpdateDeleteAndResave(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewStore(db)

	a := testProject("Contoso", "", true)
	b := testProject("Fabrikam", "", false)
	if err := s.Save(ctx, &models.Snapshot{Active: "Contoso", Projects: []*models.Project{a, b}}); err != nil {
		t.Fatal(err)
	}

	// update b in place, drop a, move the active flag
	b2 := testProject("Fabrikam", "Fabrikam Inc", true)
	if err := s.Save(ctx, &models.Snapshot{Active: "Fabrikam", Projects: []*models.Project{b2}}); err != nil {
		t.Fatalf("Save after delete: %v", err)
	}
	snap, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Projects) != 1 || !reflect.DeepEqual(snap.Projects[0], b2) || snap.Active != "Fabrikam" {
		t.Fatalf("after delete = %+v", snap)
	}
	if n := rowCount(t, db); n != 1 {
		t.Errorf("rows incl. soft-deleted = %d, want 1", n)
	}

	// a deleted name can come back without a unique-index clash
	if err := s.Save(ctx, &models.Snapshot{Projects: []*models.Project{b2, a}}); err != nil {
		t.Fatalf("Save re-adding Contoso: %v", err)
	}
	snap, err = s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Projects) != 2 || snap.Active != "" {
		t.Fatalf("after re-add = %d project(s), active %q", len(snap.Projects), snap.Active)
	}
	if snap.Projects[0].Name != "Fabrikam" || snap.Projects[1].Name != "Contoso" {
		t.Errorf("order = %s, %s; want insertion order", snap.Projects[0].Name, snap.Projects[1].Name)
	}

	// an empty snapshot clears the table
	if err := s.Save(ctx, &models.Snapshot{}); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	if n := rowCount(t, db); n != 0 {
		t.Errorf("rows after empty save = %d, want 0", n)
	}
	snap, err = s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Projects) != 0 || snap.Active != "" {
		t.Errorf("empty load = %+v", snap)
	}
}

func TestStore_LoadLegacyTree(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	rec := models.ProjectRecord{
		Name:   "legacy",
		Active: true,
		Tree:   []byte(`{"name": "legacy", "createdAt": 1704067200000, "lastModified": 1704067200000, "standards": []}`),
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatal(err)
	}

	snap, err := NewStore(db).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Active != "legacy" {
		t.Errorf("active = %q", snap.Active)
	}
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !snap.Projects[0].CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", snap.Projects[0].CreatedAt, want)
	}
}
