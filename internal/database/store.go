package database

import (
	"context"
	"encoding/json"

	"pp-governance/internal/models"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the workspace snapshot as one ProjectRecord per project.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	var records []models.ProjectRecord
	if err := s.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "load projects")
	}

	snap := &models.Snapshot{}
	for _, rec := range records {
		tree, err := models.RehydrateDates(rec.Tree)
		if err != nil {
			return nil, errors.Wrapf(err, "decode project %s", rec.Name)
		}
		var p models.Project
		if err := json.Unmarshal(tree, &p); err != nil {
			return nil, errors.Wrapf(err, "decode project %s", rec.Name)
		}
		p.Name = rec.Name
		p.ClientRef = rec.ClientRef
		snap.Projects = append(snap.Projects, &p)
		if rec.Active {
			snap.Active = rec.Name
		}
	}
	return snap, nil
}

// Save upserts every project by name and removes rows for projects that are
// no longer in the snapshot, all in one transaction.
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	if snap == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := make([]string, 0, len(snap.Projects))
		for _, p := range snap.Projects {
			tree, err := json.Marshal(p)
			if err != nil {
				return errors.Wrapf(err, "encode project %s", p.Name)
			}
			rec := models.ProjectRecord{
				Name:      p.Name,
				ClientRef: p.ClientRef,
				Active:    p.Name == snap.Active,
				Tree:      datatypes.JSON(tree),
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"client_ref", "active", "tree", "updated_at"}),
			}).Create(&rec).Error
			if err != nil {
				return errors.Wrapf(err, "save project %s", p.Name)
			}
			names = append(names, p.Name)
		}

		stale := tx.Unscoped()
		if len(names) > 0 {
			stale = stale.Where("name NOT IN ?", names)
		} else {
			stale = stale.Where("1 = 1")
		}
		return errors.Wrap(stale.Delete(&models.ProjectRecord{}).Error, "remove deleted projects")
	})
}
