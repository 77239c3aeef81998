package assessment

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"pp-governance/internal/models"
	"pp-governance/internal/scoring"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	exportFormat  = "pp-governance/project"
	exportVersion = 1
)

var ErrInvalidImport = errors.New("invalid project file")

type exportFile struct {
	Format     string          `json:"format"`
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Project    *models.Project `json:"project"`
}

// Export renders one project as an indented JSON file.
func (w *Workspace) Export(name string) ([]byte, error) {
	p, err := w.Project(name)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(exportFile{
		Format:     exportFormat,
		Version:    exportVersion,
		ExportedAt: w.now().UTC(),
		Project:    p,
	}, "", "  ")
}

// Import adds a project from an exported file, rescored from its answers,
// and makes it active. A non-empty name overrides the one in the file.
func (w *Workspace) Import(ctx context.Context, data []byte, name string) (*models.Project, error) {
	p, err := DecodeProject(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		if p.Name, err = checkName(name); err != nil {
			return nil, err
		}
	}

	now := w.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.LastModified.IsZero() {
		p.LastModified = p.CreatedAt
	}
	p = scoring.RescoreAll(p)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.find(p.Name) >= 0 {
		return nil, errors.Wrapf(ErrProjectExists, "%q", p.Name)
	}
	w.projects = append(w.projects, p)
	w.active = p.Name
	w.persist(ctx)
	return p.Clone(), nil
}

// DecodeProject parses an export file. A bare project document is accepted
// as well, and timestamps written as epoch milliseconds are turned back into
// dates.
func DecodeProject(data []byte) (*models.Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(ErrInvalidImport, "not valid json")
	}

	root := gjson.ParseBytes(data)
	if f := root.Get("format"); f.Exists() {
		if f.String() != exportFormat {
			return nil, errors.Wrapf(ErrInvalidImport, "unknown format %q", f.String())
		}
		if v := root.Get("version").Int(); v > exportVersion {
			return nil, errors.Wrapf(ErrInvalidImport, "unsupported version %d", v)
		}
		root = root.Get("project")
	}

	if !root.IsObject() {
		return nil, errors.Wrap(ErrInvalidImport, "project object missing")
	}
	if _, err := checkName(root.Get("name").String()); err != nil {
		return nil, errors.Wrap(ErrInvalidImport, err.Error())
	}
	if !root.Get("standards").IsArray() {
		return nil, errors.Wrap(ErrInvalidImport, "standards missing")
	}

	raw, err := models.RehydrateDates([]byte(root.Raw))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidImport, err.Error())
	}
	var p models.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(ErrInvalidImport, err.Error())
	}
	p.Name = strings.TrimSpace(p.Name)

	if err := models.ValidateStandards(p.Standards); err != nil {
		return nil, errors.Wrap(ErrInvalidImport, err.Error())
	}
	return &p, nil
}
