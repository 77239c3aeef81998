// Package assessment owns the set of assessment projects, the active-project
// pointer and every sanctioned way of changing them.
package assessment

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"pp-governance/internal/catalog"
	"pp-governance/internal/models"
	"pp-governance/internal/scoring"

	"github.com/pkg/errors"
)

var (
	ErrProjectExists   = errors.New("project already exists")
	ErrNoActiveProject = errors.New("no active project")
	ErrInvalidName     = errors.New("invalid project name")
)

// Store loads the snapshot at startup and saves it after every mutation.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

// Backup receives a copy of every saved snapshot. It must not block.
type Backup interface {
	Offer(snap *models.Snapshot)
}

type Option func(*Workspace)

func WithStore(s Store) Option {
	return func(w *Workspace) { w.store = s }
}

func WithBackup(b Backup) Option {
	return func(w *Workspace) { w.backup = b }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

// Workspace is the application state: every project plus which one is
// active. Callers always get copies; the tree is only replaced whole.
type Workspace struct {
	catalog *catalog.Catalog
	store   Store
	backup  Backup
	now     func() time.Time

	mu       sync.RWMutex
	projects []*models.Project
	active   string
}

// New builds a workspace and loads any saved state from the store.
func New(ctx context.Context, cat *catalog.Catalog, opts ...Option) (*Workspace, error) {
	if cat == nil {
		return nil, errors.New("assessment: nil catalog")
	}
	w := &Workspace{catalog: cat, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}

	if w.store != nil {
		snap, err := w.store.Load(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "load workspace")
		}
		w.projects = snap.Projects
		if w.find(snap.Active) >= 0 {
			w.active = snap.Active
		}
		log.Printf("workspace loaded: %d project(s), active=%q", len(w.projects), w.active)
	}
	return w, nil
}

func (w *Workspace) find(name string) int {
	if name == "" {
		return -1
	}
	for i, p := range w.projects {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// checkName trims a project name and rejects empty ones and ones that
// cannot be used as a single URL path segment.
func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Wrap(ErrInvalidName, "name is required")
	}
	if strings.ContainsAny(name, "/\\") {
		return "", errors.Wrapf(ErrInvalidName, "%q must not contain slashes", name)
	}
	return name, nil
}

// CreateProject adds a blank project from the catalog and makes it active.
func (w *Workspace) CreateProject(ctx context.Context, name, clientRef string) (*models.Project, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.find(name) >= 0 {
		return nil, errors.Wrapf(ErrProjectExists, "%q", name)
	}
	p := w.catalog.Blank(name, strings.TrimSpace(clientRef), w.now())
	w.projects = append(w.projects, p)
	w.active = name
	w.persist(ctx)
	return p.Clone(), nil
}

// SetActiveProject switches the active project.
func (w *Workspace) SetActiveProject(ctx context.Context, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.find(name) < 0 {
		return models.NotFound("project", name)
	}
	w.active = name
	w.persist(ctx)
	return nil
}

// DeleteProject removes a project; deleting the active one leaves no
// project active.
func (w *Workspace) DeleteProject(ctx context.Context, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.find(name)
	if i < 0 {
		return models.NotFound("project", name)
	}
	w.projects = append(w.projects[:i:i], w.projects[i+1:]...)
	if w.active == name {
		w.active = ""
	}
	w.persist(ctx)
	return nil
}

// RecordAnswer sets one answer on the active project and rescores its
// standard in the same step. It returns the updated standard.
func (w *Workspace) RecordAnswer(ctx context.Context, slug, questionID string, in scoring.AnswerInput) (*models.Standard, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.activeIndex()
	if err != nil {
		return nil, err
	}
	return w.record(ctx, i, slug, questionID, in)
}

// RecordRawAnswer is RecordAnswer for a JSON-encoded value. The value is
// decoded against the question's answer type under the same lock as the
// write, so a concurrent project switch cannot mix the two up. in.Value is
// ignored.
func (w *Workspace) RecordRawAnswer(ctx context.Context, slug, questionID string, raw []byte, in scoring.AnswerInput) (*models.Standard, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.activeIndex()
	if err != nil {
		return nil, err
	}
	std := w.projects[i].Standard(slug)
	if std == nil {
		return nil, models.NotFound("standard", slug)
	}
	q := std.Question(questionID)
	if q == nil {
		return nil, models.NotFound("question", slug+"/"+questionID)
	}
	if in.Value, err = models.ParseAnswer(q.Type, raw); err != nil {
		return nil, err
	}
	return w.record(ctx, i, slug, questionID, in)
}

// record must be called with w.mu held.
func (w *Workspace) record(ctx context.Context, i int, slug, questionID string, in scoring.AnswerInput) (*models.Standard, error) {
	p, err := scoring.SetAnswer(w.projects[i], slug, questionID, in, w.now())
	if err != nil {
		return nil, err
	}
	p, err = scoring.CalculateScoresAndRAG(p, slug)
	if err != nil {
		return nil, err
	}
	w.projects[i] = p
	w.persist(ctx)

	return p.Clone().Standard(slug), nil
}

// Rescore re-runs the scoring pass for one standard of the active project.
// Running it twice in a row changes nothing.
func (w *Workspace) Rescore(ctx context.Context, slug string) (*models.Standard, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.activeIndex()
	if err != nil {
		return nil, err
	}
	p, err := scoring.CalculateScoresAndRAG(w.projects[i], slug)
	if err != nil {
		return nil, err
	}
	w.projects[i] = p
	w.persist(ctx)

	return p.Clone().Standard(slug), nil
}

func (w *Workspace) activeIndex() (int, error) {
	if w.active == "" {
		return -1, ErrNoActiveProject
	}
	i := w.find(w.active)
	if i < 0 {
		return -1, models.NotFound("project", w.active)
	}
	return i, nil
}

// persist must be called with w.mu held. A failed save is logged; the
// in-memory edit stands.
func (w *Workspace) persist(ctx context.Context) {
	if w.store == nil && w.backup == nil {
		return
	}
	snap := w.snapshot()
	if w.store != nil {
		if err := w.store.Save(ctx, snap); err != nil {
			log.Printf("workspace: save failed: %v", err)
			return
		}
	}
	if w.backup != nil {
		w.backup.Offer(snap)
	}
}

func (w *Workspace) snapshot() *models.Snapshot {
	snap := &models.Snapshot{Active: w.active, Projects: make([]*models.Project, len(w.projects))}
	for i, p := range w.projects {
		snap.Projects[i] = p.Clone()
	}
	return snap
}
