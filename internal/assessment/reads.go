package assessment

import (
	"time"

	"pp-governance/internal/models"
	"pp-governance/internal/scoring"
)

// Listing is the one-line view of a project.
type Listing struct {
	Name            string           `json:"name"`
	ClientRef       string           `json:"clientRef,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	LastModified    time.Time        `json:"lastModified"`
	Active          bool             `json:"active"`
	OverallRAG      models.RAGStatus `json:"overallRag"`
	OverallProgress float64          `json:"overallProgress"`
	OverallMaturity float64          `json:"overallMaturity"`
}

type StandardSummary struct {
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Weight        float64          `json:"weight"`
	Completion    float64          `json:"completion"`
	MaturityScore float64          `json:"maturityScore"`
	RAGStatus     models.RAGStatus `json:"ragStatus"`
}

// Summary is the dashboard read-model of the active project.
type Summary struct {
	Project      string              `json:"project"`
	ClientRef    string              `json:"clientRef,omitempty"`
	LastModified time.Time           `json:"lastModified"`
	Progress     float64             `json:"progress"`
	Maturity     float64             `json:"maturity"`
	RAGStatus    models.RAGStatus    `json:"ragStatus"`
	RiskProfile  scoring.RiskProfile `json:"riskProfile"`
	Standards    []StandardSummary   `json:"standards"`
}

// ActiveName is the active project's name, or "" when none is active.
func (w *Workspace) ActiveName() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// Active returns a copy of the active project.
func (w *Workspace) Active() (*models.Project, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	i, err := w.activeIndex()
	if err != nil {
		return nil, err
	}
	return w.projects[i].Clone(), nil
}

// Project returns a copy of the named project.
func (w *Workspace) Project(name string) (*models.Project, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	i := w.find(name)
	if i < 0 {
		return nil, models.NotFound("project", name)
	}
	return w.projects[i].Clone(), nil
}

// Projects lists every project in creation order.
func (w *Workspace) Projects() []Listing {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Listing, 0, len(w.projects))
	for _, p := range w.projects {
		out = append(out, Listing{
			Name:            p.Name,
			ClientRef:       p.ClientRef,
			CreatedAt:       p.CreatedAt,
			LastModified:    p.LastModified,
			Active:          p.Name == w.active,
			OverallRAG:      scoring.OverallRAG(p),
			OverallProgress: scoring.OverallProgress(p),
			OverallMaturity: scoring.OverallMaturity(p),
		})
	}
	return out
}

// Standard returns a copy of one standard of the active project.
func (w *Workspace) Standard(slug string) (*models.Standard, error) {
	p, err := w.Active()
	if err != nil {
		return nil, err
	}
	std := p.Standard(slug)
	if std == nil {
		return nil, models.NotFound("standard", slug)
	}
	return std, nil
}

// Summary reads the project-wide figures from the cached scores.
func (w *Workspace) Summary() (*Summary, error) {
	p, err := w.Active()
	if err != nil {
		return nil, err
	}
	s := &Summary{
		Project:      p.Name,
		ClientRef:    p.ClientRef,
		LastModified: p.LastModified,
		Progress:     scoring.OverallProgress(p),
		Maturity:     scoring.OverallMaturity(p),
		RAGStatus:    scoring.OverallRAG(p),
		RiskProfile:  scoring.Profile(p),
		Standards:    make([]StandardSummary, 0, len(p.Standards)),
	}
	for _, std := range p.Standards {
		s.Standards = append(s.Standards, StandardSummary{
			Name:          std.Name,
			Slug:          std.Slug,
			Weight:        std.Weight,
			Completion:    std.Completion,
			MaturityScore: std.MaturityScore,
			RAGStatus:     std.RAGStatus,
		})
	}
	return s, nil
}

// Priorities is the red/amber list for the active project.
func (w *Workspace) Priorities() ([]scoring.PriorityArea, error) {
	p, err := w.Active()
	if err != nil {
		return nil, err
	}
	return scoring.HighPriorityAreas(p), nil
}
