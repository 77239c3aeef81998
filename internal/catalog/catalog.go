// Package catalog loads the static list of standards and questions that
// every new project starts from.
package catalog

import (
	_ "embed"
	"os"
	"strings"
	"time"

	"pp-governance/internal/models"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type yamlCatalog struct {
	Standards []yamlStandard `yaml:"standards"`
}

type yamlStandard struct {
	Name        string         `yaml:"name"`
	Slug        string         `yaml:"slug"`
	Weight      float64        `yaml:"weight"`
	Description string         `yaml:"description"`
	Questions   []yamlQuestion `yaml:"questions"`
}

type yamlQuestion struct {
	ID     string  `yaml:"id"`
	Text   string  `yaml:"text"`
	Type   string  `yaml:"type"`
	Weight float64 `yaml:"weight"`
}

// Catalog is the validated question set.
type Catalog struct {
	Standards []models.Standard
}

// Default returns the embedded Power Platform catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file; an empty path means the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog bytes.
func Parse(data []byte) (*Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}
	if len(raw.Standards) == 0 {
		return nil, errors.New("catalog has no standards")
	}

	c := &Catalog{Standards: make([]models.Standard, 0, len(raw.Standards))}
	for _, ys := range raw.Standards {
		c.Standards = append(c.Standards, convertStandard(ys))
	}
	if err := models.ValidateStandards(c.Standards); err != nil {
		return nil, err
	}
	return c, nil
}

func convertStandard(ys yamlStandard) models.Standard {
	std := models.Standard{
		Name:        strings.TrimSpace(ys.Name),
		Slug:        strings.TrimSpace(ys.Slug),
		Weight:      ys.Weight,
		Description: strings.TrimSpace(ys.Description),
		RAGStatus:   models.RAGGrey,
	}
	for _, yq := range ys.Questions {
		std.Questions = append(std.Questions, models.Question{
			ID:        strings.TrimSpace(yq.ID),
			Text:      strings.TrimSpace(yq.Text),
			Type:      models.AnswerType(strings.TrimSpace(yq.Type)),
			Weight:    yq.Weight,
			RAGStatus: models.RAGGrey,
		})
	}
	return std
}

// Blank builds a new project with every answer cleared and every computed
// field zeroed or grey.
func (c *Catalog) Blank(name, clientRef string, now time.Time) *models.Project {
	tpl := &models.Project{Standards: c.Standards}
	p := tpl.Clone()
	p.Name = name
	p.ClientRef = clientRef
	p.CreatedAt = now
	p.LastModified = now
	p.OverallRAG = models.RAGGrey
	return p
}

// Slugs lists standard slugs in catalog order.
func (c *Catalog) Slugs() []string {
	out := make([]string, len(c.Standards))
	for i := range c.Standards {
		out[i] = c.Standards[i].Slug
	}
	return out
}
