package scoring

import (
	"sort"

	"pp-governance/internal/models"
)

// PriorityArea is one line of the high-priority list. Fallback entries stand
// for a flagged standard that has no flagged question of its own.
type PriorityArea struct {
	StandardSlug string           `json:"standardSlug"`
	StandardName string           `json:"standardName"`
	QuestionID   string           `json:"questionId,omitempty"`
	QuestionText string           `json:"questionText,omitempty"`
	RAGStatus    models.RAGStatus `json:"ragStatus"`
	RiskLevel    models.RiskLevel `json:"riskLevel,omitempty"`
	RiskOwner    string           `json:"riskOwner,omitempty"`
	Fallback     bool             `json:"fallback,omitempty"`
}

// HighPriorityAreas lists red and amber items, red first, then by standard name.
func HighPriorityAreas(p *models.Project) []PriorityArea {
	var out []PriorityArea
	for i := range p.Standards {
		s := &p.Standards[i]
		flagged := false
		for j := range s.Questions {
			q := &s.Questions[j]
			if !q.RAGStatus.Flagged() {
				continue
			}
			flagged = true
			out = append(out, PriorityArea{
				StandardSlug: s.Slug,
				StandardName: s.Name,
				QuestionID:   q.ID,
				QuestionText: q.Text,
				RAGStatus:    q.RAGStatus,
				RiskLevel:    q.RiskLevel,
				RiskOwner:    q.RiskOwner,
			})
		}
		if !flagged && s.RAGStatus.Flagged() {
			out = append(out, PriorityArea{
				StandardSlug: s.Slug,
				StandardName: s.Name,
				RAGStatus:    s.RAGStatus,
				Fallback:     true,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].RAGStatus.Severity(), out[j].RAGStatus.Severity()
		if si != sj {
			return si > sj
		}
		return out[i].StandardName < out[j].StandardName
	})
	return out
}
