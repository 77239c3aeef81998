package scoring

import "pp-governance/internal/models"

// RiskProfile counts questions by their cached risk level.
type RiskProfile struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func refreshProject(p *models.Project) {
	p.OverallRAG = OverallRAG(p)
	p.OverallProgress = OverallProgress(p)
	p.OverallMaturity = OverallMaturity(p)
}

// OverallRAG is the most severe standard status; grey when nothing has
// been evaluated anywhere.
func OverallRAG(p *models.Project) models.RAGStatus {
	worst := models.RAGGrey
	for i := range p.Standards {
		if s := p.Standards[i].RAGStatus; s.Severity() > worst.Severity() {
			worst = s
		}
	}
	return worst
}

// OverallProgress is the unweighted mean of standard completion.
func OverallProgress(p *models.Project) float64 {
	if len(p.Standards) == 0 {
		return 0
	}
	var sum float64
	for i := range p.Standards {
		sum += p.Standards[i].Completion
	}
	return sum / float64(len(p.Standards))
}

// OverallMaturity is the weight-averaged maturity of the standards that have
// been started. Untouched standards are left out entirely.
func OverallMaturity(p *models.Project) float64 {
	var num, den float64
	for i := range p.Standards {
		s := &p.Standards[i]
		if s.Completion <= 0 {
			continue
		}
		num += s.MaturityScore * s.Weight
		den += s.Weight
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Profile reads the cached risk levels; it does not rescore.
func Profile(p *models.Project) RiskProfile {
	var rp RiskProfile
	for i := range p.Standards {
		for j := range p.Standards[i].Questions {
			switch p.Standards[i].Questions[j].RiskLevel {
			case models.RiskHigh:
				rp.High++
			case models.RiskMedium:
				rp.Medium++
			case models.RiskLow:
				rp.Low++
			}
		}
	}
	return rp
}
