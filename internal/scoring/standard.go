package scoring

import (
	"time"

	"pp-governance/internal/models"
)

// AnswerInput is one answer edit. Value always replaces the current answer;
// the pointer fields replace their counterpart only when non-nil.
// ClearDocument detaches the current document; a non-nil Document in the
// same edit is attached afterwards.
type AnswerInput struct {
	Value         models.Answer
	NotApplicable *bool
	EvidenceNotes *string
	RiskOwner     *string
	Document      *models.DocumentData
	ClearDocument bool
}

// SetAnswer returns a copy of p with the addressed answer replaced and the
// owning standard's completion recomputed. Scores, risk levels and RAG are
// left as they were until CalculateScoresAndRAG runs.
func SetAnswer(p *models.Project, slug, questionID string, in AnswerInput, now time.Time) (*models.Project, error) {
	out := p.Clone()
	std := out.Standard(slug)
	if std == nil {
		return nil, models.NotFound("standard", slug)
	}
	q := std.Question(questionID)
	if q == nil {
		return nil, models.NotFound("question", slug+"/"+questionID)
	}
	if err := models.CheckAnswer(q.Type, in.Value); err != nil {
		return nil, err
	}

	q.Answer = in.Value
	if in.NotApplicable != nil {
		q.NotApplicable = *in.NotApplicable
	}
	if in.EvidenceNotes != nil {
		q.EvidenceNotes = *in.EvidenceNotes
	}
	if in.RiskOwner != nil {
		q.RiskOwner = *in.RiskOwner
	}
	if in.ClearDocument {
		q.Document = nil
	}
	if in.Document != nil {
		doc := *in.Document
		q.Document = &doc
	}

	std.Completion = Completion(*std)
	out.LastModified = now
	return out, nil
}

// CalculateScoresAndRAG returns a copy of p with every question of the
// standard rescored, the standard's maturity and RAG refreshed and the
// project aggregates recomputed.
func CalculateScoresAndRAG(p *models.Project, slug string) (*models.Project, error) {
	out := p.Clone()
	std := out.Standard(slug)
	if std == nil {
		return nil, models.NotFound("standard", slug)
	}
	rescoreStandard(std)
	refreshProject(out)
	return out, nil
}

// RescoreAll runs the scoring pass over every standard of p.
func RescoreAll(p *models.Project) *models.Project {
	out := p.Clone()
	for i := range out.Standards {
		rescoreStandard(&out.Standards[i])
	}
	refreshProject(out)
	return out
}

func rescoreStandard(std *models.Standard) {
	for i := range std.Questions {
		q := &std.Questions[i]
		r := Evaluate(*q)
		q.Score = r.Score
		q.RiskLevel = r.RiskLevel
		q.RAGStatus = r.RAGStatus
	}
	std.Completion = Completion(*std)
	std.MaturityScore = Maturity(*std)
	std.RAGStatus = StandardRAG(*std)
}

// Completion is the share of answered questions, 0-100.
func Completion(std models.Standard) float64 {
	if len(std.Questions) == 0 {
		return 0
	}
	answered := 0
	for i := range std.Questions {
		if std.Questions[i].Answered() {
			answered++
		}
	}
	return float64(answered) * 100 / float64(len(std.Questions))
}

// Maturity is the weighted 0-5 score from the cached question scores.
// Unanswered questions keep their weight in the denominator, so an
// incomplete standard scores lower. Not-applicable questions are left out
// of both sides.
func Maturity(std models.Standard) float64 {
	var num, den float64
	for i := range std.Questions {
		q := &std.Questions[i]
		if q.NotApplicable {
			continue
		}
		num += q.Score * q.Weight
		den += q.Weight * 5
	}
	if den == 0 {
		return 0
	}
	return 5 * num / den
}

// StandardRAG is the worst status among evaluated questions, or grey when
// none has been evaluated.
func StandardRAG(std models.Standard) models.RAGStatus {
	worst := models.RAGGrey
	for i := range std.Questions {
		q := &std.Questions[i]
		if !q.Evaluated() {
			continue
		}
		if q.RAGStatus.Severity() > worst.Severity() {
			worst = q.RAGStatus
		}
	}
	return worst
}
