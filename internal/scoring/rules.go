// Package scoring turns raw answers into scores, risk levels and RAG status,
// and rolls them up from questions to standards to the project.
// Every function here is pure: it never mutates its input tree.
package scoring

import "pp-governance/internal/models"

// Result is the derived state of one question.
type Result struct {
	Score     float64
	RiskLevel models.RiskLevel
	RAGStatus models.RAGStatus
}

var unanswered = Result{RAGStatus: models.RAGGrey}

// Evaluate computes the derived fields of q. Unanswered and not-applicable
// questions score 0 with no risk level and grey status.
func Evaluate(q models.Question) Result {
	if !q.Evaluated() {
		return unanswered
	}
	risk := RiskFor(q.Type, q.Answer)
	return Result{
		Score:     ScoreAnswer(q.Type, q.Answer),
		RiskLevel: risk,
		RAGStatus: RAGFor(risk),
	}
}

// ScoreAnswer maps an answer to the 0-5 scale. A value of the wrong concrete
// type for t lands in the lowest bucket.
func ScoreAnswer(t models.AnswerType, a models.Answer) float64 {
	switch t {
	case models.AnswerBoolean:
		if v, ok := a.(models.BoolAnswer); ok && bool(v) {
			return 5
		}
		return 1

	case models.AnswerScale:
		v, _ := a.(models.ScaleAnswer)
		return float64(v)

	case models.AnswerPercentage:
		v, _ := a.(models.PercentAnswer)
		switch {
		case v >= 75:
			return 5
		case v >= 50:
			return 3
		case v >= 25:
			return 2
		}
		return 1

	case models.AnswerDocumentReview:
		if hasContent(a) {
			return 3
		}
		return 1
	}

	// text and anything else
	return 3
}

// RiskFor maps an answer to its qualitative risk level.
func RiskFor(t models.AnswerType, a models.Answer) models.RiskLevel {
	switch t {
	case models.AnswerBoolean:
		if v, ok := a.(models.BoolAnswer); ok && bool(v) {
			return models.RiskLow
		}
		return models.RiskHigh

	case models.AnswerScale:
		v, _ := a.(models.ScaleAnswer)
		switch {
		case v <= 2:
			return models.RiskHigh
		case v == 3:
			return models.RiskMedium
		}
		return models.RiskLow

	case models.AnswerPercentage:
		v, _ := a.(models.PercentAnswer)
		switch {
		case v < 25:
			return models.RiskHigh
		case v < 75:
			return models.RiskMedium
		}
		return models.RiskLow

	case models.AnswerDocumentReview:
		if hasContent(a) {
			return models.RiskMedium
		}
		return models.RiskLow
	}

	return models.RiskMedium
}

// RAGFor is the single risk -> RAG mapping. No risk level means grey.
func RAGFor(r models.RiskLevel) models.RAGStatus {
	switch r {
	case models.RiskHigh:
		return models.RAGRed
	case models.RiskMedium:
		return models.RAGAmber
	case models.RiskLow:
		return models.RAGGreen
	}
	return models.RAGGrey
}

func hasContent(a models.Answer) bool {
	return a != nil && !a.Empty()
}
