package models

type RiskLevel string
type RAGStatus string

const (
	RiskNone   RiskLevel = ""
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"

	RAGRed   RAGStatus = "red"
	RAGAmber RAGStatus = "amber"
	RAGGreen RAGStatus = "green"
	RAGGrey  RAGStatus = "grey"
)

// Severity orders statuses for aggregation: red > amber > green > grey.
func (s RAGStatus) Severity() int {
	switch s {
	case RAGRed:
		return 3
	case RAGAmber:
		return 2
	case RAGGreen:
		return 1
	default:
		return 0
	}
}

// Flagged reports whether the status needs attention (red or amber).
func (s RAGStatus) Flagged() bool {
	return s == RAGRed || s == RAGAmber
}
