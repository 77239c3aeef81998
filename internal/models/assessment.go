package models

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Project is one assessment engagement. Names are unique.
type Project struct {
	Name         string     `json:"name"`
	ClientRef    string     `json:"clientRef,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastModified time.Time  `json:"lastModified"`
	Standards    []Standard `json:"standards"`

	// project-wide aggregates, refreshed by the scoring pass
	OverallRAG      RAGStatus `json:"overallRag"`
	OverallProgress float64   `json:"overallProgress"`
	OverallMaturity float64   `json:"overallMaturity"`
}

// Standard is one governance topic. Completion, MaturityScore and RAGStatus
// are caches derived from the questions.
type Standard struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Weight      float64    `json:"weight"`
	Questions   []Question `json:"questions"`

	Completion    float64   `json:"completion"`
	MaturityScore float64   `json:"maturityScore"`
	RAGStatus     RAGStatus `json:"ragStatus"`
}

type Question struct {
	ID     string     `json:"id"`
	Text   string     `json:"text"`
	Type   AnswerType `json:"type"`
	Weight float64    `json:"weight"`

	Answer        Answer        `json:"-"`
	NotApplicable bool          `json:"notApplicable,omitempty"`
	EvidenceNotes string        `json:"evidenceNotes,omitempty"`
	RiskOwner     string        `json:"riskOwner,omitempty"`
	Document      *DocumentData `json:"documentData,omitempty"`

	// derived from Type and Answer only
	Score     float64   `json:"score"`
	RiskLevel RiskLevel `json:"riskLevel,omitempty"`
	RAGStatus RAGStatus `json:"ragStatus"`
}

// DocumentData describes a file attached to a document-review question.
type DocumentData struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	MIMEType   string    `json:"mimeType,omitempty"`
	Size       int64     `json:"size,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Answered: a non-empty value, an attached document on a document-review
// question, or the not-applicable flag.
func (q *Question) Answered() bool {
	if q.NotApplicable {
		return true
	}
	if q.Answer != nil && !q.Answer.Empty() {
		return true
	}
	return q.Type == AnswerDocumentReview && q.Document != nil
}

// Evaluated reports whether the question takes part in scoring.
func (q *Question) Evaluated() bool {
	return q.Answered() && !q.NotApplicable
}

type questionAlias Question

type questionJSON struct {
	*questionAlias
	Answer json.RawMessage `json:"answer,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{questionAlias: (*questionAlias)(&q)}
	if q.Answer != nil {
		raw, err := json.Marshal(q.Answer)
		if err != nil {
			return nil, err
		}
		out.Answer = raw
	}
	return json.Marshal(out)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	in := questionJSON{questionAlias: (*questionAlias)(q)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	a, err := ParseAnswer(q.Type, in.Answer)
	if err != nil {
		return errors.Wrapf(err, "question %s", q.ID)
	}
	q.Answer = a
	return nil
}

// Standard returns the standard with the given slug, or nil.
func (p *Project) Standard(slug string) *Standard {
	for i := range p.Standards {
		if p.Standards[i].Slug == slug {
			return &p.Standards[i]
		}
	}
	return nil
}

// Question returns the question with the given id, or nil.
func (s *Standard) Question(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// Clone returns a deep copy, so a mutation never touches the original tree.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Standards = make([]Standard, len(p.Standards))
	for i, s := range p.Standards {
		cp.Standards[i] = s.clone()
	}
	return &cp
}

func (s Standard) clone() Standard {
	cp := s
	cp.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		qc := q
		if d, ok := q.Answer.(DocumentAnswer); ok {
			d.Annotations = append([]Annotation(nil), d.Annotations...)
			qc.Answer = d
		}
		if q.Document != nil {
			doc := *q.Document
			qc.Document = &doc
		}
		cp.Questions[i] = qc
	}
	return cp
}

// Snapshot is the whole persisted application state.
type Snapshot struct {
	Active   string     `json:"active,omitempty"`
	Projects []*Project `json:"projects"`
}
