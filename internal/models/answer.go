package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type AnswerType string

const (
	AnswerBoolean        AnswerType = "boolean"
	AnswerScale          AnswerType = "scale"
	AnswerPercentage     AnswerType = "percentage"
	AnswerText           AnswerType = "text"
	AnswerDocumentReview AnswerType = "document-review"
)

func (t AnswerType) Valid() bool {
	switch t {
	case AnswerBoolean, AnswerScale, AnswerPercentage, AnswerText, AnswerDocumentReview:
		return true
	}
	return false
}

var (
	ErrInvalidAnswer  = errors.New("invalid answer")
	ErrAnswerMismatch = errors.New("answer does not match question type")
)

// Answer is a value recorded against a question. The concrete type always
// matches the question's AnswerType.
type Answer interface {
	Type() AnswerType
	// Empty reports whether the value carries nothing worth scoring.
	Empty() bool
	isAnswer()
}

type BoolAnswer bool

type ScaleAnswer int

type PercentAnswer float64

type TextAnswer string

// DocumentAnswer is the reviewer's take on an attached document.
type DocumentAnswer struct {
	Summary     string       `json:"summary,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Annotation struct {
	Page int    `json:"page,omitempty"`
	Note string `json:"note"`
}

func (BoolAnswer) Type() AnswerType     { return AnswerBoolean }
func (ScaleAnswer) Type() AnswerType    { return AnswerScale }
func (PercentAnswer) Type() AnswerType  { return AnswerPercentage }
func (TextAnswer) Type() AnswerType     { return AnswerText }
func (DocumentAnswer) Type() AnswerType { return AnswerDocumentReview }

func (BoolAnswer) Empty() bool      { return false }
func (ScaleAnswer) Empty() bool     { return false }
func (PercentAnswer) Empty() bool   { return false }
func (a TextAnswer) Empty() bool    { return strings.TrimSpace(string(a)) == "" }
func (a DocumentAnswer) Empty() bool {
	return strings.TrimSpace(a.Summary) == "" && len(a.Annotations) == 0
}

func (BoolAnswer) isAnswer()     {}
func (ScaleAnswer) isAnswer()    {}
func (PercentAnswer) isAnswer()  {}
func (TextAnswer) isAnswer()     {}
func (DocumentAnswer) isAnswer() {}

// CheckAnswer verifies that a fits a question of type t. A nil answer always fits.
func CheckAnswer(t AnswerType, a Answer) error {
	if a == nil {
		return nil
	}
	if a.Type() != t {
		return errors.Wrapf(ErrAnswerMismatch, "%s answer for %s question", a.Type(), t)
	}
	switch v := a.(type) {
	case ScaleAnswer:
		if v < 1 || v > 5 {
			return errors.Wrapf(ErrInvalidAnswer, "scale value %d outside 1-5", int(v))
		}
	case PercentAnswer:
		f := float64(v)
		if math.IsNaN(f) || f < 0 || f > 100 {
			return errors.Wrapf(ErrInvalidAnswer, "percentage %v outside 0-100", f)
		}
	}
	return nil
}

// ParseAnswer decodes a raw JSON value for a question of type t.
// null, missing and blank values decode to a nil Answer (unanswered).
// Numeric strings are accepted for scale and percentage questions; any other
// non-numeric value is rejected rather than silently scored.
func ParseAnswer(t AnswerType, raw []byte) (Answer, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.Wrap(ErrInvalidAnswer, "malformed json")
	}

	v := gjson.ParseBytes(raw)
	if v.Type == gjson.Null {
		return nil, nil
	}
	if v.Type == gjson.String && strings.TrimSpace(v.Str) == "" {
		return nil, nil
	}

	var a Answer
	switch t {
	case AnswerBoolean:
		switch v.Type {
		case gjson.True:
			a = BoolAnswer(true)
		case gjson.False:
			a = BoolAnswer(false)
		case gjson.String:
			b, err := parseBool(v.Str)
			if err != nil {
				return nil, err
			}
			a = BoolAnswer(b)
		default:
			return nil, errors.Wrapf(ErrInvalidAnswer, "boolean expected, got %s", v.Raw)
		}

	case AnswerScale:
		n, err := number(v)
		if err != nil {
			return nil, err
		}
		if n != math.Trunc(n) {
			return nil, errors.Wrapf(ErrInvalidAnswer, "scale value %v is not a whole number", n)
		}
		a = ScaleAnswer(int(n))

	case AnswerPercentage:
		n, err := number(v)
		if err != nil {
			return nil, err
		}
		a = PercentAnswer(n)

	case AnswerText:
		if v.Type != gjson.String {
			return nil, errors.Wrapf(ErrInvalidAnswer, "text expected, got %s", v.Raw)
		}
		a = TextAnswer(v.Str)

	case AnswerDocumentReview:
		switch {
		case v.Type == gjson.String:
			a = DocumentAnswer{Summary: v.Str}
		case v.IsObject():
			var d DocumentAnswer
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, errors.Wrap(ErrInvalidAnswer, err.Error())
			}
			a = d
		default:
			return nil, errors.Wrapf(ErrInvalidAnswer, "document review expected, got %s", v.Raw)
		}

	default:
		return nil, errors.Wrapf(ErrInvalidAnswer, "unknown answer type %q", t)
	}

	if a.Empty() {
		return nil, nil
	}
	if err := CheckAnswer(t, a); err != nil {
		return nil, err
	}
	return a, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true, nil
	case "false", "no", "n", "0":
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidAnswer, "boolean expected, got %q", s)
}

func number(v gjson.Result) (float64, error) {
	var n float64
	switch v.Type {
	case gjson.Number:
		n = v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidAnswer, "number expected, got %q", v.Str)
		}
		n = f
	default:
		return 0, errors.Wrapf(ErrInvalidAnswer, "number expected, got %s", v.Raw)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.Wrapf(ErrInvalidAnswer, "number expected, got %v", n)
	}
	return n, nil
}
