package verify

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/avolkov/tessera/internal/model"
)

// structValidator checks required fields declared via struct tags.
var structValidator = validator.New(validator.WithRequiredStructEnabled())

// FieldError is one structural problem with a submitted record.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError reports malformed input. Malformed records fail fast
// before any scoring; they are never silently coerced into rejections.
type ValidationError struct {
	Kind   string       `json:"kind"` // "raw_input" or "case_context"
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return fmt.Sprintf("malformed %s: %s", e.Kind, strings.Join(parts, ", "))
}

// ValidateInput checks that a raw input carries the fields the pipeline
// cannot proceed without. Content, source and provenance problems are
// verification concerns, not validation errors.
func ValidateInput(input model.RawInput) error {
	return structError("raw_input", structValidator.Struct(input))
}

// ValidateContext checks the per-case parameters.
func ValidateContext(caseCtx model.CaseContext) error {
	if err := structError("case_context", structValidator.Struct(caseCtx)); err != nil {
		return err
	}
	if !caseCtx.CaseType.IsKnown() {
		return &ValidationError{
			Kind:   "case_context",
			Fields: []FieldError{{Field: "CaseType", Rule: "known_case_type"}},
		}
	}
	return nil
}

func structError(kind string, err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate %s: %w", kind, err)
	}
	out := &ValidationError{Kind: kind}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
