// Package schema enforces structural and enum constraints on documents before they reach the
// database. It runs independently of the interactive validators: the personalization validators
// are a pre-check, this package is the store-side gate.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

// ErrPersistenceRejected marks writes the Schema Store refused.
var ErrPersistenceRejected = errors.New("persistence rejected")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Violation is one failed constraint, addressed by its JSON path.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// RejectedError carries the violations of a refused write. It matches ErrPersistenceRejected.
type RejectedError struct {
	Document   string
	Violations []Violation
	Cause      error
}

func (e *RejectedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s rejected: %v", e.Document, e.Cause)
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("%s rejected: %s", e.Document, strings.Join(msgs, "; "))
}

func (e *RejectedError) Is(target error) bool { return target == ErrPersistenceRejected }

func (e *RejectedError) Unwrap() error { return e.Cause }

// Reject wraps a storage-level failure (unique conflict, check constraint) as a rejection.
func Reject(document string, cause error) error {
	return &RejectedError{Document: document, Cause: cause}
}

// Validator returns the shared validator with document-level rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		validate.RegisterStructValidation(profileTimestamps, learner.Profile{})
		validate.RegisterStructValidation(sessionWindow, learner.LearningSession{})
		validate.RegisterStructValidation(cacheExpiry, learner.RecommendationCacheEntry{})
	})
	return validate
}

// Enforce validates doc and returns a *RejectedError describing every violation, or nil.
func Enforce(doc any) error {
	err := Validator().Struct(doc)
	if err == nil {
		return nil
	}
	name := documentName(doc)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RejectedError{Document: name, Cause: err}
	}
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		})
	}
	return &RejectedError{Document: name, Violations: out}
}

func profileTimestamps(sl validator.StructLevel) {
	p := sl.Current().Interface().(learner.Profile)
	if p.UpdatedAt.Before(p.CreatedAt) {
		sl.ReportError(p.UpdatedAt, "updated_at", "UpdatedAt", "not_before_created_at", "")
	}
}

func sessionWindow(sl validator.StructLevel) {
	s := sl.Current().Interface().(learner.LearningSession)
	if s.EndTime != nil && s.EndTime.Before(s.StartTime) {
		sl.ReportError(s.EndTime, "end_time", "EndTime", "not_before_start_time", "")
	}
}

func cacheExpiry(sl validator.StructLevel) {
	e := sl.Current().Interface().(learner.RecommendationCacheEntry)
	if e.ExpiresAt != nil && !e.ExpiresAt.After(e.GeneratedAt) {
		sl.ReportError(e.ExpiresAt, "expires_at", "ExpiresAt", "after_generated_at", "")
	}
}

// fieldPath drops the root struct name from the namespace: "Profile.basic_info.pace" -> "basic_info.pace".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func documentName(doc any) string {
	t := reflect.TypeOf(doc)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "document"
	}
	return t.Name()
}

var messageTemplates = map[string]string{
	"required":              "is required",
	"unique":                "must not contain duplicates",
	"not_before_created_at": "must not be before created_at",
	"not_before_start_time": "must not be before start_time",
	"after_generated_at":    "must be after generated_at",
}

var messageWithParam = map[string]string{
	"oneof": "must be one of: %s",
	"gte":   "must be greater than or equal to %s",
	"lte":   "must be less than or equal to %s",
	"gt":    "must be greater than %s",
	"min":   "must have at least %s",
	"max":   "must have at most %s",
}

func translate(fe validator.FieldError) string {
	if msg, ok := messageTemplates[fe.Tag()]; ok {
		return msg
	}
	if tmpl, ok := messageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Param())
	}
	return fmt.Sprintf("failed %q constraint", fe.Tag())
}
