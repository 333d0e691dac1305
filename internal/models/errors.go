package models

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrorKind tells apart the ways input or persistence can be rejected.
type ErrorKind int

const (
	// KindMissingKey means a required key was absent from the input mapping.
	KindMissingKey ErrorKind = iota + 1
	// KindBadData means the input was not a mapping at all.
	KindBadData
	// KindInvalidAttribute means a key held a value that cannot be assigned
	// to the matching field.
	KindInvalidAttribute
	// KindConstraint means the record breaks a length, required-field or
	// referential constraint.
	KindConstraint
	// KindPersistence means the backing store failed to persist the record.
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingKey:
		return "missing_key"
	case KindBadData:
		return "bad_data"
	case KindInvalidAttribute:
		return "invalid_attribute"
	case KindConstraint:
		return "constraint"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// ValidationError is returned for malformed input and for any failure to
// create, update or delete a record. Err holds the underlying cause, if any.
type ValidationError struct {
	Kind ErrorKind
	Key  string
	Msg  string
	Err  error
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missingKeyError(prefix, key string) *ValidationError {
	return &ValidationError{
		Kind: KindMissingKey,
		Key:  key,
		Msg:  fmt.Sprintf("%s: missing %s", prefix, key),
	}
}

func badDataError(prefix string, data any) *ValidationError {
	return &ValidationError{
		Kind: KindBadData,
		Msg:  fmt.Sprintf("%s: body of request contained bad or no data (expected a JSON object, got %s)", prefix, describe(data)),
	}
}

func invalidAttributeError(key string, cause error) *ValidationError {
	return &ValidationError{
		Kind: KindInvalidAttribute,
		Key:  key,
		Msg:  "Invalid attribute: " + key,
		Err:  cause,
	}
}

// NewConstraintError wraps a constraint violation reported by the store.
func NewConstraintError(err error) *ValidationError {
	return &ValidationError{Kind: KindConstraint, Msg: err.Error(), Err: err}
}

// NewPersistenceError wraps any other failure reported by the store.
func NewPersistenceError(err error) *ValidationError {
	return &ValidationError{Kind: KindPersistence, Msg: err.Error(), Err: err}
}

func constraintErrors(prefix string, errs *multierror.Error) error {
	if errs == nil || len(errs.Errors) == 0 {
		return nil
	}
	errs.ErrorFormat = func(list []error) string {
		msgs := make([]string, len(list))
		for i, err := range list {
			msgs[i] = err.Error()
		}
		return prefix + ": " + strings.Join(msgs, "; ")
	}
	return &ValidationError{Kind: KindConstraint, Msg: errs.Error(), Err: errs}
}

func describe(data any) string {
	switch data.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", data)
	}
}
