package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConfiguration   = errors.New("invalid configuration")
	ErrEmptyInput             = errors.New("arguments must be not empty")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrMissingSignatureFields = errors.New("missed signature field(s)")
	ErrMissingRequiredFields  = errors.New("missed required field(s)")
	ErrEncodingUnsupported    = errors.New("encoding unsupported")
	ErrInvalidCallback        = errors.New("invalid callback function name")
)

// FieldsError lists every field that failed a check. It matches its Kind
// with errors.Is.
type FieldsError struct {
	Kind   error
	Fields []string
}

func (e *FieldsError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(e.Fields, ", "))
}

func (e *FieldsError) Unwrap() error {
	return e.Kind
}

// MissingFields returns the field names carried by err, or nil.
func MissingFields(err error) []string {
	var fieldsErr *FieldsError
	if errors.As(err, &fieldsErr) {
		return fieldsErr.Fields
	}
	return nil
}
