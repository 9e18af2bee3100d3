package cohost

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedInput marks records that are not valid JSON or lack a required field.
var ErrMalformedInput = errors.New("malformed input")

var errMissing = errors.New("missing required field")

// DecodeError names the field of a record that failed to decode or validate.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed input: %v", e.Err)
	}
	return fmt.Sprintf("malformed input: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrMalformedInput, e.Err} }

func prefixField(prefix string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		field := prefix
		if de.Field != "" {
			field = prefix + "." + de.Field
		}
		return &DecodeError{Field: field, Err: de.Err}
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return &DecodeError{Field: prefix + "." + te.Field, Err: err}
	}
	return &DecodeError{Field: prefix, Err: err}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report JSON names so errors point into the record.
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
	})
	return validate
}

// DecodePost decodes and validates one post record.
func DecodePost(data []byte) (Post, error) {
	var p Post
	if err := json.Unmarshal(data, &p); err != nil {
		return Post{}, wrapJSONError(err)
	}
	if err := ValidatePost(p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// ValidatePost checks required fields across the post, its blocks and its share tree.
func ValidatePost(p Post) error {
	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Namespace()
		// Namespace starts with the root type name.
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		cause := errMissing
		if fe.Tag() != "required" {
			cause = fmt.Errorf("failed %q check", fe.Tag())
		}
		return &DecodeError{Field: field, Err: cause}
	}
	return &DecodeError{Err: err}
}

func wrapJSONError(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return &DecodeError{Field: te.Field, Err: fmt.Errorf("expected %s, got %s", te.Type, te.Value)}
	}
	return &DecodeError{Err: err}
}
