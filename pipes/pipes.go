// Package pipes holds reusable transforms for decorated parameters.
package pipes

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/enorith/injectparam/contracts"
	httpErrors "github.com/enorith/injectparam/errors"
	"github.com/go-playground/validator/v10"
)

// ValidationPipe validates struct values (or pointers to structs) with their
// `validate` tags. Other values pass through.
type ValidationPipe struct {
	validate *validator.Validate
}

func (v *ValidationPipe) Transform(value interface{}, metadata contracts.ArgumentMetadata) (interface{}, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return value, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return value, nil
	}

	if err := v.validate.Struct(value); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, httpErrors.UnprocessableEntity(
				fmt.Sprintf("attribute [%s] failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
		return nil, errors.Wrap(err, "pipes: validation")
	}

	return value, nil
}

func NewValidationPipe() *ValidationPipe {
	return &ValidationPipe{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ParseIntPipe converts string and []byte values to int64.
var ParseIntPipe = contracts.PipeTransformFunc(func(value interface{}, metadata contracts.ArgumentMetadata) (interface{}, error) {
	var s string
	switch t := value.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	case contracts.InputValue:
		s = string(t)
	default:
		return value, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, httpErrors.BadRequest(fmt.Sprintf("numeric string is expected, %q given", s))
	}

	return n, nil
})

// DefaultValuePipe replaces nil and empty values with def.
func DefaultValuePipe(def interface{}) contracts.PipeTransform {
	return contracts.PipeTransformFunc(func(value interface{}, metadata contracts.ArgumentMetadata) (interface{}, error) {
		if value == nil {
			return def, nil
		}
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Map:
			if rv.Len() == 0 {
				return def, nil
			}
		case reflect.Ptr, reflect.Interface:
			if rv.IsNil() {
				return def, nil
			}
		}

		return value, nil
	})
}
