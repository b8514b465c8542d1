// Package params holds parameter decorators that read the http request.
//
// Query and Body convert their input to the type of the handler argument
// they fill, before any pipe given at the use site runs:
//
//	rw.Post("/users", decorator.MustBind(func(u *User, notify bool) *User {
//		return u
//	}, params.Body(nil, pipes.NewValidationPipe()), params.Query("notify")))
package params

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/decorator"
	httpErrors "github.com/enorith/injectparam/errors"
)

var (
	ErrNoRequest = errors.New("params: execution context has no http request")

	inputValueType = reflect.TypeOf(contracts.InputValue(nil))
	bytesType      = reflect.TypeOf([]byte(nil))
	anyType        = reflect.TypeOf((*interface{})(nil)).Elem()
)

func request(ctx contracts.ExecutionContext) (contracts.RequestContract, error) {
	if r := ctx.SwitchToHttp().GetRequest(); r != nil {
		return r, nil
	}

	return nil, ErrNoRequest
}

func key(data interface{}) string {
	if s, ok := data.(string); ok {
		return s
	}
	return fmt.Sprint(data)
}

// Path reads the route parameter named by data.
var Path = decorator.CreateParamDecorator(func(data interface{}, ctx contracts.ExecutionContext) (interface{}, error) {
	r, err := request(ctx)
	if err != nil {
		return nil, err
	}

	return r.Param(key(data)), nil
})

// Query reads the input named by data from the query string, the form or a
// JSON body. A missing input leaves the argument at its zero value.
var Query = decorator.CreateParamDecorator(func(data interface{}, ctx contracts.ExecutionContext) (interface{}, error) {
	r, err := request(ctx)
	if err != nil {
		return nil, err
	}

	return r.GetValue(key(data)), nil
}, decorator.PrependPipes(contracts.PipeTransformFunc(convert)))

// Body decodes the JSON request body. With data, only the value at that
// dot separated path is decoded and a missing path yields the zero value.
var Body = decorator.CreateParamDecorator(func(data interface{}, ctx contracts.ExecutionContext) (interface{}, error) {
	r, err := request(ctx)
	if err != nil {
		return nil, err
	}
	if len(r.GetContent()) == 0 {
		return nil, httpErrors.BadRequest("request body is empty")
	}
	if data == nil {
		return r, nil
	}

	v, err := r.GetValue().GetValue(strings.Split(key(data), ".")...)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return contracts.InputValue(nil), nil
	}
	if err != nil {
		return nil, httpErrors.BadRequest(fmt.Sprintf("malformed body: %s", err))
	}

	return v, nil
}, decorator.PrependPipes(contracts.PipeTransformFunc(decode)))

func decode(value interface{}, metadata contracts.ArgumentMetadata) (interface{}, error) {
	if v, ok := value.(contracts.InputValue); ok {
		// a value found by path, scalars arrive unquoted
		return convert(v, metadata)
	}
	r, ok := value.(contracts.RequestContract)
	if !ok {
		return value, nil
	}

	v, err := decodeInto(metadata.Metatype, r.Unmarshal)
	if err != nil {
		return nil, httpErrors.BadRequest(fmt.Sprintf("malformed body: %s", err))
	}

	return v, nil
}

func convert(value interface{}, metadata contracts.ArgumentMetadata) (interface{}, error) {
	v, ok := value.(contracts.InputValue)
	if !ok || len(v) == 0 {
		return nil, nil
	}

	mt := metadata.Metatype
	switch {
	case mt == nil || mt == inputValueType:
		return v, nil
	case mt == bytesType:
		return []byte(v), nil
	case mt == anyType:
		return v.GetString(), nil
	}

	switch mt.Kind() {
	case reflect.String:
		return reflect.ValueOf(v.GetString()).Convert(mt).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := v.GetInt()
		if err != nil {
			return nil, httpErrors.BadRequest(fmt.Sprintf("attribute [%s] must be an integer", key(metadata.Data)))
		}
		return reflect.ValueOf(n).Convert(mt).Interface(), nil
	case reflect.Bool:
		b, err := v.GetBool()
		if err != nil {
			return nil, httpErrors.BadRequest(fmt.Sprintf("attribute [%s] must be a boolean", key(metadata.Data)))
		}
		return reflect.ValueOf(b).Convert(mt).Interface(), nil
	}

	out, err := decodeInto(mt, v.Unmarshal)
	if err != nil {
		return nil, httpErrors.BadRequest(fmt.Sprintf("attribute [%s] is malformed", key(metadata.Data)))
	}

	return out, nil
}

// decodeInto unmarshals into a new value of mt. Pointer types get a pointer
// to a fresh element.
func decodeInto(mt reflect.Type, unmarshal func(interface{}) error) (interface{}, error) {
	if mt == nil {
		mt = anyType
	}
	elem := mt
	if mt.Kind() == reflect.Ptr {
		elem = mt.Elem()
	}

	target := reflect.New(elem)
	if err := unmarshal(target.Interface()); err != nil {
		return nil, err
	}
	if mt.Kind() == reflect.Ptr {
		return target.Interface(), nil
	}

	return target.Elem().Interface(), nil
}
