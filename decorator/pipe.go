package decorator

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/enorith/container"
	"github.com/enorith/injectparam/contracts"
)

var (
	pipeType  = reflect.TypeOf((*contracts.PipeTransform)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// InstanceResolver returns an instance of abs, typically from the request
// container.
type InstanceResolver func(abs reflect.Type) (reflect.Value, error)

func FromContainer(c container.Interface) InstanceResolver {
	return func(abs reflect.Type) (reflect.Value, error) {
		return c.Instance(abs)
	}
}

// Instantiate returns pipe itself when it already is a PipeTransform.
// Otherwise pipe must be a constructor: its parameters are resolved through
// resolve and it must return a PipeTransform, optionally with an error.
// Resolution errors are returned as is.
func Instantiate(pipe interface{}, resolve InstanceResolver) (contracts.PipeTransform, error) {
	if p, ok := pipe.(contracts.PipeTransform); ok {
		return p, nil
	}

	ctor := reflect.ValueOf(pipe)
	if ctor.Kind() != reflect.Func {
		return nil, errors.Newf("decorator: pipe %T is neither a PipeTransform nor a constructor", pipe)
	}
	ct := ctor.Type()
	if ct.IsVariadic() || ct.NumOut() < 1 || ct.NumOut() > 2 || !ct.Out(0).Implements(pipeType) ||
		(ct.NumOut() == 2 && ct.Out(1) != errorType) {
		return nil, errors.Newf("decorator: invalid pipe constructor %s", ct)
	}

	args := make([]reflect.Value, ct.NumIn())
	for i := range args {
		v, err := resolve(ct.In(i))
		if err != nil {
			return nil, err
		}
		if args[i], err = assign(v, ct.In(i)); err != nil {
			return nil, err
		}
	}

	out := ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	p, _ := out[0].Interface().(contracts.PipeTransform)
	if p == nil {
		return nil, errors.Newf("decorator: pipe constructor %s returned nil", ct)
	}

	return p, nil
}

// assign makes v usable as an argument of type t.
func assign(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(t), nil
	}
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return assign(v.Elem(), t)
	}

	return reflect.Value{}, errors.Newf("decorator: %s is not assignable to %s", v.Type(), t)
}
