package injectparam

import (
	"reflect"

	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/decorator"
	"github.com/enorith/injectparam/internal/bound"
)

var pipeTransformType = reflect.TypeOf((*contracts.PipeTransform)(nil)).Elem()

// HandlerFn computes the value of a decorated parameter. data is the value
// given to the decorator at the use site.
type HandlerFn func(data interface{}, ctx contracts.ExecutionContext, services Services, extra ExtraGetters) (interface{}, error)

// carrier travels from the decorator factory to the injection pipe.
type carrier struct {
	fn   HandlerFn
	data interface{}
	ctx  contracts.ExecutionContext
}

// injectionPipe receives the dependency instances through its constructor
// and keeps them in the bound table.
type injectionPipe struct {
	names []string
}

func (p *injectionPipe) Transform(value interface{}, metadata contracts.ArgumentMetadata) (interface{}, error) {
	c, ok := value.(carrier)
	if !ok {
		return value, nil
	}

	parameters := bound.Get(p)
	services := make(Services, len(parameters))
	for i, s := range parameters {
		if i < len(p.names) {
			services[p.names[i]] = s
		}
	}

	return c.fn(c.data, c.ctx, services, ExtraGetters{Metadata: metadata, ctx: c.ctx})
}

// newPipeConstructor returns a func(deps[0].Type, deps[1].Type, ...) contracts.PipeTransform.
func newPipeConstructor(deps Dependencies) interface{} {
	names := deps.names()
	ft := reflect.FuncOf(deps.types(), []reflect.Type{pipeTransformType}, false)

	return reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		p := &injectionPipe{names: names}
		values := make([]interface{}, len(args))
		for i, arg := range args {
			values[i] = arg.Interface()
		}
		bound.Set(p, values)

		var pipe contracts.PipeTransform = p
		return []reflect.Value{reflect.ValueOf(&pipe).Elem()}
	}).Interface()
}

// Create is decorator.CreateParamDecorator for a HandlerFn. The function
// receives nil services and zero extra getters.
func Create(fn HandlerFn, enhancers ...decorator.Enhancer) decorator.ParamDecorator {
	return decorator.CreateParamDecorator(func(data interface{}, ctx contracts.ExecutionContext) (interface{}, error) {
		return fn(data, ctx, nil, ExtraGetters{})
	}, enhancers...)
}

// CreateWithInjections defines a parameter decorator whose function receives
// instances of deps. A nil deps is the same as Create.
//
// Each use of the decorator runs a pipe built by the container with deps
// injected, ahead of the pipes given at the use site. Instances are paired
// with names by position; names without an instance are left out of Services.
// Errors from the container or from fn are returned unchanged.
func CreateWithInjections(fn HandlerFn, deps Dependencies, enhancers ...decorator.Enhancer) decorator.ParamDecorator {
	if deps == nil {
		return Create(fn, enhancers...)
	}

	ctor := newPipeConstructor(deps)
	plain := decorator.CreateParamDecorator(func(data interface{}, ctx contracts.ExecutionContext) (interface{}, error) {
		return carrier{fn: fn, data: data, ctx: ctx}, nil
	}, enhancers...)

	return func(data interface{}, pipes ...interface{}) *decorator.Param {
		return plain(data, append([]interface{}{ctor}, pipes...)...)
	}
}
