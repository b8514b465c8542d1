// Package decorator binds computed values to handler arguments.
//
// A ParamDecorator is created once from a CustomParamFactory. Calling it with
// per-use data and pipes yields a Param, and Bind attaches Params to the
// leading arguments of a handler. On every call the factory computes a raw
// value from the execution context, then each pipe transforms it in order.
//
//	var Header = decorator.CreateParamDecorator(func(data interface{}, ctx contracts.ExecutionContext) (interface{}, error) {
//		return ctx.SwitchToHttp().GetRequest().HeaderString(data.(string)), nil
//	})
//
//	h, err := decorator.Bind(func(agent string) string { return agent }, Header("User-Agent"))
package decorator

import (
	"github.com/enorith/injectparam/contracts"
)

// ParamTypeCustom is the ArgumentMetadata type of decorated parameters.
const ParamTypeCustom = "custom"

// CustomParamFactory computes the raw value of a decorated parameter.
type CustomParamFactory func(data interface{}, ctx contracts.ExecutionContext) (interface{}, error)

// Definition is the per-argument description of a bound Param. Enhancers
// receive it once, when the Param is bound.
type Definition struct {
	Name     string
	Data     interface{}
	Pipes    []interface{}
	Metadata contracts.ArgumentMetadata
}

type Enhancer func(def *Definition)

// Named labels the parameter in binding errors.
func Named(name string) Enhancer {
	return func(def *Definition) {
		def.Name = name
	}
}

// WithPipes appends pipes after the ones given at the use site.
func WithPipes(pipes ...interface{}) Enhancer {
	return func(def *Definition) {
		def.Pipes = append(def.Pipes, pipes...)
	}
}

// PrependPipes runs pipes before the ones given at the use site.
func PrependPipes(pipes ...interface{}) Enhancer {
	return func(def *Definition) {
		def.Pipes = append(append([]interface{}{}, pipes...), def.Pipes...)
	}
}

// ParamDecorator turns per-use data and pipes into a Param.
type ParamDecorator func(data interface{}, pipes ...interface{}) *Param

type Param struct {
	factory   CustomParamFactory
	data      interface{}
	pipes     []interface{}
	enhancers []Enhancer
}

func (p *Param) Data() interface{} {
	return p.data
}

func (p *Param) Pipes() []interface{} {
	return append([]interface{}(nil), p.pipes...)
}

// Definition builds the argument description for metadata, running the
// decorator's enhancers in order.
func (p *Param) Definition(metadata contracts.ArgumentMetadata) Definition {
	metadata.Type = ParamTypeCustom
	metadata.Data = p.data
	def := Definition{
		Data:     p.data,
		Pipes:    p.Pipes(),
		Metadata: metadata,
	}
	for _, enhance := range p.enhancers {
		enhance(&def)
	}

	return def
}

// Resolve computes the parameter value for a single argument.
func (p *Param) Resolve(ctx contracts.ExecutionContext, resolve InstanceResolver, metadata contracts.ArgumentMetadata) (interface{}, error) {
	return resolveDefinition(p.factory, p.Definition(metadata), ctx, resolve)
}

func resolveDefinition(factory CustomParamFactory, def Definition, ctx contracts.ExecutionContext, resolve InstanceResolver) (interface{}, error) {
	value, err := factory(def.Data, ctx)
	if err != nil {
		return nil, err
	}

	for _, pipe := range def.Pipes {
		p, err := Instantiate(pipe, resolve)
		if err != nil {
			return nil, err
		}
		value, err = p.Transform(value, def.Metadata)
		if err != nil {
			return nil, err
		}
	}

	return value, nil
}

//CreateParamDecorator create a parameter decorator from factory
func CreateParamDecorator(factory CustomParamFactory, enhancers ...Enhancer) ParamDecorator {
	return func(data interface{}, pipes ...interface{}) *Param {
		return &Param{
			factory:   factory,
			data:      data,
			pipes:     pipes,
			enhancers: enhancers,
		}
	}
}
