package contracts

import "reflect"

// ContextType names the transport an execution context was created for.
type ContextType string

const (
	ContextHttp    ContextType = "http"
	ContextGraphQL ContextType = "graphql"
)

// HttpArgumentsHost exposes the http view of an execution context.
type HttpArgumentsHost interface {
	GetRequest() RequestContract
	GetResponse() interface{}
}

//ExecutionContext wraps an in-flight call across transport kinds
type ExecutionContext interface {
	GetType() ContextType
	GetArgs() []interface{}
	GetArgByIndex(index int) interface{}
	GetHandler() interface{}
	SwitchToHttp() HttpArgumentsHost
}

// ArgumentMetadata describes the handler argument a decorated parameter fills.
type ArgumentMetadata struct {
	// Type is "custom" for decorated parameters.
	Type string
	// Metatype is the declared type of the handler argument.
	Metatype reflect.Type
	// Data is the value passed to the decorator.
	Data  interface{}
	Index int
}

//PipeTransform transforms the value bound to a decorated parameter
type PipeTransform interface {
	Transform(value interface{}, metadata ArgumentMetadata) (interface{}, error)
}

// PipeTransformFunc adapts a function to PipeTransform.
type PipeTransformFunc func(value interface{}, metadata ArgumentMetadata) (interface{}, error)

func (f PipeTransformFunc) Transform(value interface{}, metadata ArgumentMetadata) (interface{}, error) {
	return f(value, metadata)
}
