package injectparam

import (
	"reflect"

	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/gql"
)

// Dependency requests an instance of Type, exposed to the handler as Name.
type Dependency struct {
	Name string
	Type reflect.Type
}

func Dep[T any](name string) Dependency {
	return Dependency{Name: name, Type: reflect.TypeFor[T]()}
}

// Dependencies is ordered: the order is both the constructor parameter order
// and the order used to pair resolved instances with names.
type Dependencies []Dependency

func (d Dependencies) names() []string {
	names := make([]string, len(d))
	for i, dep := range d {
		names[i] = dep.Name
	}
	return names
}

func (d Dependencies) types() []reflect.Type {
	types := make([]reflect.Type, len(d))
	for i, dep := range d {
		types[i] = dep.Type
	}
	return types
}

// Services maps dependency names to the instances resolved for them.
type Services map[string]interface{}

// Service returns the instance registered under name, if it has type T.
func Service[T any](s Services, name string) (T, bool) {
	v, ok := s[name].(T)
	return v, ok
}

// ExtraGetters carries the metadata of the parameter being filled and a lazy
// view of the transport request.
type ExtraGetters struct {
	Metadata contracts.ArgumentMetadata

	ctx contracts.ExecutionContext
}

// Req returns the request behind the execution context. GraphQL contexts
// prefer the request held by the resolver context and fall back to the http
// view. A nil pointer stored as a request counts as absent. It returns nil
// rather than failing when no request is reachable.
func (e ExtraGetters) Req() contracts.RequestContract {
	if e.ctx == nil {
		return nil
	}

	if e.ctx.GetType() == contracts.ContextGraphQL {
		g := gql.Create(e.ctx)
		if c := g.GetContext(); c != nil && present(c.Req) {
			return c.Req
		}
		return orNil(g.SwitchToHttp().GetRequest())
	}

	return orNil(e.ctx.SwitchToHttp().GetRequest())
}

func present(r contracts.RequestContract) bool {
	if r == nil {
		return false
	}
	switch v := reflect.ValueOf(r); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !v.IsNil()
	}

	return true
}

func orNil(r contracts.RequestContract) contracts.RequestContract {
	if present(r) {
		return r
	}

	return nil
}
