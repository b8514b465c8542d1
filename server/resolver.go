package server

import (
	"context"
	"reflect"

	"github.com/enorith/container"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/execution"
)

var (
	contextType          = reflect.TypeOf((*context.Context)(nil)).Elem()
	requestType          = reflect.TypeOf((*contracts.RequestContract)(nil)).Elem()
	executionContextType = reflect.TypeOf((*contracts.ExecutionContext)(nil)).Elem()
)

//KernelRequestResolver binds the request, its context and an http execution
//context into the request container
type KernelRequestResolver struct {
}

func (rr KernelRequestResolver) ResolveRequest(r contracts.RequestContract, runtime container.Interface) {
	runtime.Singleton(requestType, r)

	runtime.BindFunc(contextType, func(c container.Interface) (interface{}, error) {
		return r.Context(), nil
	}, true)

	runtime.BindFunc(executionContextType, func(c container.Interface) (interface{}, error) {
		return execution.NewHttp(r, nil), nil
	}, true)
}
