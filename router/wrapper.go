package router

import (
	stdJson "encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/enorith/container"
	"github.com/enorith/injectparam/content"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/decorator"
	"github.com/enorith/injectparam/execution"
)

type ContainerRegister func(request contracts.RequestContract) container.Interface

type Handler interface {
	HandleRoute(r contracts.RequestContract) contracts.ResponseContract
}

//ResultHandler handle return result
type ResultHandler func(val []reflect.Value, err error) contracts.ResponseContract

type GroupHandler func(r *Wrapper)

type RequestResolver interface {
	ResolveRequest(r contracts.RequestContract, runtime container.Interface)
}

var DefaultResultHandler = func(val []reflect.Value, err error) contracts.ResponseContract {
	if err != nil {
		return content.ErrResponseFromError(err, 500, nil)
	}

	if len(val) < 1 {
		return content.TextResponse("", 200)
	}

	if len(val) > 1 {
		e := val[len(val)-1].Interface()
		if er, isErr := e.(error); isErr && er != nil { // assume last return value is an error
			return content.ErrResponseFromError(er, 500, nil)
		}
	}

	return convertResponse(val[0].Interface())
}

type Wrapper struct {
	*router
	ResultHandler     ResultHandler
	containerRegister ContainerRegister
	requestResolver   RequestResolver
	recorded          *[]*paramRoute
}

//RegisterAction register route with giving handler
// 	'handler' can be RouteHandler, Handler, http.Handler, *decorator.Handler
// 	or any func, whose arguments are resolved by the request container
func (w *Wrapper) RegisterAction(method int, path string, handler interface{}) *routesHolder {
	routeHandler, e := w.wrap(handler)
	if e != nil {
		routeHandler = func(r contracts.RequestContract) contracts.ResponseContract {
			return content.ErrResponseFromError(fmt.Errorf("invalid route handler of [%s] %s: %w",
				r.GetMethod(), r.GetPathBytes(), e), 500, nil)
		}
	}

	holder := w.Register(method, path, routeHandler)
	if w.recorded != nil {
		*w.recorded = append(*w.recorded, holder.routes...)
	}

	return holder
}

func (w *Wrapper) Get(path string, handler interface{}) *routesHolder {
	return w.RegisterAction(GET, path, handler)
}

func (w *Wrapper) Post(path string, handler interface{}) *routesHolder {
	return w.RegisterAction(POST, path, handler)
}

func (w *Wrapper) Patch(path string, handler interface{}) *routesHolder {
	return w.RegisterAction(PATCH, path, handler)
}

func (w *Wrapper) Put(path string, handler interface{}) *routesHolder {
	return w.RegisterAction(PUT, path, handler)
}

func (w *Wrapper) Delete(path string, handler interface{}) *routesHolder {
	return w.RegisterAction(DELETE, path, handler)
}

//Group register routes under prefix, with shared middleware
func (w *Wrapper) Group(g GroupHandler, prefix string, middleware ...string) *routesHolder {
	var rs []*paramRoute
	tr := &Wrapper{
		router: &router{
			table:  w.table,
			prefix: w.prefix + prefix,
		},
		ResultHandler:     w.ResultHandler,
		containerRegister: w.containerRegister,
		requestResolver:   w.requestResolver,
		recorded:          &rs,
	}

	g(tr)

	holder := &routesHolder{routes: rs}
	holder.Middleware(middleware...)
	if w.recorded != nil {
		*w.recorded = append(*w.recorded, rs...)
	}

	return holder
}

func (w *Wrapper) ResolveRequest(rs RequestResolver) {
	w.requestResolver = rs
}

func (w *Wrapper) wrap(handler interface{}) (RouteHandler, error) {
	if handler == nil {
		return nil, fmt.Errorf("router: nil handler")
	}

	switch t := handler.(type) {
	case Handler:
		return t.HandleRoute, nil
	case RouteHandler:
		return t, nil
	case func(r contracts.RequestContract) contracts.ResponseContract:
		return t, nil
	case http.Handler:
		return NewRouteHandlerFromHttp(t), nil
	case *decorator.Handler:
		return w.dispatch(t), nil
	}

	if reflect.TypeOf(handler).Kind() == reflect.Func {
		h, err := decorator.Bind(handler)
		if err != nil {
			return nil, err
		}
		return w.dispatch(h), nil
	}

	return nil, fmt.Errorf("router: handler expect func, %T giving", handler)
}

// dispatch calls h with the request container and an http execution context.
func (w *Wrapper) dispatch(h *decorator.Handler) RouteHandler {
	return func(req contracts.RequestContract) contracts.ResponseContract {
		runtime := w.getContainer(req)
		val, err := h.Call(execution.NewHttp(req, h.Func()), decorator.FromContainer(runtime))

		return w.handleResult(val, err)
	}
}

func (w *Wrapper) handleResult(val []reflect.Value, err error) contracts.ResponseContract {
	if w.ResultHandler == nil {
		return DefaultResultHandler(val, err)
	}

	return w.ResultHandler(val, err)
}

func (w *Wrapper) getContainer(req contracts.RequestContract) container.Interface {
	c := w.containerRegister(req)
	w.requestResolver.ResolveRequest(req, c)

	return c
}

func NewRouteHandlerFromHttp(h http.Handler) RouteHandler {
	return func(req contracts.RequestContract) contracts.ResponseContract {
		if request, ok := req.(*content.NetHttpRequest); ok {
			h.ServeHTTP(request.OriginWriter(), request.Origin())
			return content.NewHandledResponse()
		}

		return content.ErrResponseFromError(fmt.Errorf("http.Handler requires a net/http request, %T given", req), 500, nil)
	}
}

func convertResponse(data interface{}) contracts.ResponseContract {
	switch t := data.(type) {
	case nil:
		return content.TextResponse("", 200)
	case error:
		return content.ErrResponseFromError(t, 500, nil)
	case string:
		return content.TextResponse(t, 200)
	case []byte:
		return content.NewResponse(t, map[string]string{}, 200)
	case contracts.ResponseContract:
		return t
	case stdJson.Marshaler:
		return content.JsonResponse(t, 200, nil)
	case fmt.Stringer:
		return content.TextResponse(t.String(), 200)
	}

	// fallback to json
	return content.JsonResponse(data, 200, nil)
}

func NewWrapper(cr ContainerRegister, ps ...string) *Wrapper {
	var prefix string
	if len(ps) > 0 {
		prefix = ps[0]
	}
	r := &router{
		table: &routeTable{
			routes: func() map[string][]*paramRoute {
				rs := map[string][]*paramRoute{}
				for _, v := range methodMap {
					rs[v] = []*paramRoute{}
				}

				return rs
			}(),
		},
		prefix: prefix,
	}

	return &Wrapper{router: r, containerRegister: cr, requestResolver: defaultRequestResolver{}}
}

type defaultRequestResolver struct {
}

func (d defaultRequestResolver) ResolveRequest(r contracts.RequestContract, runtime container.Interface) {
	runtime.Singleton(requestType, r)
}

var requestType = reflect.TypeOf((*contracts.RequestContract)(nil)).Elem()
