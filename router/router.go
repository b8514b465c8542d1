package router

import (
	"strings"
	"sync"

	"github.com/enorith/injectparam/contracts"
)

const (
	GET     = 1
	HEAD    = 1 << 1
	POST    = 1 << 2
	PUT     = 1 << 3
	PATCH   = 1 << 4
	DELETE  = 1 << 5
	OPTIONS = 1 << 6
	ANY     = GET | HEAD | POST | PUT | PATCH | DELETE | OPTIONS
)

var methodMap = map[int]string{
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	PATCH:   "PATCH",
	DELETE:  "DELETE",
	OPTIONS: "OPTIONS",
}

//RouteHandler normal route handler
type RouteHandler func(r contracts.RequestContract) contracts.ResponseContract

type partial struct {
	segment string
	isParam bool
}

type paramRoute struct {
	path       string
	partials   []partial
	handler    RouteHandler
	middleware []string
	isValid    bool
}

func (p *paramRoute) SetMiddleware(middleware []string) {
	p.middleware = middleware
}

func (p *paramRoute) Middleware() []string {
	return p.middleware
}

func (p *paramRoute) IsValid() bool {
	return p.isValid
}

//Handler route handler
func (p *paramRoute) Handler() RouteHandler {
	return p.handler
}

//Path path
func (p *paramRoute) Path() string {
	return p.path
}

type routesHolder struct {
	routes []*paramRoute
}

func (rh *routesHolder) Middleware(middleware ...string) *routesHolder {
	for _, v := range rh.routes {
		v.SetMiddleware(middleware)
	}
	return rh
}

type routeTable struct {
	mu     sync.RWMutex
	routes map[string][]*paramRoute
}

// router registers into a table shared with its groups
type router struct {
	table  *routeTable
	prefix string
}

//Register register route
func (r *router) Register(method int, path string, handler RouteHandler) *routesHolder {
	var routes []*paramRoute
	for i := GET; i <= OPTIONS; i <<= 1 {
		if m, ok := methodMap[i]; i&method > 0 && ok {
			routes = append(routes, r.addRoute(m, path, handler))
		}
	}

	return &routesHolder{
		routes,
	}
}

//HandleGet get method with route handler
func (r *router) HandleGet(path string, handler RouteHandler) *routesHolder {
	return r.Register(GET, path, handler)
}

func (r *router) HandlePost(path string, handler RouteHandler) *routesHolder {
	return r.Register(POST, path, handler)
}

func (r *router) addRoute(method string, path string, handler RouteHandler) *paramRoute {
	path = normalPath(r.prefix + path)
	route := &paramRoute{
		path:     path,
		partials: resolvePartials(path),
		handler:  handler,
		isValid:  true,
	}

	r.table.mu.Lock()
	r.table.routes[method] = append(r.table.routes[method], route)
	r.table.mu.Unlock()

	return route
}

func resolvePartials(path string) []partial {
	var partials []partial
	for _, v := range strings.Split(path, "/") {
		partials = append(partials, partial{
			segment: strings.TrimPrefix(v, ":"),
			isParam: strings.HasPrefix(v, ":"),
		})
	}
	return partials
}

//Match find the route of request, static routes win over parameter routes
func (r *router) Match(request contracts.RequestContract) *paramRoute {
	sp := normalPath(string(request.GetPathBytes()))
	segments := strings.Split(sp, "/")

	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	routes := r.table.routes[request.GetMethod()]
	for _, route := range routes {
		if route.path == sp {
			return route
		}
	}

	for _, route := range routes {
		if len(route.partials) != len(segments) {
			continue
		}
		params := map[string][]byte{}
		matched := true
		for index, part := range segments {
			pa := route.partials[index]
			if pa.isParam {
				params[pa.segment] = []byte(part)
			} else if pa.segment != part {
				matched = false
				break
			}
		}
		if matched {
			request.SetParams(params)
			return route
		}
	}

	return &paramRoute{}
}

// trim last "/"
func normalPath(path string) string {
	if l := len(path); l > 1 && path[l-1] == '/' {
		return path[:l-1]
	}
	if path == "" {
		return "/"
	}

	return path
}
