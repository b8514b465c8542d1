package server_test

import (
	"fmt"
	"net/http/httptest"
	"reflect"
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/enorith/container"
	"github.com/enorith/injectparam"
	"github.com/enorith/injectparam/content"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/decorator"
	httpErrors "github.com/enorith/injectparam/errors"
	"github.com/enorith/injectparam/params"
	"github.com/enorith/injectparam/pipes"
	"github.com/enorith/injectparam/server"
	"github.com/enorith/injectparam/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type UserService struct {
	Name string
}

type Signup struct {
	Name string `json:"name" validate:"required"`
}

var CurrentUser = injectparam.CreateWithInjections(
	func(data interface{}, ctx contracts.ExecutionContext, services injectparam.Services, extra injectparam.ExtraGetters) (interface{}, error) {
		users, ok := injectparam.Service[*UserService](services, "userSvc")
		if !ok {
			return nil, httpErrors.Unauthorized("no user service")
		}
		return map[string]interface{}{
			"data": data,
			"user": users.Name,
			"path": string(extra.Req().GetUri()),
		}, nil
	},
	injectparam.Dependencies{injectparam.Dep[*UserService]("userSvc")},
)

var Token = injectparam.Create(func(data interface{}, ctx contracts.ExecutionContext, _ injectparam.Services, _ injectparam.ExtraGetters) (interface{}, error) {
	token, err := ctx.SwitchToHttp().GetRequest().BearerToken()
	if err != nil {
		return nil, httpErrors.Unauthorized(err.Error())
	}
	return string(token), nil
})

func newKernel(users *UserService) *server.Kernel {
	k := server.NewKernel(func(request contracts.RequestContract) container.Interface {
		c := container.New()
		c.BindFunc(reflect.TypeOf(users), func(c container.Interface) (interface{}, error) {
			return users, nil
		}, true)
		return c
	}, false, nil)

	w := k.Wrapper()
	w.HandleGet("/hello", func(r contracts.RequestContract) contracts.ResponseContract {
		return content.TextResponse("ok", 200)
	})
	w.Get("/x", decorator.MustBind(func(v map[string]interface{}) map[string]interface{} {
		return v
	}, CurrentUser(nil)))
	w.Get("/token", decorator.MustBind(func(token string) string {
		return token
	}, Token(nil)))
	w.Post("/users", decorator.MustBind(func(s Signup) string {
		return "created " + s.Name
	}, params.Body(nil, pipes.NewValidationPipe())))
	w.Get("/search", decorator.MustBind(func(q string, page int) string {
		return fmt.Sprintf("%s:%d", q, page)
	}, params.Query("q"), params.Query("page")))
	w.Get("/session", func() (string, error) {
		return "", cerrors.Wrap(httpErrors.Unauthorized("expired"), "load session")
	})
	w.Get("/panic", func() string {
		panic("boom")
	})

	return k
}

func jsonRequest(method, path string) *tests.FakeRequest {
	r := tests.NewRequest(method, path)
	r.SetHeaderString("Accept", "application/json")
	return r
}

func BenchmarkKernel_Handle(b *testing.B) {
	k := newKernel(&UserService{Name: "bench"})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k.Handle(tests.NewRequest("GET", "/x"))
	}
}

func TestKernel_Handle(t *testing.T) {
	resp := newKernel(&UserService{}).Handle(tests.NewRequest("GET", "/hello"))

	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, "ok", string(resp.Content()))
}

func TestKernel_InjectedParameter(t *testing.T) {
	resp := newKernel(&UserService{Name: "U"}).Handle(jsonRequest("GET", "/x"))

	require.Equal(t, 200, resp.StatusCode())
	assert.JSONEq(t, `{"data":null,"user":"U","path":"/x"}`, string(resp.Content()))
}

func TestKernel_ParameterError(t *testing.T) {
	k := newKernel(&UserService{})

	resp := k.Handle(jsonRequest("GET", "/token"))
	assert.Equal(t, 401, resp.StatusCode())

	r := jsonRequest("GET", "/token")
	r.SetHeaderString("Authorization", "Bearer abc")
	resp = k.Handle(r)
	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, "abc", string(resp.Content()))
}

func TestKernel_DecodedBody(t *testing.T) {
	k := newKernel(&UserService{})

	resp := k.Handle(jsonRequest("POST", "/users").WithJson(`{"name":"ann"}`))
	require.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, "created ann", string(resp.Content()))

	resp = k.Handle(jsonRequest("POST", "/users").WithJson(`{"name":""}`))
	assert.Equal(t, 422, resp.StatusCode())
}

func TestKernel_WrappedStatusError(t *testing.T) {
	resp := newKernel(&UserService{}).Handle(jsonRequest("GET", "/session"))

	assert.Equal(t, 401, resp.StatusCode())
	assert.Contains(t, string(resp.Content()), "expired")
}

func TestKernel_NotFound(t *testing.T) {
	resp := newKernel(&UserService{}).Handle(jsonRequest("GET", "/missing"))

	assert.Equal(t, 404, resp.StatusCode())
}

func TestKernel_RecoversPanic(t *testing.T) {
	resp := newKernel(&UserService{}).Handle(jsonRequest("GET", "/panic"))

	assert.Equal(t, 500, resp.StatusCode())
	assert.Contains(t, string(resp.Content()), "boom")
}

func TestKernel_MiddlewareGroup(t *testing.T) {
	k := newKernel(&UserService{})
	k.SetMiddlewareGroup(map[string][]server.RequestMiddleware{
		"deny": {server.PipeFunc(func(r contracts.RequestContract, next server.PipeHandler) contracts.ResponseContract {
			return content.TextResponse("denied", 403)
		})},
	})
	k.Wrapper().Get("/admin", func() string { return "admin" }).Middleware("deny")

	resp := k.Handle(tests.NewRequest("GET", "/admin"))
	assert.Equal(t, 403, resp.StatusCode())
	assert.Equal(t, "denied", string(resp.Content()))
}

func TestKernel_RequestID(t *testing.T) {
	k := newKernel(&UserService{})
	k.Use(server.RequestID)

	resp := k.Handle(tests.NewRequest("GET", "/hello"))
	assert.NotEmpty(t, resp.Headers()[server.RequestIDHeader])

	r := tests.NewRequest("GET", "/hello")
	r.SetHeaderString(server.RequestIDHeader, "fixed")
	resp = k.Handle(r)
	assert.Equal(t, "fixed", resp.Headers()[server.RequestIDHeader])
}

func TestKernel_ServeHTTP(t *testing.T) {
	k := newKernel(&UserService{Name: "net"})
	rec := httptest.NewRecorder()

	k.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, content.ContentTypeJson, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":null,"user":"net","path":"/x"}`, rec.Body.String())
}

func TestKernel_QueryOverTransports(t *testing.T) {
	k := newKernel(&UserService{})

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest("GET", "/search?q=net&page=2", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "net:2", rec.Body.String())

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/search?q=fast&page=3")
	k.FastHttpHandler(&ctx)
	assert.Equal(t, 200, ctx.Response.StatusCode())
	assert.Equal(t, "fast:3", string(ctx.Response.Body()))
}

func TestMiddlewareChain(t *testing.T) {
	var order []string
	mark := func(name string) server.RequestMiddleware {
		return server.PipeFunc(func(r contracts.RequestContract, next server.PipeHandler) contracts.ResponseContract {
			order = append(order, name)
			return next(r)
		})
	}

	k := newKernel(&UserService{})
	k.Use(server.MiddlewareChain(mark("a"), mark("b"))).Use(mark("c"))
	k.Handle(tests.NewRequest("GET", "/hello"))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}
