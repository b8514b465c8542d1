package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/enorith/exception"
	"github.com/enorith/injectparam/content"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/errors"
	"github.com/enorith/injectparam/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const Version = "v0.1.0"

type Kernel struct {
	wrapper         *router.Wrapper
	middleware      []RequestMiddleware
	middlewareGroup map[string][]RequestMiddleware
	errorHandler    errors.ErrorHandler
	logger          *zap.Logger
	tcpKeepAlive    bool
	OutputLog       bool
}

func (k *Kernel) Wrapper() *router.Wrapper {
	return k.wrapper
}

func (k *Kernel) handleFunc(f func() (request contracts.RequestContract, code int)) {
	start := time.Now()
	request, code := f()

	if k.OutputLog && request != nil {
		k.logger.Info("request",
			zap.String("ip", request.GetClientIp()),
			zap.String("method", request.GetMethod()),
			zap.ByteString("uri", request.GetUri()),
			zap.Int("status", code),
			zap.String("request_id", request.HeaderString(RequestIDHeader)),
			zap.Duration("latency", time.Since(start)))
	}
}

func (k *Kernel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	k.handleFunc(func() (request contracts.RequestContract, code int) {
		request = content.NewNetHttpRequest(r, w)
		resp := k.Handle(request)
		if resp == nil {
			return request, 0
		}

		if k.tcpKeepAlive {
			resp.SetHeader("Connection", "keep-alive")
		}
		resp.SetHeader("Server", fmt.Sprintf("enorith/%s (net/http)", Version))

		code = resp.StatusCode()
		if resp.Handled() {
			return
		}
		for k, v := range resp.Headers() {
			w.Header().Set(k, v)
		}
		// call after set headers, before write body
		w.WriteHeader(code)
		if wp, ok := resp.(io.WriterTo); ok {
			wp.WriteTo(w)
		} else {
			w.Write(resp.Content())
		}

		return
	})
}

func (k *Kernel) FastHttpHandler(ctx *fasthttp.RequestCtx) {
	k.handleFunc(func() (request contracts.RequestContract, code int) {
		request = content.NewFastHttpRequest(ctx)
		resp := k.Handle(request)
		if resp == nil {
			return request, 0
		}

		if k.tcpKeepAlive {
			resp.SetHeader("Connection", "keep-alive")
		}

		ctx.Response.SetStatusCode(resp.StatusCode())
		for k, v := range resp.Headers() {
			ctx.Response.Header.Set(k, v)
		}
		ctx.Response.Header.Set("Server", fmt.Sprintf("enorith/%s (fasthttp)", Version))
		if wp, ok := resp.(io.WriterTo); ok {
			wp.WriteTo(ctx)
		} else {
			ctx.Response.SetBody(resp.Content())
		}

		return request, resp.StatusCode()
	})
}

func (k *Kernel) SetMiddlewareGroup(middlewareGroup map[string][]RequestMiddleware) {
	k.middlewareGroup = middlewareGroup
}

func (k *Kernel) Use(m RequestMiddleware) *Kernel {
	k.middleware = append(k.middleware, m)
	return k
}

func (k *Kernel) KeepAlive(b ...bool) *Kernel {
	if len(b) > 0 {
		k.tcpKeepAlive = b[0]
	} else {
		k.tcpKeepAlive = true
	}
	return k
}

func (k *Kernel) IsKeepAlive() bool {
	return k.tcpKeepAlive
}

func (k *Kernel) SetErrorHandler(handler errors.ErrorHandler) {
	k.errorHandler = handler
}

func (k *Kernel) Handle(r contracts.RequestContract) (resp contracts.ResponseContract) {
	defer func() {
		if x := recover(); x != nil {
			resp = k.errorHandler.HandleError(x, r, true)
		}
	}()

	resp = k.SendRequestToRouter(r)

	if t, ok := resp.(*content.ErrorResponse); ok && t.E() != nil {
		// keep the status the route decided on
		resp = k.errorHandler.HandleError(t.E(), r, false).SetStatusCode(t.StatusCode())
	}

	if t, ok := resp.(exception.Exception); ok {
		resp = k.errorHandler.HandleError(t, r, false)
	}

	return resp
}

func (k *Kernel) SendRequestToRouter(r contracts.RequestContract) contracts.ResponseContract {
	pipe := new(Pipeline)
	pipe.Send(r)
	for _, m := range k.middleware {
		pipe.Through(m)
	}
	p := k.wrapper.Match(r)
	if !p.IsValid() {
		return pipe.Then(func(r contracts.RequestContract) contracts.ResponseContract {
			return content.NotFoundResponse("not found")
		})
	}
	for _, v := range p.Middleware() {
		for _, md := range k.middlewareGroup[v] {
			pipe.Through(md)
		}
	}

	return pipe.Then(func(r contracts.RequestContract) contracts.ResponseContract {
		return p.Handler()(r)
	})
}

func NewKernel(cr router.ContainerRegister, debug bool, logger *zap.Logger) *Kernel {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := new(Kernel)
	k.wrapper = router.NewWrapper(cr)
	k.wrapper.ResolveRequest(KernelRequestResolver{})
	k.errorHandler = &errors.StandardErrorHandler{
		Debug:  debug,
		Logger: logger,
	}
	k.logger = logger
	k.middleware = []RequestMiddleware{}
	k.middlewareGroup = make(map[string][]RequestMiddleware)
	return k
}
