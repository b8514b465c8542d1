package server

import "github.com/enorith/injectparam/contracts"

//PipeHandler destination handler
type PipeHandler func(r contracts.RequestContract) contracts.ResponseContract

//PipeFunc request middleware function
type PipeFunc func(r contracts.RequestContract, next PipeHandler) contracts.ResponseContract

//RequestMiddleware request middleware
type RequestMiddleware interface {
	Handle(r contracts.RequestContract, next PipeHandler) contracts.ResponseContract
}

func (f PipeFunc) Handle(r contracts.RequestContract, next PipeHandler) contracts.ResponseContract {
	return f(r, next)
}

type MiddlewareGroup map[string][]RequestMiddleware

//Pipeline is request pipeline prepare for request middleware
type Pipeline struct {
	pipes []RequestMiddleware
	r     contracts.RequestContract
}

//Send request to pipeline
func (p *Pipeline) Send(r contracts.RequestContract) *Pipeline {
	p.r = r
	return p
}

//Through middleware
func (p *Pipeline) Through(pipe RequestMiddleware) *Pipeline {
	p.pipes = append(p.pipes, pipe)
	return p
}

//Then final destination
func (p *Pipeline) Then(handler PipeHandler) contracts.ResponseContract {
	return p.prepareNext(0, handler)(p.r)
}

func (p *Pipeline) prepareNext(now int, handler PipeHandler) PipeHandler {
	if now >= len(p.pipes) {
		return handler
	}

	return func(r contracts.RequestContract) contracts.ResponseContract {
		return p.pipes[now].Handle(r, p.prepareNext(now+1, handler))
	}
}

type middlewareChain []RequestMiddleware

func (mc middlewareChain) Handle(r contracts.RequestContract, next PipeHandler) contracts.ResponseContract {
	pipe := new(Pipeline)

	pipe.Send(r)
	for _, m := range mc {
		pipe.Through(m)
	}
	return pipe.Then(next)
}

func MiddlewareChain(mid ...RequestMiddleware) RequestMiddleware {
	return middlewareChain(mid)
}
