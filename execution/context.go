// Package execution provides the transport-neutral execution context handed to
// decorated parameter factories.
package execution

import "github.com/enorith/injectparam/contracts"

type Context struct {
	kind    contracts.ContextType
	args    []interface{}
	handler interface{}
}

func (c *Context) GetType() contracts.ContextType {
	return c.kind
}

func (c *Context) GetArgs() []interface{} {
	return c.args
}

func (c *Context) GetArgByIndex(index int) interface{} {
	if index < 0 || index >= len(c.args) {
		return nil
	}

	return c.args[index]
}

func (c *Context) GetHandler() interface{} {
	return c.handler
}

func (c *Context) SwitchToHttp() contracts.HttpArgumentsHost {
	return httpHost{c}
}

type httpHost struct {
	c *Context
}

// GetRequest returns the first argument when it is a request, nil otherwise.
func (h httpHost) GetRequest() contracts.RequestContract {
	r, _ := h.c.GetArgByIndex(0).(contracts.RequestContract)
	return r
}

func (h httpHost) GetResponse() interface{} {
	return h.c.GetArgByIndex(1)
}

func New(kind contracts.ContextType, args []interface{}, handler interface{}) *Context {
	return &Context{kind: kind, args: args, handler: handler}
}

//NewHttp context of an http request
func NewHttp(r contracts.RequestContract, handler interface{}) *Context {
	return New(contracts.ContextHttp, []interface{}{r, nil}, handler)
}
