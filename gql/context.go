// Package gql adapts an execution context created for a GraphQL resolver.
//
// Resolver contexts carry the resolver arguments in order: root value,
// field arguments, the resolver context object and the resolve info.
package gql

import (
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/execution"
)

// Context is the per-operation object shared by every resolver. Req is only
// set when the server was configured to expose the transport request.
type Context struct {
	Req    contracts.RequestContract
	Values map[string]interface{}
}

type ResolveInfo struct {
	FieldName     string
	ParentType    string
	OperationName string
}

type ExecutionContext struct {
	ctx contracts.ExecutionContext
}

func (g *ExecutionContext) GetRoot() interface{} {
	return g.ctx.GetArgByIndex(0)
}

func (g *ExecutionContext) GetArgs() map[string]interface{} {
	args, _ := g.ctx.GetArgByIndex(1).(map[string]interface{})
	return args
}

// GetContext returns the resolver context object, or nil when absent.
func (g *ExecutionContext) GetContext() *Context {
	c, _ := g.ctx.GetArgByIndex(2).(*Context)
	return c
}

func (g *ExecutionContext) GetInfo() *ResolveInfo {
	info, _ := g.ctx.GetArgByIndex(3).(*ResolveInfo)
	return info
}

func (g *ExecutionContext) SwitchToHttp() contracts.HttpArgumentsHost {
	return g.ctx.SwitchToHttp()
}

func (g *ExecutionContext) GetType() contracts.ContextType {
	return g.ctx.GetType()
}

func Create(ctx contracts.ExecutionContext) *ExecutionContext {
	return &ExecutionContext{ctx: ctx}
}

func NewExecutionContext(root interface{}, args map[string]interface{}, c *Context, info *ResolveInfo) contracts.ExecutionContext {
	return execution.New(contracts.ContextGraphQL, []interface{}{root, args, c, info}, nil)
}
