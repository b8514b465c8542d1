package content

import (
	"context"

	. "github.com/enorith/injectparam/contracts"
	"github.com/valyala/fasthttp"
)

// FastHttpRequest adapts a fasthttp request context. It is only valid while
// the handler for ctx runs.
type FastHttpRequest struct {
	SimpleParamRequest
	origin *fasthttp.RequestCtx
}

func (r *FastHttpRequest) Context() context.Context {
	return r.origin
}

func (r *FastHttpRequest) GetMethod() string {
	return string(r.origin.Method())
}

func (r *FastHttpRequest) GetPathBytes() []byte {
	return r.origin.Path()
}

func (r *FastHttpRequest) GetUri() []byte {
	return r.origin.RequestURI()
}

func (r *FastHttpRequest) ExceptsJson() bool {
	return expectsJson(r.Header("Accept"))
}

func (r *FastHttpRequest) RequestWithJson() bool {
	return withJson(r.Header("Content-Type"))
}

func (r *FastHttpRequest) GetClientIp() string {
	return r.origin.RemoteIP().String()
}

// Get looks key up in the query string, then post args, then a JSON body.
func (r *FastHttpRequest) Get(key string) []byte {
	for _, args := range []*fasthttp.Args{r.origin.QueryArgs(), r.origin.PostArgs()} {
		if args.Has(key) {
			return args.Peek(key)
		}
	}

	return GetJsonValue(r, key)
}

func (r *FastHttpRequest) GetValue(key ...string) InputValue {
	return inputValue(r, key)
}

func (r *FastHttpRequest) GetContent() []byte {
	return r.origin.Request.Body()
}

func (r *FastHttpRequest) Unmarshal(to interface{}) error {
	return json.Unmarshal(r.GetContent(), to)
}

func (r *FastHttpRequest) Header(key string) []byte {
	return r.origin.Request.Header.Peek(key)
}

func (r *FastHttpRequest) HeaderString(key string) string {
	return string(r.Header(key))
}

func (r *FastHttpRequest) SetHeaderString(key, value string) RequestContract {
	r.origin.Request.Header.Set(key, value)

	return r
}

func (r *FastHttpRequest) BearerToken() ([]byte, error) {
	return bearerToken(r.Header("Authorization"))
}

func NewFastHttpRequest(origin *fasthttp.RequestCtx) *FastHttpRequest {
	return &FastHttpRequest{origin: origin}
}
