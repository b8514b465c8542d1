package content

import (
	"context"
	"io"
	"net"
	"net/http"

	. "github.com/enorith/injectparam/contracts"
)

// NetHttpRequest adapts a net/http request. The body is read once and kept.
type NetHttpRequest struct {
	SimpleParamRequest
	origin       *http.Request
	originWriter http.ResponseWriter
	body         []byte
}

func (n *NetHttpRequest) Context() context.Context {
	return n.origin.Context()
}

func (n *NetHttpRequest) OriginWriter() http.ResponseWriter {
	return n.originWriter
}

func (n *NetHttpRequest) Origin() *http.Request {
	return n.origin
}

func (n *NetHttpRequest) ExceptsJson() bool {
	return expectsJson(n.Header("Accept"))
}

func (n *NetHttpRequest) RequestWithJson() bool {
	return withJson(n.Header("Content-Type"))
}

func (n *NetHttpRequest) GetMethod() string {
	return n.origin.Method
}

func (n *NetHttpRequest) GetPathBytes() []byte {
	return []byte(n.origin.URL.Path)
}

func (n *NetHttpRequest) GetUri() []byte {
	return []byte(n.origin.RequestURI)
}

// Get looks key up in the query string, then the parsed form, then a JSON body.
func (n *NetHttpRequest) Get(key string) []byte {
	if q := n.origin.URL.Query(); q.Has(key) {
		return []byte(q.Get(key))
	}
	if n.origin.Form.Has(key) {
		return []byte(n.origin.Form.Get(key))
	}

	return GetJsonValue(n, key)
}

func (n *NetHttpRequest) GetValue(key ...string) InputValue {
	return inputValue(n, key)
}

// GetClientIp get client ip, reverse proxies are not resolved
func (n *NetHttpRequest) GetClientIp() string {
	ip, _, _ := net.SplitHostPort(n.origin.RemoteAddr)

	return ip
}

func (n *NetHttpRequest) GetContent() []byte {
	if n.body != nil || n.origin.Body == nil {
		return n.body
	}

	defer n.origin.Body.Close()
	n.body, _ = io.ReadAll(n.origin.Body)

	return n.body
}

func (n *NetHttpRequest) Unmarshal(to interface{}) error {
	return json.Unmarshal(n.GetContent(), to)
}

func (n *NetHttpRequest) Header(key string) []byte {
	return []byte(n.origin.Header.Get(key))
}

func (n *NetHttpRequest) HeaderString(key string) string {
	return n.origin.Header.Get(key)
}

func (n *NetHttpRequest) SetHeaderString(key, value string) RequestContract {
	n.origin.Header.Set(key, value)

	return n
}

func (n *NetHttpRequest) BearerToken() ([]byte, error) {
	return bearerToken(n.Header("Authorization"))
}

func NewNetHttpRequest(origin *http.Request, w http.ResponseWriter) *NetHttpRequest {
	return &NetHttpRequest{origin: origin, originWriter: w}
}
