package tests

import (
	"context"
	"net/url"
	"strings"

	"github.com/enorith/injectparam/content"
	"github.com/enorith/injectparam/contracts"
)

// FakeRequest is an in-memory RequestContract. Query values win over a JSON
// Body when both carry a key.
type FakeRequest struct {
	content.SimpleParamRequest
	Path    string
	Method  string
	Body    []byte
	Query   map[string]string
	Headers map[string]string
}

func (f *FakeRequest) Context() context.Context {
	return context.Background()
}

func (f *FakeRequest) ExceptsJson() bool {
	return f.HeaderString("Accept") == "application/json"
}

func (f *FakeRequest) RequestWithJson() bool {
	return f.HeaderString("Content-Type") == "application/json"
}

func (f *FakeRequest) GetMethod() string {
	return f.Method
}

func (f *FakeRequest) GetPathBytes() []byte {
	if u, err := url.ParseRequestURI(f.Path); err == nil {
		return []byte(u.Path)
	}
	return []byte(f.Path)
}

func (f *FakeRequest) GetUri() []byte {
	return []byte(f.Path)
}

func (f *FakeRequest) Get(key string) []byte {
	if v, ok := f.Query[key]; ok {
		return []byte(v)
	}
	return content.GetJsonValue(f, key)
}

func (f *FakeRequest) GetValue(key ...string) contracts.InputValue {
	if len(key) > 0 {
		return f.Get(key[0])
	}
	return f.Body
}

func (f *FakeRequest) GetClientIp() string {
	return "127.0.0.1"
}

func (f *FakeRequest) GetContent() []byte {
	return f.Body
}

func (f *FakeRequest) Unmarshal(to interface{}) error {
	return contracts.InputValue(f.Body).Unmarshal(to)
}

func (f *FakeRequest) Header(key string) []byte {
	return []byte(f.HeaderString(key))
}

func (f *FakeRequest) HeaderString(key string) string {
	return f.Headers[key]
}

func (f *FakeRequest) SetHeaderString(key, value string) contracts.RequestContract {
	if f.Headers == nil {
		f.Headers = map[string]string{}
	}
	f.Headers[key] = value
	return f
}

func (f *FakeRequest) BearerToken() ([]byte, error) {
	auth := f.HeaderString("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, content.ErrInvalidBearerToken
	}
	return []byte(auth[7:]), nil
}

func (f *FakeRequest) String() string {
	return "fake request"
}

// WithJson sets a JSON body and its content type.
func (f *FakeRequest) WithJson(body string) *FakeRequest {
	f.Body = []byte(body)
	f.SetHeaderString("Content-Type", "application/json")
	return f
}

func NewRequest(method, path string) *FakeRequest {
	return &FakeRequest{
		Path:    path,
		Method:  method,
		Query:   map[string]string{},
		Headers: map[string]string{},
	}
}
