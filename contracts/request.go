package contracts

import (
	"context"

	"github.com/buger/jsonparser"
	"github.com/enorith/supports/byt"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InputValue is a raw input: a query or form value, or a JSON fragment.
type InputValue []byte

func (i InputValue) GetInt() (int64, error) {
	return byt.ToInt64(i)
}

func (i InputValue) GetString() string {
	return string(i)
}

func (i InputValue) GetBool() (bool, error) {
	return byt.ToBool(i)
}

// GetValue looks up a nested JSON value by path.
func (i InputValue) GetValue(path ...string) (InputValue, error) {
	v, _, _, err := jsonparser.Get(i, path...)

	return v, err
}

func (i InputValue) Unmarshal(v interface{}) error {
	return json.Unmarshal(i, v)
}

//InputSource reads request input by key; GetValue without a key is the whole body
type InputSource interface {
	Get(key string) []byte
	GetValue(key ...string) InputValue
}

//RequestContract is interface of http request
type RequestContract interface {
	InputSource
	Context() context.Context
	GetPathBytes() []byte
	GetUri() []byte
	Param(key string) string
	SetParams(params map[string][]byte)
	ExceptsJson() bool
	RequestWithJson() bool
	GetMethod() string
	GetClientIp() string
	GetContent() []byte
	Unmarshal(to interface{}) error
	Header(key string) []byte
	HeaderString(key string) string
	SetHeaderString(key, value string) RequestContract
	BearerToken() ([]byte, error)
}
