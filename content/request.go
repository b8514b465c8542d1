package content

import (
	"bytes"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
	. "github.com/enorith/injectparam/contracts"
	"github.com/enorith/supports/byt"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidBearerToken = errors.New("invalid bearer token")

// SimpleParamRequest holds the path parameters matched by the router.
type SimpleParamRequest struct {
	params map[string][]byte
}

func (shr *SimpleParamRequest) Param(key string) string {
	return string(shr.params[key])
}

func (shr *SimpleParamRequest) SetParams(params map[string][]byte) {
	shr.params = params
}

// GetJsonValue reads key from a JSON request body.
func GetJsonValue(r RequestContract, key string) []byte {
	if !r.RequestWithJson() {
		return nil
	}
	val, _, _, _ := jsonparser.Get(r.GetContent(), key)

	return val
}

// inputValue implements InputSource.GetValue on top of Get and GetContent.
func inputValue(r RequestContract, key []string) InputValue {
	if len(key) == 0 {
		return r.GetContent()
	}

	return r.Get(key[0])
}

func bearerToken(auth []byte) ([]byte, error) {
	if len(auth) < 7 || !bytes.EqualFold(auth[:6], []byte("Bearer")) {
		return nil, ErrInvalidBearerToken
	}

	return bytes.TrimSpace(auth[6:]), nil
}

func expectsJson(accepts []byte) bool {
	return byt.Contains(accepts, []byte("/json"), []byte("+json"))
}

func withJson(contentType []byte) bool {
	return byt.Contains(contentType, []byte("application/json"))
}
