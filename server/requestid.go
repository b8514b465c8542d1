package server

import (
	"github.com/enorith/injectparam/contracts"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID makes sure every request and its response carry a request id.
var RequestID PipeFunc = func(r contracts.RequestContract, next PipeHandler) contracts.ResponseContract {
	id := r.HeaderString(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		r.SetHeaderString(RequestIDHeader, id)
	}

	resp := next(r)
	if resp != nil {
		resp.SetHeader(RequestIDHeader, id)
	}

	return resp
}
