package content

import (
	"net/http"

	cerrors "github.com/cockroachdb/errors"
	"github.com/enorith/exception"
	"github.com/enorith/injectparam/contracts"
)

const (
	ContentTypeJson = "application/json; charset=utf-8"
	ContentTypeHtml = "text/html; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
)

//Response http response
type Response struct {
	content    []byte
	headers    map[string]string
	statusCode int
	handled    bool
}

func (r *Response) Content() []byte {
	return r.content
}

func (r *Response) Headers() map[string]string {
	return r.headers
}

func (r *Response) SetHeader(key string, value string) contracts.ResponseContract {
	r.headers[key] = value
	return r
}

func (r *Response) StatusCode() int {
	return r.statusCode
}

func (r *Response) SetStatusCode(code int) contracts.ResponseContract {
	r.statusCode = code
	return r
}

func (r *Response) Handled() bool {
	return r.handled
}

// ErrorResponse is a response the kernel renders through its error handler.
type ErrorResponse struct {
	*Response
	e exception.Exception
}

func (e *ErrorResponse) E() exception.Exception {
	return e.e
}

// NewResponse copies headers, callers may reuse the map.
func NewResponse(content []byte, headers map[string]string, code int) *Response {
	hs := make(map[string]string, len(headers))
	for k, v := range headers {
		hs[k] = v
	}

	return &Response{content: content, headers: hs, statusCode: code}
}

func TextResponse(content string, code int) *Response {
	return NewResponse([]byte(content), map[string]string{"Content-Type": ContentTypeText}, code)
}

// JsonResponse encodes data unless it is already []byte.
func JsonResponse(data interface{}, code int, headers map[string]string) contracts.ResponseContract {
	body, ok := data.([]byte)
	if !ok {
		var err error
		if body, err = json.Marshal(data); err != nil {
			return ErrResponseFromError(cerrors.Wrap(err, "encode json response"), http.StatusInternalServerError, nil)
		}
	}

	resp := NewResponse(body, headers, code)
	resp.SetHeader("Content-Type", ContentTypeJson)

	return resp
}

func ErrResponse(e exception.Exception, code int, headers map[string]string) *ErrorResponse {
	return &ErrorResponse{NewResponse([]byte(e.Error()), headers, code), e}
}

// ErrResponseFromError uses the status of the first error in e's chain that
// carries one, and code otherwise.
func ErrResponseFromError(e error, code int, headers map[string]string) *ErrorResponse {
	var withCode contracts.WithStatusCode
	if cerrors.As(e, &withCode) {
		code = withCode.StatusCode()
		return ErrResponse(exception.NewHttpExceptionFromError(e, code, 0, headers), code, nil)
	}

	return ErrResponse(exception.NewExceptionFromError(e, code), code, headers)
}

func NotFoundResponse(message string) *ErrorResponse {
	return ErrResponse(exception.NewHttpException(message, http.StatusNotFound, http.StatusNotFound, nil), http.StatusNotFound, nil)
}

func NewHandledResponse() *Response {
	return &Response{handled: true, statusCode: http.StatusOK, headers: map[string]string{}}
}
