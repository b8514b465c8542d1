package errors

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
	"github.com/enorith/exception"
	"github.com/enorith/injectparam/content"
	"github.com/enorith/injectparam/contracts"
	"go.uber.org/zap"
)

type ErrorHandler interface {
	HandleError(e interface{}, r contracts.RequestContract, recovered bool) contracts.ResponseContract
}

type StandardErrorHandler struct {
	Debug  bool
	Logger *zap.Logger
}

func (h *StandardErrorHandler) HandleError(e interface{}, r contracts.RequestContract, recovered bool) contracts.ResponseContract {
	if recovered && h.Logger != nil {
		h.Logger.Error("recovered from panic",
			zap.String("method", r.GetMethod()),
			zap.ByteString("uri", r.GetUri()),
			zap.String("panic", fmt.Sprint(e)))
	}

	return h.BaseHandle(e, r)
}

func (h *StandardErrorHandler) BaseHandle(e interface{}, r contracts.RequestContract) contracts.ResponseContract {
	var ex exception.Exception
	var code = 500
	var headers map[string]string
	if t, ok := e.(string); ok {
		ex = exception.NewException(t, code)
	} else if t, ok := e.(exception.HttpException); ok {
		ex = t
		headers = t.Headers()
	} else if t, ok := e.(exception.Exception); ok {
		ex = t
	} else if t, ok := e.(error); ok {
		ex = exception.NewExceptionFromError(t, code)
	} else {
		ex = exception.NewException("undefined exception", code)
	}

	var withCode contracts.WithStatusCode
	if t, ok := e.(contracts.WithStatusCode); ok {
		code = t.StatusCode()
	} else if err, ok := e.(error); ok && cerrors.As(err, &withCode) {
		code = withCode.StatusCode()
	}

	if r.ExceptsJson() {
		return content.JsonErrorResponseFormatter(ex, code, h.Debug, headers)
	}

	return content.HtmlErrorResponseFormatter(ex, code, h.Debug, headers)
}
