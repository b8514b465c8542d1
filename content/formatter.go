package content

import (
	"fmt"
	"html"
	"strings"

	"github.com/enorith/exception"
	"github.com/enorith/injectparam/contracts"
)

func traceLines(err exception.Exception) []string {
	var traces []string
	for k, v := range err.Traces() {
		traces = append(traces, fmt.Sprintf("#%d %s [%d]: %s", k+1, v.File(), v.Line(), v.Name()))
	}
	return traces
}

func JsonErrorResponseFormatter(err exception.Exception, code int, debug bool, headers map[string]string) contracts.ResponseContract {
	data := map[string]interface{}{
		"code":    err.Code(),
		"message": err.Error(),
	}

	if debug {
		data["file"] = err.File()
		data["line"] = err.Line()
		data["traces"] = traceLines(err)
	}

	return JsonResponse(data, code, headers)
}

func HtmlErrorResponseFormatter(err exception.Exception, code int, debug bool, headers map[string]string) contracts.ResponseContract {
	page := `<!DOCTYPE html>
<html>
    <head><meta charset="utf-8" /><meta name="robots" content="noindex,nofollow" /></head>
    <body>
        <div class="message">%s</div>
        <ul class="trace">%s</ul>
    </body>
</html>
`
	var items strings.Builder
	if debug {
		for _, frame := range traceLines(err) {
			items.WriteString("<li>" + html.EscapeString(frame) + "</li>")
		}
	}

	resp := NewResponse([]byte(fmt.Sprintf(page, html.EscapeString(err.Error()), items.String())), headers, code)
	resp.SetHeader("Content-Type", ContentTypeHtml)

	return resp
}
