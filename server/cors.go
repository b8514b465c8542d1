package server

import (
	"strconv"
	"strings"

	"github.com/enorith/injectparam/config"
	"github.com/enorith/injectparam/content"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/supports/collection"
)

// Cors answers preflight requests and decorates actual responses with
// Access-Control-* headers.
type Cors struct {
	cfg config.Cors
}

func (c *Cors) Handle(r contracts.RequestContract, next PipeHandler) contracts.ResponseContract {
	if r.GetMethod() == "OPTIONS" && r.HeaderString("Access-Control-Request-Method") != "" {
		return c.preflight(r)
	}

	resp := next(r)
	if r.GetMethod() == "OPTIONS" {
		return vary(resp, "Access-Control-Request-Method")
	}

	c.allowOrigin(r, resp)
	if allowed(resp) {
		c.allowCredentials(resp)
		if len(c.cfg.ExposedHeaders) > 0 {
			resp.SetHeader("Access-Control-Expose-Headers", strings.Join(c.cfg.ExposedHeaders, ","))
		}
	}

	return resp
}

func (c *Cors) preflight(r contracts.RequestContract) contracts.ResponseContract {
	resp := content.NewResponse(nil, nil, 204)
	c.allowOrigin(r, resp)
	if allowed(resp) {
		c.allowCredentials(resp)
		resp.SetHeader("Access-Control-Allow-Methods", c.echo(r, resp, c.cfg.AllowedMethods, "Access-Control-Request-Method"))
		resp.SetHeader("Access-Control-Allow-Headers", c.echo(r, resp, c.cfg.AllowedHeaders, "Access-Control-Request-Headers"))
		if c.cfg.MaxAge > 0 {
			resp.SetHeader("Access-Control-Max-Age", strconv.Itoa(c.cfg.MaxAge))
		}
	}

	return vary(resp, "Access-Control-Request-Method")
}

func (c *Cors) allowOrigin(r contracts.RequestContract, resp contracts.ResponseContract) {
	origin := r.HeaderString("Origin")
	wildcard := collection.Contains(c.cfg.AllowedOrigins, "*")

	if wildcard && !c.cfg.AllowCredentials {
		resp.SetHeader("Access-Control-Allow-Origin", "*")
		return
	}

	vary(resp, "Origin")
	if origin != "" && (wildcard || collection.Contains(c.cfg.AllowedOrigins, origin)) {
		resp.SetHeader("Access-Control-Allow-Origin", origin)
	}
}

func (c *Cors) allowCredentials(resp contracts.ResponseContract) {
	if c.cfg.AllowCredentials {
		resp.SetHeader("Access-Control-Allow-Credentials", "true")
	}
}

// echo returns the configured list, or the requested value when "*" is configured.
func (c *Cors) echo(r contracts.RequestContract, resp contracts.ResponseContract, list []string, header string) string {
	if collection.Contains(list, "*") {
		vary(resp, header)
		return r.HeaderString(header)
	}

	return strings.Join(list, ",")
}

func allowed(resp contracts.ResponseContract) bool {
	return resp.Headers()["Access-Control-Allow-Origin"] != ""
}

func vary(resp contracts.ResponseContract, header string) contracts.ResponseContract {
	current := resp.Headers()["Vary"]
	if current == "" {
		return resp.SetHeader("Vary", header)
	}

	for _, v := range strings.Split(current, ",") {
		if strings.TrimSpace(v) == header {
			return resp
		}
	}

	return resp.SetHeader("Vary", current+", "+header)
}

func NewCors(cfg config.Cors) *Cors {
	return &Cors{cfg: cfg}
}
