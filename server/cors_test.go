package server_test

import (
	"testing"

	"github.com/enorith/injectparam/config"
	"github.com/enorith/injectparam/content"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/server"
	"github.com/enorith/injectparam/tests"
	"github.com/stretchr/testify/assert"
)

func okHandler(r contracts.RequestContract) contracts.ResponseContract {
	return content.TextResponse("ok", 200)
}

func TestCors_Preflight(t *testing.T) {
	c := server.NewCors(config.Cors{
		AllowedOrigins: []string{"https://a.example"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	})

	r := tests.NewRequest("OPTIONS", "/x")
	r.SetHeaderString("Origin", "https://a.example")
	r.SetHeaderString("Access-Control-Request-Method", "POST")
	r.SetHeaderString("Access-Control-Request-Headers", "Authorization")

	resp := c.Handle(r, func(r contracts.RequestContract) contracts.ResponseContract {
		t.Fatal("preflight reached the handler")
		return nil
	})

	assert.Equal(t, 204, resp.StatusCode())
	h := resp.Headers()
	assert.Equal(t, "https://a.example", h["Access-Control-Allow-Origin"])
	assert.Equal(t, "GET,POST", h["Access-Control-Allow-Methods"])
	assert.Equal(t, "Authorization", h["Access-Control-Allow-Headers"])
	assert.Equal(t, "600", h["Access-Control-Max-Age"])
	assert.Equal(t, "Origin, Access-Control-Request-Headers, Access-Control-Request-Method", h["Vary"])
}

func TestCors_ActualRequest(t *testing.T) {
	c := server.NewCors(config.Cors{
		AllowedOrigins:   []string{"https://a.example"},
		ExposedHeaders:   []string{server.RequestIDHeader},
		AllowCredentials: true,
	})

	r := tests.NewRequest("GET", "/x")
	r.SetHeaderString("Origin", "https://a.example")
	h := c.Handle(r, okHandler).Headers()

	assert.Equal(t, "https://a.example", h["Access-Control-Allow-Origin"])
	assert.Equal(t, "true", h["Access-Control-Allow-Credentials"])
	assert.Equal(t, server.RequestIDHeader, h["Access-Control-Expose-Headers"])

	r = tests.NewRequest("GET", "/x")
	r.SetHeaderString("Origin", "https://evil.example")
	h = c.Handle(r, okHandler).Headers()

	assert.Empty(t, h["Access-Control-Allow-Origin"])
	assert.Equal(t, "Origin", h["Vary"])
}

func TestCors_Wildcard(t *testing.T) {
	c := server.NewCors(config.Cors{AllowedOrigins: []string{"*"}})

	r := tests.NewRequest("GET", "/x")
	r.SetHeaderString("Origin", "https://any.example")

	assert.Equal(t, "*", c.Handle(r, okHandler).Headers()["Access-Control-Allow-Origin"])
}
