package params_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/decorator"
	httpErrors "github.com/enorith/injectparam/errors"
	"github.com/enorith/injectparam/execution"
	"github.com/enorith/injectparam/params"
	"github.com/enorith/injectparam/pipes"
	"github.com/enorith/injectparam/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"`
}

func noContainer(abs reflect.Type) (reflect.Value, error) {
	return reflect.Value{}, errors.New("no container")
}

func call(t *testing.T, r contracts.RequestContract, handler interface{}, ps ...*decorator.Param) ([]reflect.Value, error) {
	t.Helper()
	h := decorator.MustBind(handler, ps...)

	return h.Call(execution.NewHttp(r, h.Func()), noContainer)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var e *httpErrors.Error
	require.ErrorAs(t, err, &e)
	return e.StatusCode()
}

func TestQuery_ConvertsToArgumentType(t *testing.T) {
	r := tests.NewRequest("GET", "/search")
	r.Query["q"] = "go"
	r.Query["page"] = "3"
	r.Query["exact"] = "true"
	r.Query["raw"] = "abc"

	out, err := call(t, r, func(q string, page int, exact bool, raw contracts.InputValue) []interface{} {
		return []interface{}{q, page, exact, raw}
	}, params.Query("q"), params.Query("page"), params.Query("exact"), params.Query("raw"))
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"go", 3, true, contracts.InputValue("abc")}, out[0].Interface())
}

func TestQuery_MissingIsZero(t *testing.T) {
	out, err := call(t, tests.NewRequest("GET", "/"), func(page int64, q string) []interface{} {
		return []interface{}{page, q}
	}, params.Query("page"), params.Query("q", pipes.DefaultValuePipe("all")))
	require.NoError(t, err)

	assert.Equal(t, []interface{}{int64(0), "all"}, out[0].Interface())
}

func TestQuery_ReadsJsonBody(t *testing.T) {
	r := tests.NewRequest("POST", "/").WithJson(`{"page":2,"filter":{"name":"ann"}}`)

	out, err := call(t, r, func(page int, filter map[string]interface{}) []interface{} {
		return []interface{}{page, filter}
	}, params.Query("page"), params.Query("filter"))
	require.NoError(t, err)

	assert.Equal(t, []interface{}{2, map[string]interface{}{"name": "ann"}}, out[0].Interface())
}

func TestQuery_InvalidInput(t *testing.T) {
	r := tests.NewRequest("GET", "/")
	r.Query["page"] = "two"
	_, err := call(t, r, func(page int) int { return page }, params.Query("page"))
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "page")

	r.Query["filter"] = "{broken"
	_, err = call(t, r, func(f map[string]string) map[string]string { return f }, params.Query("filter"))
	assert.Equal(t, 400, statusOf(t, err))
}

func TestBody_DecodesIntoArgumentType(t *testing.T) {
	r := tests.NewRequest("POST", "/").WithJson(`{"name":"ann","age":30}`)

	out, err := call(t, r, func(p *profile, v profile, m map[string]interface{}) []interface{} {
		return []interface{}{p, v, m}
	}, params.Body(nil), params.Body(nil), params.Body(nil))
	require.NoError(t, err)

	got := out[0].Interface().([]interface{})
	assert.Equal(t, &profile{Name: "ann", Age: 30}, got[0])
	assert.Equal(t, profile{Name: "ann", Age: 30}, got[1])
	assert.Equal(t, map[string]interface{}{"name": "ann", "age": float64(30)}, got[2])
}

func TestBody_Path(t *testing.T) {
	r := tests.NewRequest("POST", "/").WithJson(`{"user":{"name":"ann","tags":["a"]},"note":"hi","n":4}`)

	out, err := call(t, r, func(p *profile, tags []string, note string, n int64, missing *profile) []interface{} {
		return []interface{}{p, tags, note, n, missing}
	}, params.Body("user"), params.Body("user.tags"), params.Body("note"), params.Body("n"), params.Body("absent"))
	require.NoError(t, err)

	assert.Equal(t, []interface{}{&profile{Name: "ann"}, []string{"a"}, "hi", int64(4), (*profile)(nil)}, out[0].Interface())
}

func TestBody_Errors(t *testing.T) {
	_, err := call(t, tests.NewRequest("POST", "/"), func(p *profile) *profile { return p }, params.Body(nil))
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "empty")

	r := tests.NewRequest("POST", "/").WithJson(`{"name":`)
	_, err = call(t, r, func(p *profile) *profile { return p }, params.Body(nil))
	assert.Equal(t, 400, statusOf(t, err))
}

func TestBody_ValidatedAfterDecode(t *testing.T) {
	r := tests.NewRequest("POST", "/").WithJson(`{"age":30}`)

	_, err := call(t, r, func(p *profile) *profile { return p }, params.Body(nil, pipes.NewValidationPipe()))
	assert.Equal(t, 422, statusOf(t, err))
	assert.Contains(t, err.Error(), "Name")
}

func TestPath(t *testing.T) {
	r := tests.NewRequest("GET", "/users/7")
	r.SetParams(map[string][]byte{"id": []byte("7")})

	out, err := call(t, r, func(id int64) int64 { return id }, params.Path("id", pipes.ParseIntPipe))
	require.NoError(t, err)
	assert.Equal(t, int64(7), out[0].Interface())
}

func TestNoRequest(t *testing.T) {
	h := decorator.MustBind(func(q string) string { return q }, params.Query("q"))

	_, err := h.Call(execution.New(contracts.ContextGraphQL, nil, nil), noContainer)
	assert.ErrorIs(t, err, params.ErrNoRequest)
}
