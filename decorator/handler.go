package decorator

import (
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/enorith/injectparam/contracts"
)

var executionContextType = reflect.TypeOf((*contracts.ExecutionContext)(nil)).Elem()

type binding struct {
	factory CustomParamFactory
	def     Definition
}

// Handler is a function whose leading arguments are filled by Params. The
// remaining arguments come from the InstanceResolver, except arguments typed
// contracts.ExecutionContext which receive the current context.
type Handler struct {
	fn       reflect.Value
	bindings []binding
}

func (h *Handler) Func() interface{} {
	return h.fn.Interface()
}

// Call resolves every argument and invokes the handler.
func (h *Handler) Call(ctx contracts.ExecutionContext, resolve InstanceResolver) ([]reflect.Value, error) {
	ft := h.fn.Type()
	args := make([]reflect.Value, ft.NumIn())

	for i := range args {
		at := ft.In(i)
		var (
			v   reflect.Value
			err error
		)
		if i < len(h.bindings) {
			b := h.bindings[i]
			var value interface{}
			if value, err = resolveDefinition(b.factory, b.def, ctx, resolve); err != nil {
				return nil, err
			}
			if value != nil {
				v = reflect.ValueOf(value)
			}
			if args[i], err = assign(v, at); err != nil {
				return nil, errors.Wrapf(err, "decorator: parameter %s", b.def.Name)
			}
			continue
		}

		if at == executionContextType {
			args[i] = reflect.ValueOf(&ctx).Elem()
			continue
		}
		if v, err = resolve(at); err != nil {
			return nil, err
		}
		if args[i], err = assign(v, at); err != nil {
			return nil, err
		}
	}

	return h.fn.Call(args), nil
}

// Bind attaches params, in order, to the leading arguments of handler.
func Bind(handler interface{}, params ...*Param) (*Handler, error) {
	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, errors.Newf("decorator: handler must be a function, %T given", handler)
	}
	ft := fn.Type()
	if ft.IsVariadic() {
		return nil, errors.Newf("decorator: variadic handler %s is not supported", ft)
	}
	if len(params) > ft.NumIn() {
		return nil, errors.Newf("decorator: %d params bound to %s", len(params), ft)
	}

	h := &Handler{fn: fn, bindings: make([]binding, len(params))}
	for i, p := range params {
		if p == nil {
			return nil, errors.Newf("decorator: nil param at index %d", i)
		}
		def := p.Definition(contracts.ArgumentMetadata{Metatype: ft.In(i), Index: i})
		if def.Name == "" {
			def.Name = "#" + strconv.Itoa(i)
		}
		h.bindings[i] = binding{factory: p.factory, def: def}
	}

	return h, nil
}

func MustBind(handler interface{}, params ...*Param) *Handler {
	h, err := Bind(handler, params...)
	if err != nil {
		panic(err)
	}

	return h
}
