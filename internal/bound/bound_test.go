package bound

import (
	"reflect"
	"runtime"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"
)

type holder struct {
	Name string
}

func TestGetWithoutSet(t *testing.T) {
	h := &holder{}

	assert.Empty(t, Get(h))
	assert.Empty(t, Get[holder](nil))
}

func TestSetThenGet(t *testing.T) {
	h := &holder{}
	Set(h, []interface{}{"a", 1})

	assert.Equal(t, []interface{}{"a", 1}, Get(h))
}

func TestSetOverwrites(t *testing.T) {
	h := &holder{}
	Set(h, []interface{}{"first"})
	Set(h, []interface{}{"second", "third"})

	assert.Equal(t, []interface{}{"second", "third"}, Get(h))
}

func TestSlotsAreScopedToInstance(t *testing.T) {
	a, b := &holder{}, &holder{}
	Set(a, []interface{}{"a"})
	Set(b, []interface{}{"b"})

	assert.Equal(t, []interface{}{"a"}, Get(a))
	assert.Equal(t, []interface{}{"b"}, Get(b))
}

func TestSlotIsNotAField(t *testing.T) {
	h := &holder{Name: "visible"}
	Set(h, []interface{}{"hidden"})

	v := reflect.ValueOf(h).Elem()
	for i := 0; i < v.NumField(); i++ {
		assert.NotEqual(t, "hidden", v.Field(i).Interface())
	}
	assert.Equal(t, 1, v.NumField())
}

func TestSetNilTarget(t *testing.T) {
	before := size()
	Set[holder](nil, []interface{}{"x"})

	assert.Equal(t, before, size())
}

func TestSetZeroSizeTarget(t *testing.T) {
	type empty struct{}

	assert.Panics(t, func() {
		Set(&empty{}, []interface{}{"x"})
	})
}

// bindTemporary binds values to a holder that is unreachable once it returns.
func bindTemporary(t *testing.T) weak.Pointer[holder] {
	h := &holder{Name: "temporary"}
	Set(h, []interface{}{"x"})

	key := weak.Make(h)
	assert.True(t, hasSlot(key))
	runtime.KeepAlive(h)

	return key
}

func hasSlot(key weak.Pointer[holder]) bool {
	parameters.mu.RLock()
	defer parameters.mu.RUnlock()
	_, ok := parameters.slots[key]

	return ok
}

func TestSlotReleasedAfterCollection(t *testing.T) {
	key := bindTemporary(t)

	assert.Eventually(t, func() bool {
		runtime.GC()
		return !hasSlot(key)
	}, 5*time.Second, 10*time.Millisecond)
	assert.Nil(t, key.Value())
}
