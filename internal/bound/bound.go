// Package bound keeps per-instance argument lists out of the instance itself.
//
// Values are stored in a side table keyed by the instance's identity, so
// reflecting over the instance (as the container does when it injects fields)
// never sees them. Entries go away when the instance is garbage collected.
package bound

import (
	"reflect"
	"runtime"
	"sync"
	"weak"
)

type slot struct {
	values []interface{}
}

type table struct {
	mu    sync.RWMutex
	slots map[interface{}]*slot
}

var parameters = &table{slots: make(map[interface{}]*slot)}

// Get returns the values bound to target, or an empty list.
func Get[T any](target *T) []interface{} {
	if target == nil {
		return []interface{}{}
	}

	parameters.mu.RLock()
	defer parameters.mu.RUnlock()
	if s, ok := parameters.slots[weak.Make(target)]; ok {
		return s.values
	}

	return []interface{}{}
}

// Set binds values to target. The first call creates the slot, later calls
// replace its contents. T must not be zero-size: distinct zero-size values
// may share an address and so would share a slot.
func Set[T any](target *T, values []interface{}) {
	if target == nil {
		return
	}
	if reflect.TypeFor[T]().Size() == 0 {
		panic("bound: zero-size target " + reflect.TypeFor[T]().String())
	}
	key := weak.Make(target)

	parameters.mu.Lock()
	defer parameters.mu.Unlock()
	if s, ok := parameters.slots[key]; ok {
		s.values = values
		return
	}

	parameters.slots[key] = &slot{values: values}
	runtime.AddCleanup(target, release[T], key)
}

func release[T any](key weak.Pointer[T]) {
	parameters.mu.Lock()
	delete(parameters.slots, key)
	parameters.mu.Unlock()
}

func size() int {
	parameters.mu.RLock()
	defer parameters.mu.RUnlock()

	return len(parameters.slots)
}
