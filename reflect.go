package oparse

import (
	"fmt"
	"reflect"

	"github.com/muir/reflectutils"
)

// reflectValue adapts any settable pointer to the Value contract
// using reflection, covering types the built-in codecs do not:
// durations, complex numbers, growable slices, and anything else
// reflectutils knows how to fill from a string.
type reflectValue struct {
	elem   reflect.Value
	setter func(reflect.Value, string) error
}

func (v *reflectValue) Set(s string) error {
	return v.setter(v.elem, s)
}

func (v *reflectValue) String() string {
	return fmt.Sprintf("%v", v.elem.Interface())
}

func (v *reflectValue) Type() string {
	return v.elem.Type().String()
}

// ReflectVar registers a flag over an arbitrary caller pointer.
// Comma-separated input fills slice types element-wise.
func (r *Registry) ReflectVar(p interface{}, name, shorthand, usage string) (*Flag, error) {
	v := reflect.ValueOf(p)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, programmerErrorf(ErrInvalidFlagName,
			"ReflectVar for %s needs a non-nil pointer, not %T", name, p)
	}
	setter, err := reflectutils.MakeStringSetter(v.Type().Elem(), reflectutils.WithSplitOn(","))
	if err != nil {
		return nil, programmerErrorf(ErrInvalidFlagName, "ReflectVar for %s: %s", name, err)
	}
	return r.Var(&reflectValue{
		elem:   v.Elem(),
		setter: setter,
	}, name, shorthand, usage)
}
