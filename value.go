package oparse

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Value bridges one caller-owned storage location to the registry.
// The registry never needs to know the concrete type: Set parses text
// into the storage, String formats the current value back to text, and
// Type names the type for usage placeholders and for the typed
// Get*/Set* checks.
//
// The storage behind a Value belongs to the caller and must remain
// valid for the registry's entire lifetime.
type Value interface {
	String() string
	Set(string) error
	Type() string
}

// -- string

type stringValue string

func newStringValue(val string, p *string) *stringValue {
	*p = val
	return (*stringValue)(p)
}

func (s *stringValue) Set(val string) error {
	*s = stringValue(val)
	return nil
}

func (s *stringValue) String() string { return string(*s) }
func (s *stringValue) Type() string   { return "string" }

// -- bool

type boolValue bool

func newBoolValue(val bool, p *bool) *boolValue {
	*p = val
	return (*boolValue)(p)
}

func (b *boolValue) Set(s string) error {
	v, err := parseBool(s)
	if err != nil {
		return err
	}
	*b = boolValue(v)
	return nil
}

func (b *boolValue) String() string { return strconv.FormatBool(bool(*b)) }
func (b *boolValue) Type() string   { return "bool" }

// -- int

type intValue int

func newIntValue(val int, p *int) *intValue {
	*p = val
	return (*intValue)(p)
}

func (i *intValue) Set(s string) error {
	v, err := parseInt(s, strconv.IntSize)
	if err != nil {
		return err
	}
	*i = intValue(v)
	return nil
}

func (i *intValue) String() string { return strconv.Itoa(int(*i)) }
func (i *intValue) Type() string   { return "int" }

// -- int64

type int64Value int64

func newInt64Value(val int64, p *int64) *int64Value {
	*p = val
	return (*int64Value)(p)
}

func (i *int64Value) Set(s string) error {
	v, err := parseInt(s, 64)
	if err != nil {
		return err
	}
	*i = int64Value(v)
	return nil
}

func (i *int64Value) String() string { return strconv.FormatInt(int64(*i), 10) }
func (i *int64Value) Type() string   { return "int64" }

// -- uint

type uintValue uint

func newUintValue(val uint, p *uint) *uintValue {
	*p = val
	return (*uintValue)(p)
}

func (i *uintValue) Set(s string) error {
	v, err := parseUint(s, strconv.IntSize)
	if err != nil {
		return err
	}
	*i = uintValue(v)
	return nil
}

func (i *uintValue) String() string { return strconv.FormatUint(uint64(*i), 10) }
func (i *uintValue) Type() string   { return "uint" }

// -- uint64

type uint64Value uint64

func newUint64Value(val uint64, p *uint64) *uint64Value {
	*p = val
	return (*uint64Value)(p)
}

func (i *uint64Value) Set(s string) error {
	v, err := parseUint(s, 64)
	if err != nil {
		return err
	}
	*i = uint64Value(v)
	return nil
}

func (i *uint64Value) String() string { return strconv.FormatUint(uint64(*i), 10) }
func (i *uint64Value) Type() string   { return "uint64" }

// -- float64

type float64Value float64

func newFloat64Value(val float64, p *float64) *float64Value {
	*p = val
	return (*float64Value)(p)
}

func (f *float64Value) Set(s string) error {
	v, err := parseFloat(s)
	if err != nil {
		return err
	}
	*f = float64Value(v)
	return nil
}

func (f *float64Value) String() string { return strconv.FormatFloat(float64(*f), 'g', -1, 64) }
func (f *float64Value) Type() string   { return "float64" }

// -- rune ("char"): exactly one UTF-8 scalar value

type runeValue rune

func newRuneValue(val rune, p *rune) *runeValue {
	*p = val
	return (*runeValue)(p)
}

func (r *runeValue) Set(s string) error {
	v, err := parseRune(s)
	if err != nil {
		return err
	}
	*r = runeValue(v)
	return nil
}

func (r *runeValue) String() string { return string(rune(*r)) }
func (r *runeValue) Type() string   { return "char" }

// -- enum

// EnumSpec describes the member set of an enum-typed flag.  Tags, when
// given, are the integer representation of each name and must be
// parallel to Names; when absent the index of each name is its tag.
// Arbitrary permits integer input that matches no member.
type EnumSpec struct {
	Names     []string
	Tags      []int
	Arbitrary bool
}

type enumValue struct {
	p         *int
	names     []string
	tags      []int
	arbitrary bool
}

func newEnumValue(val int, p *int, spec EnumSpec) *enumValue {
	*p = val
	tags := spec.Tags
	if tags == nil {
		tags = make([]int, len(spec.Names))
		for i := range spec.Names {
			tags[i] = i
		}
	}
	return &enumValue{
		p:         p,
		names:     spec.Names,
		tags:      tags,
		arbitrary: spec.Arbitrary,
	}
}

// Set matches names case-sensitively unless the first character is a
// digit, in which case the text is the integer tag.
func (e *enumValue) Set(s string) error {
	if s == "" {
		return errors.WithStack(ErrEmptyString)
	}
	if s[0] >= '0' && s[0] <= '9' {
		n, err := parseInt(s, strconv.IntSize)
		if err != nil {
			return err
		}
		if !e.arbitrary {
			var found bool
			for _, tag := range e.tags {
				if tag == int(n) {
					found = true
					break
				}
			}
			if !found {
				return errors.Wrapf(ErrInvalidEnumTag, "%q", s)
			}
		}
		*e.p = int(n)
		return nil
	}
	for i, name := range e.names {
		if name == s {
			*e.p = e.tags[i]
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidEnumName, "%q", s)
}

func (e *enumValue) String() string {
	for i, tag := range e.tags {
		if tag == *e.p {
			return e.names[i]
		}
	}
	return strconv.Itoa(*e.p)
}

func (e *enumValue) Type() string { return "enum" }

// -- fixed-length arrays, encoded as comma-separated text

type intArrayValue struct{ a []int }

func (v *intArrayValue) Set(s string) error {
	items, err := splitItems(s, len(v.a))
	if err != nil {
		return err
	}
	parsed := make([]int, len(items))
	for i, item := range items {
		n, err := parseInt(item, strconv.IntSize)
		if err != nil {
			return errors.Wrapf(err, "item %d", i+1)
		}
		parsed[i] = int(n)
	}
	copy(v.a, parsed)
	return nil
}

func (v *intArrayValue) String() string {
	items := make([]string, len(v.a))
	for i, n := range v.a {
		items[i] = strconv.Itoa(n)
	}
	return strings.Join(items, ",")
}

func (v *intArrayValue) Type() string { return pluralType("int", len(v.a)) }

type uintArrayValue struct{ a []uint }

func (v *uintArrayValue) Set(s string) error {
	items, err := splitItems(s, len(v.a))
	if err != nil {
		return err
	}
	parsed := make([]uint, len(items))
	for i, item := range items {
		n, err := parseUint(item, strconv.IntSize)
		if err != nil {
			return errors.Wrapf(err, "item %d", i+1)
		}
		parsed[i] = uint(n)
	}
	copy(v.a, parsed)
	return nil
}

func (v *uintArrayValue) String() string {
	items := make([]string, len(v.a))
	for i, n := range v.a {
		items[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(items, ",")
}

func (v *uintArrayValue) Type() string { return pluralType("uint", len(v.a)) }

type float64ArrayValue struct{ a []float64 }

func (v *float64ArrayValue) Set(s string) error {
	items, err := splitItems(s, len(v.a))
	if err != nil {
		return err
	}
	parsed := make([]float64, len(items))
	for i, item := range items {
		n, err := parseFloat(item)
		if err != nil {
			return errors.Wrapf(err, "item %d", i+1)
		}
		parsed[i] = n
	}
	copy(v.a, parsed)
	return nil
}

func (v *float64ArrayValue) String() string {
	items := make([]string, len(v.a))
	for i, n := range v.a {
		items[i] = strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strings.Join(items, ",")
}

func (v *float64ArrayValue) Type() string { return pluralType("float64", len(v.a)) }

type stringArrayValue struct{ a []string }

func (v *stringArrayValue) Set(s string) error {
	items, err := splitItems(s, len(v.a))
	if err != nil {
		return err
	}
	copy(v.a, items)
	return nil
}

func (v *stringArrayValue) String() string { return strings.Join(v.a, ",") }

func (v *stringArrayValue) Type() string { return pluralType("string", len(v.a)) }

func pluralType(elem string, n int) string {
	if n > 1 {
		return elem + "s"
	}
	return elem
}
