package oparse

import (
	"strconv"
)

// GetText formats the current value of the named flag (or alias) back
// to display text.
func (r *Registry) GetText(name string) (string, error) {
	flag := r.Lookup(name)
	if flag == nil {
		return "", programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	return flag.Value.String(), nil
}

// SetText parses value into the named flag's storage outside of a
// command-line parse.  The flag counts as visited, the same as if it
// had appeared on the command line.
func (r *Registry) SetText(name, value string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	return r.setFlag(flag, value, "--"+name)
}

// getWithType guards the typed getters: the stored Value must report
// the expected type name.
func (r *Registry) getWithType(name, typeName string) (string, error) {
	flag := r.Lookup(name)
	if flag == nil {
		return "", programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	if flag.Value.Type() != typeName {
		return "", programmerErrorf(ErrTypeMismatch, "--%s is %s, not %s",
			name, flag.Value.Type(), typeName)
	}
	return flag.Value.String(), nil
}

// setWithType guards the typed setters the same way, then routes the
// formatted text through the normal set path so it counts a visit.
func (r *Registry) setWithType(name, typeName, value string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	if flag.Value.Type() != typeName {
		return programmerErrorf(ErrTypeMismatch, "--%s is %s, not %s",
			name, flag.Value.Type(), typeName)
	}
	return r.setFlag(flag, value, "--"+name)
}

// GetString returns the value of a string-typed flag.
func (r *Registry) GetString(name string) (string, error) {
	return r.getWithType(name, "string")
}

// GetBool returns the value of a bool-typed flag.
func (r *Registry) GetBool(name string) (bool, error) {
	text, err := r.getWithType(name, "bool")
	if err != nil {
		return false, err
	}
	return parseBool(text)
}

// GetInt returns the value of an int-typed flag.
func (r *Registry) GetInt(name string) (int, error) {
	text, err := r.getWithType(name, "int")
	if err != nil {
		return 0, err
	}
	n, err := parseInt(text, strconv.IntSize)
	return int(n), err
}

// GetUint returns the value of a uint-typed flag.
func (r *Registry) GetUint(name string) (uint, error) {
	text, err := r.getWithType(name, "uint")
	if err != nil {
		return 0, err
	}
	n, err := parseUint(text, strconv.IntSize)
	return uint(n), err
}

// GetInt64 returns the value of an int64-typed flag.
func (r *Registry) GetInt64(name string) (int64, error) {
	text, err := r.getWithType(name, "int64")
	if err != nil {
		return 0, err
	}
	return parseInt(text, 64)
}

// GetUint64 returns the value of a uint64-typed flag.
func (r *Registry) GetUint64(name string) (uint64, error) {
	text, err := r.getWithType(name, "uint64")
	if err != nil {
		return 0, err
	}
	return parseUint(text, 64)
}

// GetFloat64 returns the value of a float64-typed flag.
func (r *Registry) GetFloat64(name string) (float64, error) {
	text, err := r.getWithType(name, "float64")
	if err != nil {
		return 0, err
	}
	return parseFloat(text)
}

// SetString sets a string-typed flag. Like SetText, the flag counts
// as visited.
func (r *Registry) SetString(name, value string) error {
	return r.setWithType(name, "string", value)
}

// SetBool sets a bool-typed flag.
func (r *Registry) SetBool(name string, value bool) error {
	return r.setWithType(name, "bool", strconv.FormatBool(value))
}

// SetInt sets an int-typed flag.
func (r *Registry) SetInt(name string, value int) error {
	return r.setWithType(name, "int", strconv.Itoa(value))
}

// SetInt64 sets an int64-typed flag.
func (r *Registry) SetInt64(name string, value int64) error {
	return r.setWithType(name, "int64", strconv.FormatInt(value, 10))
}

// SetUint sets a uint-typed flag.
func (r *Registry) SetUint(name string, value uint) error {
	return r.setWithType(name, "uint", strconv.FormatUint(uint64(value), 10))
}

// SetUint64 sets a uint64-typed flag.
func (r *Registry) SetUint64(name string, value uint64) error {
	return r.setWithType(name, "uint64", strconv.FormatUint(value, 10))
}

// SetFloat64 sets a float64-typed flag.
func (r *Registry) SetFloat64(name string, value float64) error {
	return r.setWithType(name, "float64", strconv.FormatFloat(value, 'g', -1, 64))
}
