package oparse

import (
	"unicode"
	"unicode/utf8"

	"github.com/mohae/deepcopy"
)

// Flag is one named definition owned by a Registry.  The Value's
// underlying storage is owned by the caller; the entry holds only a
// non-owning reference to it.
type Flag struct {
	Name                string              // canonical name, immutable after registration
	Usage               string              // help message; may embed a `placeholder` in back quotes
	Aliases             []string            // additional names routing to this entry
	Shorthand           string              // one-letter abbreviated flag, or empty
	Value               Value               // bridge to caller-owned storage
	DefValue            string              // default value (as text) for the usage message
	NoOptDefVal         string              // value applied when the flag appears with no argument
	Deprecated          string              // hides the flag and warns on use when non-empty
	ShorthandDeprecated string              // hides only the shorthand and warns on its use
	Hidden              bool                // excluded from usage text
	Annotations         map[string][]string // arbitrary metadata, e.g. completion hints
	Visits              int                 // times set during the current parse; 0 means unused
}

// clone deep-copies the entry's own state.  The Value (and so the
// caller storage behind it) is shared: Merge moves definitions, not
// storage.
func (f *Flag) clone() *Flag {
	c := *f
	c.Visits = 0
	if f.Aliases != nil {
		c.Aliases = deepcopy.Copy(f.Aliases).([]string)
	}
	if f.Annotations != nil {
		c.Annotations = deepcopy.Copy(f.Annotations).(map[string][]string)
	}
	return &c
}

func validFlagName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func validShorthand(shorthand string) bool {
	r, size := utf8.DecodeRuneInString(shorthand)
	return size == len(shorthand) && r < utf8.RuneSelf && unicode.IsLetter(r)
}

// Var registers a flag backed by value.  shorthand may be empty.
// Boolean-typed flags get NoOptDefVal "true" so that presence alone
// turns them on.
func (r *Registry) Var(value Value, name, shorthand, usage string) (*Flag, error) {
	flag := &Flag{
		Name:      name,
		Shorthand: shorthand,
		Usage:     usage,
		Value:     value,
		DefValue:  value.String(),
	}
	if value.Type() == "bool" {
		flag.NoOptDefVal = "true"
	}
	if err := r.AddFlag(flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// AddFlag validates and indexes a fully-formed entry.  It fails fast
// on the first definition conflict without registering anything.
func (r *Registry) AddFlag(flag *Flag) error {
	if !validFlagName(flag.Name) {
		return programmerErrorf(ErrInvalidFlagName, "%q", flag.Name)
	}
	if _, ok := r.defined[flag.Name]; ok {
		return programmerErrorf(ErrDuplicateName, "%s", flag.Name)
	}
	if _, ok := r.aliases[flag.Name]; ok {
		return programmerErrorf(ErrDuplicateName, "%s collides with an alias", flag.Name)
	}
	if flag.Shorthand != "" {
		if !validShorthand(flag.Shorthand) {
			return programmerErrorf(ErrInvalidShorthand, "%q for --%s", flag.Shorthand, flag.Name)
		}
		if old, ok := r.shorthands[flag.Shorthand[0]]; ok {
			return programmerErrorf(ErrDuplicateShorthand, "%q used by both --%s and --%s",
				flag.Shorthand, old.Name, flag.Name)
		}
	}
	for _, alias := range flag.Aliases {
		if err := r.checkAlias(flag, alias); err != nil {
			return err
		}
	}

	r.defined[flag.Name] = flag
	r.ordered = append(r.ordered, flag)
	if flag.Shorthand != "" {
		r.shorthands[flag.Shorthand[0]] = flag
	}
	for _, alias := range flag.Aliases {
		r.aliases[alias] = flag
	}
	debugf("registered --%s (shorthand %q)", flag.Name, flag.Shorthand)
	return nil
}

func (r *Registry) checkAlias(flag *Flag, alias string) error {
	if !validFlagName(alias) {
		return programmerErrorf(ErrInvalidFlagName, "alias %q", alias)
	}
	if alias == flag.Name {
		return programmerErrorf(ErrDuplicateName, "alias %s repeats the flag's own name", alias)
	}
	if _, ok := r.defined[alias]; ok {
		return programmerErrorf(ErrDuplicateName, "alias %s", alias)
	}
	if _, ok := r.aliases[alias]; ok {
		return programmerErrorf(ErrDuplicateName, "alias %s", alias)
	}
	return nil
}

// BoolVar registers a bool flag storing into p, seeded with value.
func (r *Registry) BoolVar(p *bool, name, shorthand string, value bool, usage string) error {
	_, err := r.Var(newBoolValue(value, p), name, shorthand, usage)
	return err
}

// StringVar registers a string flag storing into p.
func (r *Registry) StringVar(p *string, name, shorthand string, value string, usage string) error {
	_, err := r.Var(newStringValue(value, p), name, shorthand, usage)
	return err
}

// IntVar registers an int flag storing into p.
func (r *Registry) IntVar(p *int, name, shorthand string, value int, usage string) error {
	_, err := r.Var(newIntValue(value, p), name, shorthand, usage)
	return err
}

// Int64Var registers an int64 flag storing into p.
func (r *Registry) Int64Var(p *int64, name, shorthand string, value int64, usage string) error {
	_, err := r.Var(newInt64Value(value, p), name, shorthand, usage)
	return err
}

// UintVar registers a uint flag storing into p.
func (r *Registry) UintVar(p *uint, name, shorthand string, value uint, usage string) error {
	_, err := r.Var(newUintValue(value, p), name, shorthand, usage)
	return err
}

// Uint64Var registers a uint64 flag storing into p.
func (r *Registry) Uint64Var(p *uint64, name, shorthand string, value uint64, usage string) error {
	_, err := r.Var(newUint64Value(value, p), name, shorthand, usage)
	return err
}

// Float64Var registers a float64 flag storing into p.
func (r *Registry) Float64Var(p *float64, name, shorthand string, value float64, usage string) error {
	_, err := r.Var(newFloat64Value(value, p), name, shorthand, usage)
	return err
}

// RuneVar registers a single-character flag storing into p.  The
// argument must be exactly one UTF-8 scalar value.
func (r *Registry) RuneVar(p *rune, name, shorthand string, value rune, usage string) error {
	_, err := r.Var(newRuneValue(value, p), name, shorthand, usage)
	return err
}

// EnumVar registers an enum flag storing the member's integer tag
// into p.  Input matches member names case-sensitively, or the tag
// itself when the text starts with a digit.
func (r *Registry) EnumVar(p *int, name, shorthand string, value int, spec EnumSpec, usage string) error {
	if len(spec.Names) == 0 {
		return programmerErrorf(ErrInvalidFlagName, "enum flag %s has no member names", name)
	}
	if spec.Tags != nil && len(spec.Tags) != len(spec.Names) {
		return programmerErrorf(ErrInvalidFlagName, "enum flag %s has %d tags for %d names",
			name, len(spec.Tags), len(spec.Names))
	}
	_, err := r.Var(newEnumValue(value, p, spec), name, shorthand, usage)
	return err
}

// IntArrayVar registers a fixed-length int collection flag.  Input is
// comma-separated and must supply exactly len(p) items.
func (r *Registry) IntArrayVar(p []int, name, shorthand, usage string) error {
	if len(p) == 0 {
		return programmerErrorf(ErrInvalidFlagName, "array flag %s needs a non-empty backing slice", name)
	}
	_, err := r.Var(&intArrayValue{a: p}, name, shorthand, usage)
	return err
}

// UintArrayVar registers a fixed-length uint collection flag.
func (r *Registry) UintArrayVar(p []uint, name, shorthand, usage string) error {
	if len(p) == 0 {
		return programmerErrorf(ErrInvalidFlagName, "array flag %s needs a non-empty backing slice", name)
	}
	_, err := r.Var(&uintArrayValue{a: p}, name, shorthand, usage)
	return err
}

// Float64ArrayVar registers a fixed-length float64 collection flag.
func (r *Registry) Float64ArrayVar(p []float64, name, shorthand, usage string) error {
	if len(p) == 0 {
		return programmerErrorf(ErrInvalidFlagName, "array flag %s needs a non-empty backing slice", name)
	}
	_, err := r.Var(&float64ArrayValue{a: p}, name, shorthand, usage)
	return err
}

// StringArrayVar registers a fixed-length string collection flag.
func (r *Registry) StringArrayVar(p []string, name, shorthand, usage string) error {
	if len(p) == 0 {
		return programmerErrorf(ErrInvalidFlagName, "array flag %s needs a non-empty backing slice", name)
	}
	_, err := r.Var(&stringArrayValue{a: p}, name, shorthand, usage)
	return err
}

// SetDefault parses value through the flag's handle right away
// (mutating the caller storage) and records it as the display default
// for the usage message.
func (r *Registry) SetDefault(name, value string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	if err := flag.Value.Set(value); err != nil {
		return programmerErrorf(err, "default for --%s", name)
	}
	flag.DefValue = value
	return nil
}

// SetNoOptDefault records the value substituted when the flag appears
// on the command line with no explicit argument.  The text is not
// parsed until then.
func (r *Registry) SetNoOptDefault(name, value string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	flag.NoOptDefVal = value
	return nil
}

// AddAlias routes an additional name to an existing flag.
func (r *Registry) AddAlias(name, alias string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	if err := r.checkAlias(flag, alias); err != nil {
		return err
	}
	flag.Aliases = append(flag.Aliases, alias)
	r.aliases[alias] = flag
	return nil
}

// Deprecate marks a flag deprecated.  It keeps working but disappears
// from usage text, and every use warns with message.
func (r *Registry) Deprecate(name, message string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	if message == "" {
		return programmerErrorf(ErrInvalidFlagName, "deprecation message for --%s must be set", name)
	}
	flag.Deprecated = message
	return nil
}

// DeprecateShorthand marks only the shorthand deprecated: the flag
// stays in usage text but loses its shorthand column, and using the
// shorthand warns with message.
func (r *Registry) DeprecateShorthand(shorthand, message string) error {
	if !validShorthand(shorthand) {
		return programmerErrorf(ErrInvalidShorthand, "%q", shorthand)
	}
	flag, ok := r.shorthands[shorthand[0]]
	if !ok {
		return programmerErrorf(ErrUnknownFlag, "-%s", shorthand)
	}
	if message == "" {
		return programmerErrorf(ErrInvalidFlagName, "deprecation message for -%s must be set", shorthand)
	}
	flag.ShorthandDeprecated = message
	return nil
}

// Hide excludes a flag from usage text without otherwise changing it.
func (r *Registry) Hide(name string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	flag.Hidden = true
	return nil
}

// Annotate appends values to the ordered list stored under key,
// creating the list if needed.  Annotations are opaque to the
// registry; completion generators are the usual consumer.
func (r *Registry) Annotate(name, key string, values ...string) error {
	flag := r.Lookup(name)
	if flag == nil {
		return programmerErrorf(ErrUnknownFlag, "--%s", name)
	}
	if flag.Annotations == nil {
		flag.Annotations = make(map[string][]string)
	}
	flag.Annotations[key] = append(flag.Annotations[key], values...)
	return nil
}
