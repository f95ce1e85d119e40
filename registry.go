package oparse

import (
	"io"
	"os"
	"sort"

	"github.com/muir/nject"
)

// Registry owns a flat namespace of flag definitions and parses
// argument lists against them.  Create one with New, register entries,
// then call Parse (explicit tokens) or ParseArgs (the process argument
// vector).  Registries are not safe for concurrent mutation; callers
// needing that must serialize externally.
type Registry struct {
	name string

	defined    map[string]*Flag
	ordered    []*Flag          // insertion order; shares entries with defined
	aliases    map[string]*Flag // secondary index, non-owning
	shorthands map[byte]*Flag   // secondary index, non-owning

	actual       map[string]*Flag
	actualOrder  []*Flag
	sortedAll    []*Flag // lazily cached lexicographic view of ordered
	sortedActual []*Flag // lazily cached lexicographic view of actualOrder

	args          []string // positional arguments from the most recent parse
	argsLenAtDash int      // len(args) when -- was seen, or -1
	parsed        bool

	sortUsage     bool
	interspersed  bool
	ignoreUnknown bool
	exitOnError   bool
	helpShorthand bool

	output     io.Writer // nil means stderr; use out() accessor
	argSource  func() []string
	validator  Validate
	onParsed   func(*Registry, []string) error
	delayedErr error
}

// Validate is a subset of the Validate provided by
// https://github.com/go-playground/validator, allowing other
// implementations to be provided if desired.
type Validate interface {
	Struct(s interface{}) error
	StructPartial(s interface{}, fields ...string) error
}

// Option adjusts a Registry at construction time.
type Option func(*Registry) error

// WithOutput redirects usage text, warnings, and parse-failure
// messages away from stderr.
func WithOutput(w io.Writer) Option {
	return func(r *Registry) error {
		r.output = w
		return nil
	}
}

// WithArgSource replaces where ParseArgs finds its tokens.  The
// default reads the live process argument vector (os.Args[1:]); tests
// inject a fixed list instead.
func WithArgSource(fn func() []string) Option {
	return func(r *Registry) error {
		r.argSource = fn
		return nil
	}
}

// WithSortedUsage renders usage text in lexicographic instead of
// registration order.
func WithSortedUsage() Option {
	return func(r *Registry) error {
		r.sortUsage = true
		return nil
	}
}

// WithoutInterspersed stops flag scanning at the first positional
// token; it and everything after it become positional arguments.
func WithoutInterspersed() Option {
	return func(r *Registry) error {
		r.interspersed = false
		return nil
	}
}

// WithIgnoreUnknown silently skips unrecognized flags instead of
// failing, consuming an inferred value token where one seems to
// follow.
func WithIgnoreUnknown() Option {
	return func(r *Registry) error {
		r.ignoreUnknown = true
		return nil
	}
}

// WithExitOnError makes Parse print the failure and terminate the
// process with status 2, the conventional CLI ergonomic.  Without it
// errors return to the caller.
func WithExitOnError() Option {
	return func(r *Registry) error {
		r.exitOnError = true
		return nil
	}
}

// WithoutHelpShorthand stops -h from rendering usage text when no
// flag owns that shorthand.  --help always works.
func WithoutHelpShorthand() Option {
	return func(r *Registry) error {
		r.helpShorthand = false
		return nil
	}
}

// WithValidate supplies the validator used by Declare.
func WithValidate(v Validate) Option {
	return func(r *Registry) error {
		r.validator = v
		return nil
	}
}

// OnParsed binds an injection chain that runs after a successful
// parse.  The chain may consume *Registry and []string (the
// positional arguments).
func OnParsed(chain ...interface{}) Option {
	return func(r *Registry) error {
		return nject.Sequence("default-error-responder",
			nject.Provide("default-error", func() nject.TerminalError {
				return nil
			})).Append("on-parsed", chain...).Bind(&r.onParsed, nil)
	}
}

// New creates an empty registry.  Option errors are deferred to the
// first Parse so that call sites can stay terse.
func New(name string, options ...Option) *Registry {
	r := &Registry{
		name:          name,
		defined:       make(map[string]*Flag),
		aliases:       make(map[string]*Flag),
		shorthands:    make(map[byte]*Flag),
		actual:        make(map[string]*Flag),
		argsLenAtDash: -1,
		interspersed:  true,
		helpShorthand: true,
	}
	for _, option := range options {
		if err := option(r); err != nil && r.delayedErr == nil {
			r.delayedErr = err
		}
	}
	return r
}

// Name returns the name the registry was created with.
func (r *Registry) Name() string { return r.name }

func (r *Registry) out() io.Writer {
	if r.output == nil {
		return os.Stderr
	}
	return r.output
}

// Lookup resolves a flag by name or alias, returning nil if none
// exists.
func (r *Registry) Lookup(name string) *Flag {
	if flag, ok := r.defined[name]; ok {
		return flag
	}
	return r.aliases[name]
}

// HasFlags reports whether any flags are defined.
func (r *Registry) HasFlags() bool { return len(r.ordered) > 0 }

// HasAvailableFlags reports whether any defined flag would appear in
// usage text.
func (r *Registry) HasAvailableFlags() bool {
	for _, flag := range r.ordered {
		if !flag.Hidden && flag.Deprecated == "" {
			return true
		}
	}
	return false
}

// The sorted views are caches over the insertion-ordered lists,
// recomputed only when the underlying count changed.  Entries are
// never removed individually, so a length comparison is a sufficient
// invalidation test.
func (r *Registry) sortedDefined() []*Flag {
	if len(r.sortedAll) != len(r.ordered) {
		r.sortedAll = sortFlags(r.ordered)
	}
	return r.sortedAll
}

func (r *Registry) sortedVisited() []*Flag {
	if len(r.sortedActual) != len(r.actualOrder) {
		r.sortedActual = sortFlags(r.actualOrder)
	}
	return r.sortedActual
}

func sortFlags(flags []*Flag) []*Flag {
	sorted := make([]*Flag, len(flags))
	copy(sorted, flags)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// VisitAll calls fn for every defined flag in lexicographic order,
// set or not.
func (r *Registry) VisitAll(fn func(*Flag)) {
	for _, flag := range r.sortedDefined() {
		fn(flag)
	}
}

// Visit calls fn in lexicographic order for only the flags set during
// the most recent parse.
func (r *Registry) Visit(fn func(*Flag)) {
	for _, flag := range r.sortedVisited() {
		fn(flag)
	}
}

// Visits returns how many times the named flag (or alias) was set
// during the most recent parse.  Unknown names count zero.
func (r *Registry) Visits(name string) int {
	flag := r.Lookup(name)
	if flag == nil {
		return 0
	}
	return flag.Visits
}

// Changed reports whether the named flag was explicitly set during
// the most recent parse.
func (r *Registry) Changed(name string) bool {
	return r.Visits(name) > 0
}

// NFlag returns the number of flags set during the most recent parse.
func (r *Registry) NFlag() int { return len(r.actual) }

// Args returns the positional arguments collected by the most recent
// parse.
func (r *Registry) Args() []string { return r.args }

// NArg is the number of positional arguments.
func (r *Registry) NArg() int { return len(r.args) }

// Arg returns the i'th positional argument, or "" when out of range.
func (r *Registry) Arg(i int) string {
	if i < 0 || i >= len(r.args) {
		return ""
	}
	return r.args[i]
}

// ArgsLenAtDash returns how many positional arguments had been
// collected when the -- terminator was seen, or -1 if there was none.
func (r *Registry) ArgsLenAtDash() int { return r.argsLenAtDash }

// Parsed reports whether Parse has completed at least once.
func (r *Registry) Parsed() bool { return r.parsed }
