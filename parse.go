package oparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
)

// Parse dispatches an argument list (not including the program name)
// against the registered flags.  Repeated calls reset visit counts and
// re-derive the visited set and positional arguments.
//
// ErrHelp is returned after usage text was rendered in response to
// --help or -h; it is an early-exit signal, not a failure.
func (r *Registry) Parse(arguments []string) error {
	if r.delayedErr != nil {
		return r.delayedErr
	}
	r.resetParse()
	r.parsed = true
	debugf("parsing %d tokens", len(arguments))
	err := r.parseAll(arguments)
	if err != nil {
		if errors.Is(err, ErrHelp) {
			return err
		}
		if r.exitOnError {
			fmt.Fprintln(r.out(), err)
			r.PrintUsage()
			os.Exit(2)
		}
		return err
	}
	if r.onParsed != nil {
		return r.onParsed(r, r.args)
	}
	return nil
}

// ParseArgs is the convenience entry point that reads the configured
// argument source, by default the live process argument vector.
func (r *Registry) ParseArgs() error {
	source := r.argSource
	if source == nil {
		source = func() []string { return os.Args[1:] }
	}
	return r.Parse(source())
}

// ParseString splits a shell-style command line into tokens and
// parses them.
func (r *Registry) ParseString(line string) error {
	words, err := shellquote.Split(line)
	if err != nil {
		return usageErrorf(ErrCannotParse, "split command line: %s", err)
	}
	return r.Parse(words)
}

func (r *Registry) resetParse() {
	for _, flag := range r.ordered {
		flag.Visits = 0
	}
	r.actual = make(map[string]*Flag)
	r.actualOrder = nil
	r.sortedActual = nil
	r.args = nil
	r.argsLenAtDash = -1
}

func (r *Registry) parseAll(args []string) error {
	for len(args) > 0 {
		s := args[0]
		args = args[1:]
		if len(s) < 2 || s[0] != '-' {
			// positional token
			if !r.interspersed {
				r.args = append(r.args, unquoteToken(s))
				for _, rest := range args {
					r.args = append(r.args, unquoteToken(rest))
				}
				debugf("stopping at first positional %q", s)
				return nil
			}
			r.args = append(r.args, unquoteToken(s))
			continue
		}
		var err error
		if s[1] == '-' {
			if len(s) == 2 {
				// "--" ends flag interpretation
				r.argsLenAtDash = len(r.args)
				r.args = append(r.args, args...)
				debugf("terminator at %d positionals", r.argsLenAtDash)
				return nil
			}
			args, err = r.parseLongArg(s, args)
		} else {
			args, err = r.parseShortArg(s, args)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// looksLikeFlag decides whether an unknown flag's following token is a
// value to swallow or the next flag.
func looksLikeFlag(s string) bool {
	return len(s) > 1 && s[0] == '-'
}

func (r *Registry) parseLongArg(s string, args []string) ([]string, error) {
	name := s[2:]
	if len(name) == 0 || name[0] == '-' || name[0] == '=' {
		return args, usageErrorf(ErrCannotParse, "%s", s)
	}

	value := ""
	hasValue := false
	if i := strings.Index(name, "="); i != -1 {
		value = name[i+1:]
		name = name[:i]
		hasValue = true
	}

	flag := r.Lookup(name)
	if flag == nil {
		if name == "help" {
			r.PrintUsage()
			return args, errors.WithStack(ErrHelp)
		}
		if r.ignoreUnknown {
			debugf("ignoring unknown --%s", name)
			if !hasValue && len(args) > 0 && !looksLikeFlag(args[0]) {
				args = args[1:]
			}
			return args, nil
		}
		return args, usageErrorf(ErrUnknownFlag, "--%s", name)
	}

	switch {
	case hasValue:
	case flag.NoOptDefVal != "":
		value = flag.NoOptDefVal
	case len(args) > 0:
		value = args[0]
		args = args[1:]
	default:
		return args, usageErrorf(ErrMissingArgument, "--%s", name)
	}
	return args, r.setFlag(flag, value, s)
}

func (r *Registry) parseShortArg(s string, args []string) ([]string, error) {
	var err error
	shorthands := s[1:]
	for len(shorthands) > 0 {
		shorthands, args, err = r.parseSingleShort(shorthands, args, s)
		if err != nil {
			return args, err
		}
	}
	return args, nil
}

func (r *Registry) parseSingleShort(shorthands string, args []string, origArg string) (string, []string, error) {
	c := shorthands[0]
	rest := shorthands[1:]

	flag, ok := r.shorthands[c]
	if !ok {
		if c == 'h' && r.helpShorthand {
			r.PrintUsage()
			return "", args, errors.WithStack(ErrHelp)
		}
		if r.ignoreUnknown {
			debugf("ignoring unknown -%c in %s", c, origArg)
			hasValue := len(rest) > 0 && rest[0] == '='
			if !hasValue && len(args) > 0 && !looksLikeFlag(args[0]) {
				args = args[1:]
			}
			return "", args, nil
		}
		return "", args, usageErrorf(ErrUnknownFlag, "-%c in %s", c, origArg)
	}

	var value string
	switch {
	case len(rest) > 0 && rest[0] == '=':
		// -f=value: everything after = and the cluster is done
		value = rest[1:]
		rest = ""
	case flag.NoOptDefVal != "":
		value = flag.NoOptDefVal
	case len(rest) > 0:
		// -fvalue: the rest of the cluster is the value
		value = rest
		rest = ""
	case len(args) > 0:
		value = args[0]
		args = args[1:]
	default:
		return "", args, usageErrorf(ErrMissingArgument, "-%c in %s", c, origArg)
	}
	return rest, args, r.setFlag(flag, value, origArg)
}

var deprecationColor = color.New(color.FgYellow)

// setFlag applies one resolved value: blank substitution, codec
// parse, visit accounting, and deprecation warnings.
func (r *Registry) setFlag(flag *Flag, value, origArg string) error {
	value = unquoteToken(value)
	if strings.TrimSpace(value) == "" {
		switch {
		case flag.NoOptDefVal != "":
			value = flag.NoOptDefVal
		case flag.Value.Type() == "bool":
			value = "true"
		default:
			value = ""
		}
	}
	if err := flag.Value.Set(value); err != nil {
		if flag.Shorthand != "" {
			return usageErrorf(err, "invalid argument %q for -%s, --%s", value, flag.Shorthand, flag.Name)
		}
		return usageErrorf(err, "invalid argument %q for --%s", value, flag.Name)
	}
	if flag.Visits == 0 {
		r.actual[flag.Name] = flag
		r.actualOrder = append(r.actualOrder, flag)
	}
	flag.Visits++
	if flag.Deprecated != "" {
		deprecationColor.Fprintf(r.out(), "Flag --%s has been deprecated, %s\n", flag.Name, flag.Deprecated)
	}
	if flag.ShorthandDeprecated != "" && containsShorthand(origArg, flag.Shorthand) {
		deprecationColor.Fprintf(r.out(), "Flag shorthand -%s has been deprecated, %s\n",
			flag.Shorthand, flag.ShorthandDeprecated)
	}
	return nil
}

func containsShorthand(arg, shorthand string) bool {
	if shorthand == "" || strings.HasPrefix(arg, "--") {
		return false
	}
	arg = strings.SplitN(arg, "=", 2)[0]
	return strings.Contains(arg, shorthand)
}

// unquoteToken strips a single matching pair of surrounding quote
// characters left behind by shell-like pass-through.  Presentation
// convenience only, not a security boundary.
func unquoteToken(s string) string {
	if len(s) < 2 {
		return s
	}
	switch c := s[0]; c {
	case '\'', '"', '`':
		if s[len(s)-1] == c {
			return s[1 : len(s)-1]
		}
	}
	return s
}
