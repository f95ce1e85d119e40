package oparse

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// unquoteUsage extracts a back-quoted placeholder name from a flag's
// usage message.  Given "a `file` to read" it returns ("file", "a
// file to read").  Without back quotes the placeholder is derived
// from the value's type name, empty for booleans.
func unquoteUsage(flag *Flag) (name string, usage string) {
	usage = flag.Usage
	for i := 0; i < len(usage); i++ {
		if usage[i] == '`' {
			for j := i + 1; j < len(usage); j++ {
				if usage[j] == '`' {
					name = usage[i+1 : j]
					usage = usage[:i] + name + usage[j+1:]
					return name, usage
				}
			}
			break // only one back quote; fall back to the type name
		}
	}

	name = flag.Value.Type()
	switch name {
	case "bool":
		name = ""
	case "float64":
		name = "float"
	case "float64s":
		name = "floats"
	case "int64":
		name = "int"
	case "uint64":
		name = "uint"
	}
	return name, usage
}

// defaultIsZeroValue reports whether the recorded default would be
// noise in the usage text.
func (f *Flag) defaultIsZeroValue() bool {
	switch f.DefValue {
	case "", "0", "false":
		return true
	}
	return false
}

// argumentSuffix renders the placeholder after the left column:
// "<placeholder>" when a value is required, "[placeholder=default]"
// when the flag may appear bare.  String and enum defaults are
// quoted; booleans whose bare value is plain "true" get no suffix at
// all.
func argumentSuffix(flag *Flag, placeholder string) string {
	if placeholder == "" {
		if flag.Value.Type() == "bool" && flag.NoOptDefVal != "true" && flag.NoOptDefVal != "" {
			return fmt.Sprintf(" [=%s]", flag.NoOptDefVal)
		}
		return ""
	}
	if flag.NoOptDefVal == "" {
		return " <" + placeholder + ">"
	}
	switch flag.Value.Type() {
	case "string", "enum":
		return fmt.Sprintf(" [%s=%q]", placeholder, flag.NoOptDefVal)
	default:
		return fmt.Sprintf(" [%s=%s]", placeholder, flag.NoOptDefVal)
	}
}

// usageOrder returns the entries in the order they should render.
func (r *Registry) usageOrder() []*Flag {
	if r.sortUsage {
		return r.sortedDefined()
	}
	return r.ordered
}

// UsageWrapped renders the flag table word-wrapped to cols columns
// (0 disables wrapping).  Hidden entries and entries whose primary
// name is deprecated are omitted; a deprecated shorthand loses only
// its column.  Rendering has no side effects, so repeated calls
// produce identical text.
func (r *Registry) UsageWrapped(cols int) string {
	buf := new(bytes.Buffer)

	lines := make([]string, 0, len(r.ordered))
	maxlen := 0
	for _, flag := range r.usageOrder() {
		if flag.Hidden || flag.Deprecated != "" {
			continue
		}

		var line string
		if flag.Shorthand != "" && flag.ShorthandDeprecated == "" {
			line = fmt.Sprintf("  -%s, --%s", flag.Shorthand, flag.Name)
		} else {
			line = fmt.Sprintf("      --%s", flag.Name)
		}

		placeholder, usage := unquoteUsage(flag)
		line += argumentSuffix(flag, placeholder)

		// This marker is replaced with alignment spacing once the
		// shared column width is known.
		line += "\x00"
		if len(line) > maxlen {
			maxlen = len(line)
		}

		line += usage
		lines = append(lines, line)
	}

	for i, flag := range visibleFlags(r.usageOrder()) {
		line := lines[i]
		sidx := strings.Index(line, "\x00")
		spacing := strings.Repeat(" ", maxlen-sidx)
		wrapped := wrapText(maxlen+2, cols, line[sidx+1:])
		// defaults and deprecation notes are appended after the
		// wrapped usage, never wrapped themselves
		if !flag.defaultIsZeroValue() {
			if flag.Value.Type() == "string" {
				wrapped += fmt.Sprintf(" (default %q)", flag.DefValue)
			} else {
				wrapped += fmt.Sprintf(" (default %s)", flag.DefValue)
			}
		}
		if flag.ShorthandDeprecated != "" {
			wrapped += fmt.Sprintf(" (shorthand -%s deprecated, %s)", flag.Shorthand, flag.ShorthandDeprecated)
		}
		fmt.Fprintln(buf, line[:sidx], spacing, wrapped)
	}

	return buf.String()
}

func visibleFlags(flags []*Flag) []*Flag {
	visible := make([]*Flag, 0, len(flags))
	for _, flag := range flags {
		if flag.Hidden || flag.Deprecated != "" {
			continue
		}
		visible = append(visible, flag)
	}
	return visible
}

// Usage renders the flag table with no wrapping.
func (r *Registry) Usage() string {
	return r.UsageWrapped(0)
}

// PrintUsage writes a usage header and the flag table to the
// registry's output, wrapping to the terminal width when the output
// is one.
func (r *Registry) PrintUsage() {
	w := r.out()
	cols := 0
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil {
			cols = tw
		}
	}
	fmt.Fprintf(w, "Usage of %s:\n", r.name)
	fmt.Fprint(w, r.UsageWrapped(cols))
}

// splitLine splits s on whitespace into an initial piece at most
// width runes long and the remainder.  It will run slop over width
// when that swallows the whole string, avoiding a short orphan word
// on the final line.
func splitLine(width, slop int, s string) (string, string) {
	if width+slop > len(s) {
		return s, ""
	}
	w := strings.LastIndexAny(s[:width], " \t")
	if w <= 0 {
		return s, ""
	}
	return s[:w], s[w+1:]
}

// wrapText wraps s to total width cols with a hanging indent of
// indent spaces.  The first line is assumed already indented by the
// caller.  cols == 0 disables wrapping.
func wrapText(indent, cols int, s string) string {
	if cols == 0 {
		return s
	}

	budget := cols - indent
	var out string

	// Too narrow for sensible wrapping: restart as a block on the
	// next line with a smaller indent.
	if budget < 24 {
		indent = 16
		budget = cols - indent
		out = "\n" + strings.Repeat(" ", indent)
	}
	// Still too narrow: give up on wrapping entirely.
	if budget < 24 {
		return s
	}

	const slop = 5
	budget -= slop

	line, rest := splitLine(budget, slop, s)
	out += line
	for rest != "" {
		line, rest = splitLine(budget, slop, rest)
		out += "\n" + strings.Repeat(" ", indent) + line
	}
	return out
}
