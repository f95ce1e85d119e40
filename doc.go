// Obligatory // comment

/*
Package oparse is a command-line flag registry with POSIX/GNU-style
conventions: long flags, one-letter shorthands, joined shorthand
clusters, and the -- terminator.

The basics start with New().  Register flags with the typed *Var
functions (or Var / AddFlag / Declare for anything custom), pointing
each one at storage the caller owns:

	var verbose bool
	var output string
	reg := oparse.New("example")
	reg.BoolVar(&verbose, "verbose", "v", false, "chatty output")
	reg.StringVar(&output, "output", "o", "", "write to `filename`")
	err := reg.ParseArgs()

Accepted command-line forms:

	--name
	--name value
	--name=value
	-f
	-f value
	-f=value
	-fvalue
	-abc        // joined boolean cluster

Flags and positional arguments may be interspersed (disable with
WithoutInterspersed).  A literal -- stops flag interpretation; what
follows is positional verbatim.  --help (and -h, unless a flag owns
that shorthand or WithoutHelpShorthand was used) renders usage text
and makes Parse return ErrHelp, a signal rather than a failure.

Integer flags accept decimal, 0x hex, 0o octal, and 0b binary with an
optional sign.  Boolean flags accept 1/0, t/f, y/n, yes/no,
true/false in the usual casings.  Enum flags match member names
case-sensitively, or the integer tag when the input starts with a
digit.  Fixed-length array flags take comma-separated items and
insist on the exact count.

A flag's usage message may name its argument placeholder in back
quotes ("write to `filename`"); otherwise the placeholder is derived
from the value's type.  Usage text aligns all flags to a shared
column and word-wraps to a requested width.

Errors split into two families: definition errors (duplicate or
malformed names, registered-type mismatches) are programmer mistakes
and always return to the registrar; user-input errors (unknown flag,
missing argument, unparseable value) return from Parse, or print and
exit the process when WithExitOnError is set.  Both families are
classified with github.com/muir/commonerrors and can be tested with
errors.Is against the exported sentinel kinds.
*/
package oparse
