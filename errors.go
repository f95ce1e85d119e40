package oparse

import (
	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

// ErrHelp is returned by Parse when usage text was requested with
// --help (or -h when the help shorthand is enabled).  It is a signal,
// not a failure: by the time it is returned the usage text has already
// been written to the registry's output and the caller should exit
// cleanly.
var ErrHelp = errors.New("help requested")

// Definition errors.  These are programmer mistakes made while
// registering flags and are always surfaced synchronously to the
// registrar, wrapped with commonerrors.ProgrammerError.
var (
	ErrDuplicateName      = errors.New("flag name already registered")
	ErrDuplicateShorthand = errors.New("flag shorthand already registered")
	ErrInvalidFlagName    = errors.New("invalid flag name")
	ErrInvalidShorthand   = errors.New("invalid flag shorthand")
	ErrTypeMismatch       = errors.New("flag has a different type")
)

// User-input errors.  These are produced per-token during parsing and
// are wrapped with commonerrors.UsageError.
var (
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrMissingArgument = errors.New("flag needs an argument")
	ErrCannotParse     = errors.New("bad flag syntax")
)

// Codec errors.  Value implementations return these (wrapped with
// context) when a flag argument cannot be converted.
var (
	ErrEmptyString      = errors.New("empty string")
	ErrOverflow         = errors.New("value out of range")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidEnumName  = errors.New("no enum member with that name")
	ErrInvalidEnumTag   = errors.New("no enum member with that tag")
	ErrNotEnoughItems   = errors.New("not enough items")
	ErrTooManyItems     = errors.New("too many items")
)

// IsHelp reports if err is the usage-was-requested signal.
func IsHelp(err error) bool {
	return errors.Is(err, ErrHelp)
}

func usageErrorf(kind error, format string, args ...interface{}) error {
	return commonerrors.UsageError(errors.Wrapf(kind, format, args...))
}

func programmerErrorf(kind error, format string, args ...interface{}) error {
	return commonerrors.ProgrammerError(errors.Wrapf(kind, format, args...))
}

func libraryErrorf(kind error, format string, args ...interface{}) error {
	return commonerrors.LibraryError(errors.Wrapf(kind, format, args...))
}
