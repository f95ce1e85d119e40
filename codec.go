package oparse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// The text<->value conversions shared by the Value implementations in
// value.go.  Integers accept decimal, 0x/0X hex, 0o/0O octal and
// 0b/0B binary with an optional leading sign.  Errors are always one
// of the codec sentinels from errors.go, wrapped with the offending
// text.

func numError(s string, err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
		return errors.Wrapf(ErrOverflow, "%q", s)
	}
	return errors.Wrapf(ErrInvalidCharacter, "%q", s)
}

func parseInt(s string, bitSize int) (int64, error) {
	if s == "" {
		return 0, errors.WithStack(ErrEmptyString)
	}
	n, err := strconv.ParseInt(s, 0, bitSize)
	if err != nil {
		return 0, numError(s, err)
	}
	return n, nil
}

func parseUint(s string, bitSize int) (uint64, error) {
	if s == "" {
		return 0, errors.WithStack(ErrEmptyString)
	}
	n, err := strconv.ParseUint(s, 0, bitSize)
	if err != nil {
		return 0, numError(s, err)
	}
	return n, nil
}

// parseFloat accepts decimal and scientific notation plus the special
// spellings inf, -inf, and nan (any case).
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.WithStack(ErrEmptyString)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, numError(s, err)
	}
	return n, nil
}

var boolLiterals = map[string]bool{
	"1": true, "t": true, "T": true, "y": true, "Y": true,
	"yes": true, "YES": true, "true": true, "TRUE": true,
	"0": false, "f": false, "F": false, "n": false, "N": false,
	"no": false, "NO": false, "false": false, "FALSE": false,
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, errors.WithStack(ErrEmptyString)
	}
	b, ok := boolLiterals[s]
	if !ok {
		return false, errors.Wrapf(ErrInvalidCharacter, "%q", s)
	}
	return b, nil
}

// parseRune decodes exactly one UTF-8 scalar value.  Unlike the
// integer parsers it never treats the text as a numeric literal.
func parseRune(s string) (rune, error) {
	if s == "" {
		return 0, errors.WithStack(ErrEmptyString)
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return 0, errors.Wrapf(ErrInvalidCharacter, "%q", s)
	}
	if size != len(s) {
		return 0, errors.Wrapf(ErrTooManyItems, "%q is more than one character", s)
	}
	return r, nil
}

// splitItems splits comma-separated collection text and requires
// exactly want items.
func splitItems(s string, want int) ([]string, error) {
	if s == "" {
		return nil, errors.WithStack(ErrEmptyString)
	}
	items := strings.Split(s, ",")
	switch {
	case len(items) < want:
		return nil, errors.Wrapf(ErrNotEnoughItems, "%q has %d items, need %d", s, len(items), want)
	case len(items) > want:
		return nil, errors.Wrapf(ErrTooManyItems, "%q has %d items, need %d", s, len(items), want)
	}
	return items, nil
}
