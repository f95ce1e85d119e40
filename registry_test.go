package oparse

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationConflicts(t *testing.T) {
	r := New("test")
	var a, b string
	require.NoError(t, r.StringVar(&a, "output", "o", "", "first"))

	err := r.StringVar(&b, "output", "", "", "again")
	assert.True(t, errors.Is(err, ErrDuplicateName), "name reuse: %v", err)

	err = r.StringVar(&b, "other", "o", "", "shorthand reuse")
	assert.True(t, errors.Is(err, ErrDuplicateShorthand), "shorthand reuse: %v", err)

	err = r.StringVar(&b, "9lives", "", "", "bad name")
	assert.True(t, errors.Is(err, ErrInvalidFlagName), "leading digit: %v", err)

	err = r.StringVar(&b, "", "", "", "bad name")
	assert.True(t, errors.Is(err, ErrInvalidFlagName), "empty name: %v", err)

	err = r.StringVar(&b, "long", "xy", "", "bad shorthand")
	assert.True(t, errors.Is(err, ErrInvalidShorthand), "two letters: %v", err)

	err = r.StringVar(&b, "digit", "9", "", "bad shorthand")
	assert.True(t, errors.Is(err, ErrInvalidShorthand), "digit: %v", err)
}

func TestAliasSharesStorage(t *testing.T) {
	r := New("test")
	var output string
	require.NoError(t, r.StringVar(&output, "output", "", "", "write `filename`"))
	require.NoError(t, r.AddAlias("output", "path"))

	require.NoError(t, r.SetText("path", "x"))
	assert.Equal(t, "x", output, "alias routes to the same storage")
	assert.Equal(t, 1, r.Visits("output"), "setting by alias counts a visit")
	assert.Equal(t, 1, r.Visits("path"), "visits visible under either name")

	got, err := r.GetText("path")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	assert.Same(t, r.Lookup("output"), r.Lookup("path"))
}

func TestAliasConflicts(t *testing.T) {
	r := New("test")
	var a, b string
	require.NoError(t, r.StringVar(&a, "output", "", "", ""))
	require.NoError(t, r.StringVar(&b, "input", "", "", ""))

	err := r.AddAlias("output", "input")
	assert.True(t, errors.Is(err, ErrDuplicateName), "alias shadows a name: %v", err)

	require.NoError(t, r.AddAlias("output", "path"))
	err = r.AddAlias("input", "path")
	assert.True(t, errors.Is(err, ErrDuplicateName), "alias shadows an alias: %v", err)

	err = r.AddAlias("output", "output")
	assert.True(t, errors.Is(err, ErrDuplicateName), "alias repeats own name: %v", err)

	var c string
	err = r.StringVar(&c, "path", "", "", "")
	assert.True(t, errors.Is(err, ErrDuplicateName), "new flag shadows an alias: %v", err)
}

func TestAliasParsing(t *testing.T) {
	r := New("test")
	var output string
	require.NoError(t, r.StringVar(&output, "output", "", "", ""))
	require.NoError(t, r.AddAlias("output", "path"))
	require.NoError(t, r.Parse([]string{"--path", "file.txt"}))
	assert.Equal(t, "file.txt", output)
	assert.Equal(t, 1, r.Visits("output"))
}

func TestTypedGetters(t *testing.T) {
	r := New("test")
	var s string
	var b bool
	var n int
	var u uint
	var f float64
	require.NoError(t, r.StringVar(&s, "name", "", "", ""))
	require.NoError(t, r.BoolVar(&b, "flag", "", false, ""))
	require.NoError(t, r.IntVar(&n, "count", "", 0, ""))
	require.NoError(t, r.UintVar(&u, "size", "", 0, ""))
	require.NoError(t, r.Float64Var(&f, "ratio", "", 0, ""))
	require.NoError(t, r.Parse([]string{
		"--name", "x", "--flag", "--count", "-3", "--size", "7", "--ratio", "0.5",
	}))

	got, err := r.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	gotBool, err := r.GetBool("flag")
	require.NoError(t, err)
	assert.True(t, gotBool)

	gotInt, err := r.GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, -3, gotInt)

	gotUint, err := r.GetUint("size")
	require.NoError(t, err)
	assert.Equal(t, uint(7), gotUint)

	gotFloat, err := r.GetFloat64("ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, gotFloat)

	_, err = r.GetInt("name")
	assert.True(t, errors.Is(err, ErrTypeMismatch), "kind: %v", err)
	_, err = r.GetString("missing")
	assert.True(t, errors.Is(err, ErrUnknownFlag), "kind: %v", err)
}

func TestTypedSetters(t *testing.T) {
	r := New("test")
	var s string
	var b bool
	var n int
	var n64 int64
	var u uint
	var u64 uint64
	var f float64
	require.NoError(t, r.StringVar(&s, "name", "", "", ""))
	require.NoError(t, r.BoolVar(&b, "flag", "", false, ""))
	require.NoError(t, r.IntVar(&n, "count", "", 0, ""))
	require.NoError(t, r.Int64Var(&n64, "big", "", 0, ""))
	require.NoError(t, r.UintVar(&u, "size", "", 0, ""))
	require.NoError(t, r.Uint64Var(&u64, "huge", "", 0, ""))
	require.NoError(t, r.Float64Var(&f, "ratio", "", 0, ""))

	require.NoError(t, r.SetString("name", "x"))
	require.NoError(t, r.SetBool("flag", true))
	require.NoError(t, r.SetInt("count", -3))
	require.NoError(t, r.SetInt64("big", -1<<40))
	require.NoError(t, r.SetUint("size", 7))
	require.NoError(t, r.SetUint64("huge", 1<<40))
	require.NoError(t, r.SetFloat64("ratio", 0.5))

	assert.Equal(t, "x", s)
	assert.True(t, b)
	assert.Equal(t, -3, n)
	assert.Equal(t, int64(-1<<40), n64)
	assert.Equal(t, uint(7), u)
	assert.Equal(t, uint64(1<<40), u64)
	assert.Equal(t, 0.5, f)

	assert.Equal(t, 1, r.Visits("name"), "typed sets count a visit")

	got64, err := r.GetInt64("big")
	require.NoError(t, err)
	assert.Equal(t, int64(-1<<40), got64)

	gotU64, err := r.GetUint64("huge")
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), gotU64)

	err = r.SetInt("name", 1)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "kind: %v", err)
	assert.Equal(t, "x", s, "a rejected set changes nothing")

	err = r.SetString("missing", "x")
	assert.True(t, errors.Is(err, ErrUnknownFlag), "kind: %v", err)
}

func TestVisitOrder(t *testing.T) {
	r := New("test")
	var a, b, c bool
	require.NoError(t, r.BoolVar(&a, "zebra", "", false, ""))
	require.NoError(t, r.BoolVar(&b, "alpha", "", false, ""))
	require.NoError(t, r.BoolVar(&c, "middle", "", false, ""))
	require.NoError(t, r.Parse([]string{"--zebra", "--alpha"}))

	var all []string
	r.VisitAll(func(f *Flag) { all = append(all, f.Name) })
	assert.Equal(t, []string{"alpha", "middle", "zebra"}, all, "every flag, sorted")

	var visited []string
	r.Visit(func(f *Flag) { visited = append(visited, f.Name) })
	assert.Equal(t, []string{"alpha", "zebra"}, visited, "only the set flags, sorted")

	assert.True(t, r.Changed("zebra"))
	assert.False(t, r.Changed("middle"))
	assert.Equal(t, 2, r.NFlag())
}

func TestSetDefault(t *testing.T) {
	r := New("test")
	var count int
	require.NoError(t, r.IntVar(&count, "count", "", 0, ""))
	require.NoError(t, r.SetDefault("count", "42"))
	assert.Equal(t, 42, count, "default applied immediately")
	assert.Equal(t, "42", r.Lookup("count").DefValue)
	assert.Contains(t, r.Usage(), "(default 42)")

	err := r.SetDefault("count", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCharacter), "bad default text: %v", err)
}

func TestAnnotate(t *testing.T) {
	r := New("test")
	var output string
	require.NoError(t, r.StringVar(&output, "output", "", "", ""))
	require.NoError(t, r.Annotate("output", "completion", "file"))
	require.NoError(t, r.Annotate("output", "completion", "dir"))
	assert.Equal(t, []string{"file", "dir"}, r.Lookup("output").Annotations["completion"],
		"values append in order")

	err := r.Annotate("missing", "k", "v")
	assert.True(t, errors.Is(err, ErrUnknownFlag), "kind: %v", err)
}

func TestPositionalAccessors(t *testing.T) {
	r := New("test")
	require.NoError(t, r.Parse([]string{"one", "two"}))
	assert.Equal(t, 2, r.NArg())
	assert.Equal(t, "one", r.Arg(0))
	assert.Equal(t, "two", r.Arg(1))
	assert.Equal(t, "", r.Arg(2), "out of range is empty")
	assert.Equal(t, "", r.Arg(-1))
}

func TestHasFlags(t *testing.T) {
	r := New("test")
	assert.False(t, r.HasFlags())
	assert.False(t, r.HasAvailableFlags())

	var v bool
	require.NoError(t, r.BoolVar(&v, "verbose", "", false, ""))
	assert.True(t, r.HasFlags())
	assert.True(t, r.HasAvailableFlags())

	require.NoError(t, r.Hide("verbose"))
	assert.True(t, r.HasFlags())
	assert.False(t, r.HasAvailableFlags(), "hidden flags are not available")
}

func TestOptionErrorsAreDelayed(t *testing.T) {
	boom := errors.New("bad option")
	r := New("test", Option(func(*Registry) error { return boom }))
	err := r.Parse(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom), "first option error surfaces at Parse: %v", err)
}

func TestDeprecateValidation(t *testing.T) {
	r := New("test")
	var v bool
	require.NoError(t, r.BoolVar(&v, "verbose", "v", false, ""))

	err := r.Deprecate("verbose", "")
	require.Error(t, err, "deprecation needs a message")

	err = r.Deprecate("missing", "gone")
	assert.True(t, errors.Is(err, ErrUnknownFlag), "kind: %v", err)

	err = r.DeprecateShorthand("x", "gone")
	assert.True(t, errors.Is(err, ErrUnknownFlag), "kind: %v", err)

	err = r.DeprecateShorthand("xy", "gone")
	assert.True(t, errors.Is(err, ErrInvalidShorthand), "kind: %v", err)
}
