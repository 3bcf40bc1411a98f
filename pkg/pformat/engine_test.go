package pformat

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainTemplate = "{0} {2:yyyy-MM-dd} {1}"

var chainDate = time.Date(1992, time.February, 18, 0, 0, 0, 0, time.UTC)

func TestFormatBlankTemplate(t *testing.T) {
	testCases := []struct {
		name     string
		template string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tab", "\t"},
		{"newlines", "\r\n\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Format(tc.template, " ")
			require.NoError(t, err)
			assert.Equal(t, "", result)

			result, err = FormatWith(tc.template, "BOOM")
			require.NoError(t, err)
			assert.Equal(t, "", result)
		})
	}
}

func TestFormatNoArgs(t *testing.T) {
	result, err := Format(chainTemplate)
	require.NoError(t, err)
	assert.Equal(t, chainTemplate, result)

	result, err = FormatWith("{0} {1}")
	require.NoError(t, err)
	assert.Equal(t, "{0} {1}", result)
}

func TestFormatPartialPasses(t *testing.T) {
	first, err := Format(chainTemplate, 42)
	require.NoError(t, err)
	assert.Equal(t, "42 {1:yyyy-MM-dd} {0}", first)

	second, err := Format(first, 50*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "42 {0:yyyy-MM-dd} 00:00:50", second)

	third, err := Format(second, chainDate)
	require.NoError(t, err)
	assert.Equal(t, "42 1992-02-18 00:00:50", third)

	single, err := Format(chainTemplate, 42, 50*time.Second, chainDate)
	require.NoError(t, err)
	assert.Equal(t, single, third)
}

func TestFormatAlignment(t *testing.T) {
	testCases := []struct {
		template string
		expected string
	}{
		{"{0,10}", "        42"},
		{"{0,-10}", "42        "},
		{"{0,1}", "42"},
		{"{0,-2}", "42"},
		{"{0,0}", "42"},
		{"[{0,6:N1}]", "[  42.0]"},
		{"[{0,-6:D3}]", "[042   ]"},
	}

	for _, tc := range testCases {
		t.Run(tc.template, func(t *testing.T) {
			result, err := Format(tc.template, 42)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestFormatMixedSpecs(t *testing.T) {
	result, err := Format("{0}\t{0,-10}\t{0:C2}\t{0,10:N3}", 42)
	require.NoError(t, err)
	assert.Equal(t, "42\t42        \t$42.00\t    42.000", result)
}

func TestFormatRenumberKeepsAlignmentAndSpec(t *testing.T) {
	result, err := Format("{0} {1,-05:N2} {2,8}", "x")
	require.NoError(t, err)
	assert.Equal(t, "x {0,-05:N2} {1,8}", result)

	result, err = Format(result, 3.14159, "y")
	require.NoError(t, err)
	assert.Equal(t, "x 3.14         y", result)
}

func TestFormatRepeatedIndex(t *testing.T) {
	result, err := Format("{1}-{0}-{1}", "a")
	require.NoError(t, err)
	assert.Equal(t, "{0}-a-{0}", result)

	result, err = Format(result, "b")
	require.NoError(t, err)
	assert.Equal(t, "b-a-b", result)
}

func TestFormatLeavesNonPlaceholdersAlone(t *testing.T) {
	testCases := []struct {
		name     string
		template string
		expected string
	}{
		{"named braces", "{a} {0}", "{a} 1"},
		{"unterminated", "{0 {0}", "{0 1"},
		{"spec with newline", "{0:ab\ncd}", "{0:ab\ncd}"},
		{"empty spec", "{0:}", "{0:}"},
		{"space before index", "{ 0}", "{ 0}"},
		{"extra args ignored", "{0}", "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Format(tc.template, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestFormatEscapedBracesAreNotSupported(t *testing.T) {
	result, err := Format("{{0}}", 7)
	require.NoError(t, err)
	assert.Equal(t, "{7}", result)
}

func TestFormatWithEscapedBracesAreNotSupported(t *testing.T) {
	result, err := FormatWith("{{0}}", 7)
	require.NoError(t, err)
	assert.Equal(t, "{7}", result)

	result, err = FormatWith("{{0}} {{1}}", 7)
	require.NoError(t, err)
	assert.Equal(t, "{7} {{0}}", result)
}

func TestFormatNilArgument(t *testing.T) {
	result, err := Format("[{0}][{1,3}]", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[][   ]", result)
}

func TestFormatMalformedIndex(t *testing.T) {
	f := New()

	t.Run("synthetic token", func(t *testing.T) {
		raw := rawToken{start: 2, end: 6, text: "{x1}", index: "x1"}
		_, err := f.substitute("a {x1} b", []rawToken{raw}, []any{1}, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedIndex))

		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "{x1}", fe.Token)
		assert.Equal(t, 2, fe.Offset)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := Format("{99999999999999999999}", 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedIndex))
		assert.False(t, errors.Is(err, ErrMalformedAlignment))
	})

	t.Run("overflow in legacy grammar", func(t *testing.T) {
		_, err := FormatWith("{0} {99999999999999999999}", 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedIndex))
	})

	t.Run("negative index", func(t *testing.T) {
		raw := rawToken{start: 0, end: 4, text: "{-1}", index: "-1"}
		_, err := f.substitute("{-1}", []rawToken{raw}, []any{1}, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIndexRange))
		assert.Contains(t, err.Error(), "negative index")
	})
}

func TestFormatMalformedAlignment(t *testing.T) {
	_, err := Format("{0,2000000}", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedAlignment))
}

func TestFormatUnsupportedSpec(t *testing.T) {
	_, err := Format("value: {0:D}", 1.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSpec))

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "{0:D}", fe.Token)
	assert.Equal(t, 7, fe.Offset)
	assert.Contains(t, err.Error(), "float64")
}

func TestFormatWith(t *testing.T) {
	testCases := []struct {
		name     string
		template string
		args     []any
		expected string
	}{
		{"fast path", "{0} {1}", []any{"Hello", "World"}, "Hello World"},
		{"sentence", "The answer to life, the universe, and {0} is {1}.", []any{"everything", 42}, "The answer to life, the universe, and everything is 42."},
		{"full grammar in fast path", "{0:C2}", []any{125}, "$125.00"},
		{"extra args", "{0} {1}", []any{42, "Cake", "taco"}, "42 Cake"},
		{"partial", "{0} {1} {2}", []any{42}, "42 {0} {1}"},
		{"partial two", "Number = {0}, String = {1}", []any{42}, "Number = 42, String = {0}"},
		{"by document order", "{2} {0} {1}", []any{"x"}, "x {0} {1}"},
		{"spec ignored on partial path", "{0} {1} {2}", []any{1.5}, "1.5 {0} {1}"},
		{"full tokens untouched on partial path", "{0} {1:C2} {1} {2}", []any{"a"}, "a {1:C2} {0} {1}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := FormatWith(tc.template, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestFormatWithChain(t *testing.T) {
	result, err := FormatWith("{0} {1} {2}", 42)
	require.NoError(t, err)
	assert.Equal(t, "42 {0} {1}", result)

	result, err = FormatWith(result, "Cake")
	require.NoError(t, err)
	assert.Equal(t, "42 Cake {0}", result)

	result, err = FormatWith(result, chainDate)
	require.NoError(t, err)
	assert.Equal(t, "42 Cake 2/18/1992 12:00:00 AM", result)
}

func TestFormatWithFastPathIndexRange(t *testing.T) {
	_, err := FormatWith("{0:C2} {1}", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexRange))

	var re *IndexRangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 1, re.Index)
	assert.Equal(t, 1, re.Args)
}

func TestFormatWithReplaceModes(t *testing.T) {
	testCases := []struct {
		name     string
		template string
		args     []any
		bySpan   string
		byValue  string
	}{
		{"distinct tokens agree", "{0} {1} {2}", []any{42}, "42 {0} {1}", "42 {0} {1}"},
		{"duplicate tokens", "{0} {0} {1}", []any{"a"}, "a {0} {1}", "a a {1}"},
		{"renumbered token hit again", "{1} {2} {0}", []any{"a"}, "a {0} {1}", "a {1} {1}"},
		{"argument text hit again", "{0} {1} {2}", []any{"{1}"}, "{1} {0} {1}", "{0} {0} {1}"},
	}

	span := New(WithReplaceMode(ReplaceBySpan))
	value := New(WithReplaceMode(ReplaceByValue))

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := span.FormatWith(tc.template, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.bySpan, result, "span mode")

			result, err = value.FormatWith(tc.template, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.byValue, result, "value mode")
		})
	}
}

func TestReplaceModeString(t *testing.T) {
	testCases := []struct {
		mode     ReplaceMode
		expected string
	}{
		{ReplaceBySpan, "span"},
		{ReplaceByValue, "value"},
		{ReplaceMode(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.mode.String())
		})
	}

	m, ok := ParseReplaceMode("legacy")
	assert.True(t, ok)
	assert.Equal(t, ReplaceByValue, m)

	_, ok = ParseReplaceMode("bogus")
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	results, err := Chain(chainTemplate, []any{42}, []any{50 * time.Second}, []any{chainDate})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"42 {1:yyyy-MM-dd} {0}",
		"42 {0:yyyy-MM-dd} 00:00:50",
		"42 1992-02-18 00:00:50",
	}, results)
}

func TestChainReportsFailingPass(t *testing.T) {
	results, err := Chain("{0} {1:D}", []any{"ok"}, []any{1.5})
	require.Error(t, err)
	assert.Equal(t, []string{"ok {0:D}"}, results)

	var pe *PassError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Pass)
	assert.True(t, errors.Is(err, ErrUnsupportedSpec))
	assert.Contains(t, err.Error(), "pass 2")
}

func TestMustFormat(t *testing.T) {
	assert.Equal(t, "a-b", MustFormat("{0}-{1}", "a", "b"))
	assert.Panics(t, func() {
		MustFormat("{0:X}", 1.5)
	})
}

func TestFormatterLogsRenumbering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := New(WithLogger(logger))

	result, err := f.Format("{0} {1}", "x")
	require.NoError(t, err)
	assert.Equal(t, "x {0}", result)
	assert.Contains(t, buf.String(), "placeholder renumbered")
	assert.Contains(t, buf.String(), "new_index=0")
}

func TestFormatterCulture(t *testing.T) {
	de, err := ParseCulture("de-DE")
	require.NoError(t, err)

	f := New(WithCulture(de))
	assert.Same(t, de, f.Culture())

	result, err := f.Format("{0:N2}", 1234.5)
	require.NoError(t, err)
	assert.Equal(t, "1.234,50", result)

	assert.Same(t, EnglishUS, New(WithCulture(nil)).Culture())
}
