package citi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Kinds(t *testing.T) {
	cases := []struct {
		name string
		line string
		kind lexKind
	}{
		{"blank", "   ", lexBlank},
		{"comment", "! a comment", lexComment},
		{"comment no space", "!no space", lexComment},
		{"device", "#NA REGISTER 1", lexDevice},
		{"keyword", "CITIFILE A.01.00", lexKeyword},
		{"numeric pair", "1.0E9,-2.0E9", lexNumericPair},
		{"numeric single", "1.0E9", lexNumericSingle},
		{"other", "not a keyword line", lexOther},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := classify(c.line, 1)
			assert.Equal(t, c.kind, got.kind)
		})
	}
}

func TestClassify_Comment_StripsLeadingSpace(t *testing.T) {
	line := classify("! hello world", 1)
	assert.Equal(t, "hello world", line.text)

	line2 := classify("!hello world", 1)
	assert.Equal(t, "hello world", line2.text)
}

func TestClassify_Device_SplitsNameAndRest(t *testing.T) {
	line := classify("#NA SWEEP_TIME 9.999987E-2", 1)
	assert.Equal(t, "NA", line.device)
	assert.Equal(t, "SWEEP_TIME 9.999987E-2", line.rest)
}

func TestClassify_Keyword_SplitsKeywordAndRest(t *testing.T) {
	line := classify("VAR FREQ MAG 10", 1)
	assert.Equal(t, "VAR", line.keyword)
	assert.Equal(t, "FREQ MAG 10", line.rest)
}

func TestClassify_NumericPair_RejectsThirdField(t *testing.T) {
	line := classify("1.0,2.0,3.0", 1)
	assert.Equal(t, lexBadNumeric, line.kind)
}

func TestClassify_NumericPair_TrailingComma(t *testing.T) {
	line := classify("1.0,2.0,", 1)
	assert.Equal(t, lexBadNumeric, line.kind)
}

func TestClassify_CommaLine_NonNumeric_IsOther(t *testing.T) {
	line := classify("foo,bar", 1)
	assert.Equal(t, lexOther, line.kind)
}

func TestIsUpperKeyword(t *testing.T) {
	assert.True(t, isUpperKeyword("CITIFILE"))
	assert.True(t, isUpperKeyword("VAR_LIST_BEGIN"))
	assert.True(t, isUpperKeyword("SEG2"))
	assert.False(t, isUpperKeyword(""))
	assert.False(t, isUpperKeyword("Name"))
	assert.False(t, isUpperKeyword("A.01.00"))
}

func TestLineScanner_SkipsBlankLines_CRLF(t *testing.T) {
	src := "CITIFILE A.01.00\r\n\r\nNAME X\r\n"
	s := newLineScanner(strings.NewReader(src))

	l1, ok, err := s.next()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "CITIFILE", l1.keyword)

	l2, ok, err := s.next()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "NAME", l2.keyword)

	_, ok, err = s.next()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestParseReal_RejectsEmpty(t *testing.T) {
	_, ok := parseReal("")
	assert.False(t, ok)
}
