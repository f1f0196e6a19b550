package strutil

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_ShortStringsUnchanged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "", Truncate("", 5))
}

func TestTruncate_EllipsisCountedInMaxLen(t *testing.T) {
	t.Parallel()

	result := Truncate("abcdefghij", 7)
	assert.Equal(t, "abcd...", result)
	assert.Equal(t, 7, utf8.RuneCountInString(result))
}

func TestTruncate_ZeroAndNegativeMaxLen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "", Truncate("abc", -1))
}

func TestTruncate_MultiByteRunesNotSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
	}{
		{"emoji", "🔥🔥🔥🔥🔥🔥🔥🔥", 5},
		{"CJK", "你好世界测试数据", 4},
		{"mixed", "abc 🌍🌍🌍🌍 xyz", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.input, tt.maxLen)
			assert.True(t, utf8.ValidString(result),
				"Truncate(%q, %d) produced invalid UTF-8: %q", tt.input, tt.maxLen, result)
			assert.LessOrEqual(t, utf8.RuneCountInString(result), tt.maxLen)
		})
	}
}

func TestClip_FlattensWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", Clip("a\nb\tc", 20))
	assert.Equal(t, "a b...", Clip("a\n\n  b   cdefgh", 6))
}
