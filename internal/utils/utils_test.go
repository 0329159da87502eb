package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "exactly", TruncateText("exactly", 7))
	assert.Equal(t, "abcd...", TruncateText("abcdefghij", 7))
	assert.Equal(t, "日本語...", TruncateText("日本語のテキスト", 6))
	assert.Equal(t, "ab", TruncateText("abcdef", 2))
	assert.Equal(t, "", TruncateText("abcdef", -1))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "hello", FirstLine("\n  \n  hello \nworld"))
	assert.Equal(t, "", FirstLine(" \n\t"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "one line", Preview("one line", 20))
	assert.Equal(t, "first...", Preview("first\nsecond", 20))
	assert.Equal(t, "abcdefg...", Preview("abcdefghijklmnop\nmore", 10))
	assert.Equal(t, "abcdefg...", Preview("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Preview("abcdef\nx", 2))
}
