package utils

import "strings"

// TruncateText は文字列を指定された最大長(ルーン数)に切り詰めます。
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen > 3 {
		return string(runes[:maxLen-3]) + "..."
	}
	if maxLen < 0 {
		maxLen = 0
	}
	return string(runes[:maxLen])
}

// FirstLine は最初の空でない行を返します。
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

// Preview は一覧表示用に、最初の空でない行を maxLen に収めた文字列を返します。
// 続きがある場合は省略記号を付けます。
func Preview(s string, maxLen int) string {
	line := FirstLine(s)
	if strings.TrimSpace(s) == line || maxLen <= 3 {
		return TruncateText(line, maxLen)
	}
	runes := []rune(line)
	if len(runes) > maxLen-3 {
		runes = runes[:maxLen-3]
	}
	return string(runes) + "..."
}
