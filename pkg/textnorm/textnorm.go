// Package textnorm 提供宽松文本比较所需的规范化：小写、去除变音符号、去首尾空白。
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize 返回 s 的规范化形式，例如 "Atención al Cliente" → "atencion al cliente"
// 空串返回空串；对任意输入不会 panic
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// transform.Chain 有状态，不可跨 goroutine 复用，每次调用新建
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Equal 判断两个文本规范化后是否完全相等（不做子串匹配）
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
