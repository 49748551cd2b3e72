// Package rtl 将阿拉伯语文本转换为可直接交给从左到右排版引擎绘制的形式。
//
// 字形连接与视觉重排由 garabic 完成，本包只负责判定哪些文本需要处理。
package rtl

import (
	"strings"
	"unicode"

	"github.com/unidoc/garabic"
)

// Shaper 把逻辑顺序的文本转换为显示顺序
type Shaper interface {
	Shape(text string) string
}

// ShaperFunc 适配普通函数为 Shaper
type ShaperFunc func(string) string

// Shape 实现 Shaper
func (f ShaperFunc) Shape(text string) string { return f(text) }

// Default 基于 garabic 的默认实现；不含阿拉伯字母的文本原样返回
var Default Shaper = ShaperFunc(Shape)

// Shape 对包含阿拉伯字母的文本做连字与 RTL 视觉重排
func Shape(text string) string {
	if !ContainsArabic(text) {
		return text
	}
	return garabic.Shape(text)
}

// ContainsArabic 判断文本中是否含有阿拉伯文字
func ContainsArabic(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return unicode.Is(unicode.Arabic, r)
	}) >= 0
}
