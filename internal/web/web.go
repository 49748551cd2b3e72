// Package web 提供列表页的 HTML 模板（嵌入二进制）。
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

// HomeTemplate 列表页模板名
const HomeTemplate = "home.html"

// Templates 解析全部页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// Funcs 页面模板使用的辅助函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		// hhmm 将 HH:MM:SS 截为 <input type="time"> 可用的 HH:MM
		"hhmm": func(s string) string {
			if len(s) >= 5 {
				return s[:5]
			}
			return s
		},
		"hours": func(h float64) string {
			return strconv.FormatFloat(h, 'f', 2, 64)
		},
		"seq": func(i int) string { return fmt.Sprint(i + 1) },
	}
}
