// Package fonts 内置 PDF 导出使用的字体。
//
// 内置字体覆盖阿拉伯语基本区与表现形式 A/B 区，整形后的文本可直接绘制。
package fonts

import (
	_ "embed"
	"fmt"
	"os"
)

// DefaultFamily 内置字体在 PDF 中注册的字族名
const DefaultFamily = "DejaVuSansCondensed"

//go:embed DejaVuSansCondensed.ttf
var dejaVuSansCondensed []byte

// Default 返回内置 TTF 字体
func Default() []byte {
	return dejaVuSansCondensed
}

// Load 读取 path 指定的 TTF 字体；path 为空时返回内置字体
func Load(path string) ([]byte, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件失败: %w", err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("字体文件为空: %s", path)
	}
	return b, nil
}
