package renderer

import "github.com/tanzil/mushaf/layout"

// Renderer 将拟合结果渲染为目标格式的字节流（当前为 PDF）。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
