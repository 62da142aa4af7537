package layout

import "context"

// Measurer 负责在给定字体与间距下测量单行文本的渲染宽度。
// Width is reported in mm; fontSize in pt. The call must not wrap or break the
// text. A failed measurement returns a non-nil error, never a silent zero.
type Measurer interface {
	Measure(text string, font FontResource, fontSize, letterSpacing, wordSpacing float64) (float64, error)
}

// TextProvider supplies the raw text blob for a page number. Implementations
// live outside the core (storage, assets); a load failure is reported as an
// error and treated by callers as "no text for this page".
type TextProvider interface {
	PageText(ctx context.Context, number int) (string, error)
}
