package layout

// 该文件定义页面、行与拟合结果的值类型，供拟合计算、渲染与调试 JSON 共用。

// Mushaf layout constants shared by every profile.
const (
	// PageCount is the number of pages in the standard Madani mushaf.
	PageCount = 604
	// LinesPerPage is the fixed number of text rows on every page.
	LinesPerPage = 15
)

// AlignmentRole decides how a line is fitted against the target width.
type AlignmentRole int

const (
	// Justified lines are stretched or shrunk to fill the target width exactly.
	Justified AlignmentRole = iota
	// Centered lines (page openers, basmala, surah headings) are sized for
	// prominence and never spacing-adjusted.
	Centered
)

// String returns the JSON/debug name of the role.
func (r AlignmentRole) String() string {
	if r == Centered {
		return "centered"
	}
	return "justified"
}

// Line is one of the fixed rows of a page. It is immutable after construction;
// refitting against a new width produces a fresh RenderSpec, never a mutation.
type Line struct {
	Index int           `json:"index"` // 1-based within the page
	Text  string        `json:"text"`  // trimmed, may be empty
	Role  AlignmentRole `json:"role"`
}

// Empty reports whether the line carries no text.
func (l Line) Empty() bool { return l.Text == "" }

// Page owns an ordered sequence of exactly LinesPerPage lines.
type Page struct {
	Number int                `json:"number"` // 1..PageCount
	Lines  [LinesPerPage]Line `json:"lines"`
}

// RenderSpec is the finalized style for painting one line. Widths and
// spacings are in the unit the Measurer reports (mm for the canvas backend);
// FontSize is in pt.
type RenderSpec struct {
	FontSize      float64 `json:"fontSize"`
	LetterSpacing float64 `json:"letterSpacing"`
	WordSpacing   float64 `json:"wordSpacing"`
	MeasuredWidth float64 `json:"measuredWidth"`
}

// FitConstraints bounds the fit search. Font sizes and steps are in pt.
type FitConstraints struct {
	BaseFontSize float64 `json:"baseFontSize"`
	MinFontSize  float64 `json:"minFontSize"`
	MaxFontSize  float64 `json:"maxFontSize"`
	// SizeStepDown is the shrink step for overlong justified lines. It is
	// coarser than SizeStepUp: undershoot after shrinking is recovered by
	// spacing, while grow overshoot is visually jarring.
	SizeStepDown float64 `json:"sizeStepDown"`
	// SizeStepUp is the grow step for short justified lines.
	SizeStepUp float64 `json:"sizeStepUp"`
	// TitleStepUp is the grow step for centered lines. Headings may grow more
	// aggressively, so it is larger than SizeStepUp.
	TitleStepUp float64 `json:"titleStepUp"`
}

// FontResource describes the typeface used for measuring and painting. Src is
// a file path resolved against the renderer's base directory, or a
// "built-in:<name>" reference to an injected font blob.
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style"`
}

// FittedLine pairs a line with the RenderSpec produced for it.
type FittedLine struct {
	Line Line       `json:"line"`
	Spec RenderSpec `json:"spec"`
}

// FittedPage is a page whose lines have all been fitted against a profile.
type FittedPage struct {
	Number int                      `json:"number"`
	Lines  [LinesPerPage]FittedLine `json:"lines"`
}

// Result 保存拟合后的页面与使用的排版配置，可直接交给渲染器或调试输出。
type Result struct {
	Profile Profile      `json:"profile"`
	Pages   []FittedPage `json:"pages"`
}
