package layout

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Tuning constants for the fit search.
const (
	// WidthEpsilon is the tolerance (mm) within which a justified line is
	// considered to fill the target width.
	WidthEpsilon = 0.5

	// centeredFillRatio: a centered heading grows until it occupies at least
	// this fraction of the target width. Forcing an exact fill would look
	// unnaturally stretched for short strings.
	centeredFillRatio = 0.6

	// justifiedGrowRatio: a short justified line grows until it reaches this
	// fraction of the target; the remainder is closed by spacing.
	justifiedGrowRatio = 0.95

	// letterSpacingWeight biases residual distribution toward inter-word gaps,
	// which are less disruptive than inter-letter gaps for Arabic script.
	letterSpacingWeight = 0.3

	// correctiveSizeStep and correctiveSpacingScale define the single
	// overshoot-correction pass. It runs at most once.
	correctiveSizeStep     = 0.25
	correctiveSpacingScale = 0.9
)

// Fit computes the RenderSpec that makes line occupy targetWidth (for
// justified lines) or a pleasing fraction of it (for centered lines). Every
// search loop is bounded by the font-size range and step sizes, so Fit always
// terminates without external cancellation. Any measurement failure aborts the
// search and falls back to the base style with zero spacing.
func Fit(line Line, targetWidth float64, c FitConstraints, font FontResource, m Measurer) RenderSpec {
	if line.Empty() {
		return RenderSpec{FontSize: c.BaseFontSize}
	}

	size := c.BaseFontSize
	width, err := m.Measure(line.Text, font, size, 0, 0)
	if err != nil {
		return fallbackSpec(c)
	}

	if line.Role == Centered {
		return fitCentered(line.Text, targetWidth, width, c, font, m)
	}
	return fitJustified(line.Text, targetWidth, width, c, font, m)
}

// fitCentered grows a heading until it is prominent enough. Spacing stays zero.
func fitCentered(text string, target, width float64, c FitConstraints, font FontResource, m Measurer) RenderSpec {
	size := c.BaseFontSize
	for iter := maxSteps(c.MaxFontSize-c.BaseFontSize, c.TitleStepUp); iter > 0; iter-- {
		if width >= centeredFillRatio*target || size >= c.MaxFontSize {
			break
		}
		size = math.Min(size+c.TitleStepUp, c.MaxFontSize)
		w, err := m.Measure(text, font, size, 0, 0)
		if err != nil {
			return fallbackSpec(c)
		}
		width = w
	}
	return RenderSpec{FontSize: size, MeasuredWidth: width}
}

// fitJustified runs the core numeric search: size shrink/grow first, then
// residual distribution as spacing, then at most one corrective pass.
func fitJustified(text string, target, width float64, c FitConstraints, font FontResource, m Measurer) RenderSpec {
	size := c.BaseFontSize

	switch {
	case width > target:
		// Shrink until the line fits or the size floor is reached.
		for iter := maxSteps(c.BaseFontSize-c.MinFontSize, c.SizeStepDown); iter > 0; iter-- {
			if width <= target || size <= c.MinFontSize {
				break
			}
			size = math.Max(size-c.SizeStepDown, c.MinFontSize)
			w, err := m.Measure(text, font, size, 0, 0)
			if err != nil {
				return fallbackSpec(c)
			}
			width = w
		}
	case width < target:
		// Grow close to the target; spacing closes the rest.
		for iter := maxSteps(c.MaxFontSize-c.BaseFontSize, c.SizeStepUp); iter > 0; iter-- {
			if width >= justifiedGrowRatio*target || size >= c.MaxFontSize {
				break
			}
			size = math.Min(size+c.SizeStepUp, c.MaxFontSize)
			w, err := m.Measure(text, font, size, 0, 0)
			if err != nil {
				return fallbackSpec(c)
			}
			width = w
		}
	}

	var letterSpacing, wordSpacing float64
	if residual := target - width; residual > 0 {
		words := len(strings.Fields(text))
		if words == 0 {
			words = 1
		}
		chars := utf8.RuneCountInString(text)
		if chars == 0 {
			chars = 1
		}
		wordSpacing = residual / float64(words)
		letterSpacing = residual / float64(chars) * letterSpacingWeight

		w, err := m.Measure(text, font, size, letterSpacing, wordSpacing)
		if err != nil {
			return fallbackSpec(c)
		}
		width = w

		// The additive spacing model may overshoot. One corrective pass only:
		// a small residual error is traded for guaranteed termination.
		if width > target {
			size = math.Max(size-correctiveSizeStep, c.MinFontSize)
			letterSpacing *= correctiveSpacingScale
			wordSpacing *= correctiveSpacingScale
			w, err := m.Measure(text, font, size, letterSpacing, wordSpacing)
			if err != nil {
				return fallbackSpec(c)
			}
			width = w
		}
	}
	// A negative residual at the size floor is accepted as overflow: the line
	// is painted slightly wide rather than truncated.

	return RenderSpec{
		FontSize:      size,
		LetterSpacing: letterSpacing,
		WordSpacing:   wordSpacing,
		MeasuredWidth: width,
	}
}

// FitPage fits all lines of a page against the profile. Each line's fit is
// independent and pure over the Measurer, so callers may shard lines across
// goroutines; at fifteen lines per page the sequential loop is fine.
func FitPage(page Page, p Profile, m Measurer) FittedPage {
	fitted := FittedPage{Number: page.Number}
	target := p.TargetWidth()
	for i, line := range page.Lines {
		fitted.Lines[i] = FittedLine{
			Line: line,
			Spec: Fit(line, target, p.Constraints, p.Font, m),
		}
	}
	return fitted
}

// fallbackSpec is the safe, visible-but-unoptimized style used when the
// measurement backend fails mid-search.
func fallbackSpec(c FitConstraints) RenderSpec {
	return RenderSpec{FontSize: c.BaseFontSize}
}

// maxSteps bounds a search loop by the size range and step, guarding against
// zero or negative steps from an unvalidated profile.
func maxSteps(span, step float64) int {
	if step <= 0 || span <= 0 {
		return 0
	}
	return int(math.Ceil(span/step)) + 1
}
