package layout

import (
	"fmt"
	"io"

	"github.com/tanzil/mushaf/dsl"
)

// SourceSpec names the page-text storage behind a profile. Kind is "sqlite"
// or "dir"; Path points at the database file or the page-file root, and
// Pattern is the ${page} path template used by the directory source.
type SourceSpec struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Pattern string `json:"pattern,omitempty"`
}

// Profile is the resolved typesetting configuration for one mushaf edition.
// Geometry is in mm, font sizes in pt.
type Profile struct {
	Name        string         `json:"name"`
	PageWidth   float64        `json:"pageWidth"`
	PageHeight  float64        `json:"pageHeight"`
	Margin      float64        `json:"margin"`
	Font        FontResource   `json:"font"`
	Constraints FitConstraints `json:"constraints"`
	Markers     Classifier     `json:"markers"`
	Source      SourceSpec     `json:"source"`
}

// DefaultProfile is a usable baseline; profile files override parts of it.
var DefaultProfile = Profile{
	Name:       "madani",
	PageWidth:  105,
	PageHeight: 165,
	Margin:     8,
	Font:       FontResource{Name: "Body"},
	Constraints: FitConstraints{
		BaseFontSize: 14,
		MinFontSize:  9,
		MaxFontSize:  22,
		SizeStepDown: 0.5,
		SizeStepUp:   0.25,
		TitleStepUp:  0.5,
	},
	Markers: DefaultClassifier,
	Source:  SourceSpec{Kind: "dir", Path: "pages", Pattern: "${page}.txt"},
}

// TargetWidth is the horizontal space available for a line of text, in mm.
func (p Profile) TargetWidth() float64 { return p.PageWidth - 2*p.Margin }

// LineHeight is the vertical band each of the fifteen lines occupies, in mm.
func (p Profile) LineHeight() float64 {
	return (p.PageHeight - 2*p.Margin) / LinesPerPage
}

// Validate reports the first constraint violation, if any.
func (p Profile) Validate() error {
	c := p.Constraints
	switch {
	case p.TargetWidth() <= 0:
		return fmt.Errorf("profile %s: page width %.1fmm leaves no room inside %.1fmm margins", p.Name, p.PageWidth, p.Margin)
	case c.MinFontSize <= 0 || c.MaxFontSize < c.MinFontSize:
		return fmt.Errorf("profile %s: invalid font size range [%.2f, %.2f]", p.Name, c.MinFontSize, c.MaxFontSize)
	case c.BaseFontSize < c.MinFontSize || c.BaseFontSize > c.MaxFontSize:
		return fmt.Errorf("profile %s: base size %.2f outside [%.2f, %.2f]", p.Name, c.BaseFontSize, c.MinFontSize, c.MaxFontSize)
	case c.SizeStepDown <= 0 || c.SizeStepUp <= 0 || c.TitleStepUp <= 0:
		return fmt.Errorf("profile %s: step sizes must be positive", p.Name)
	case p.Font.Src == "":
		return fmt.Errorf("profile %s: font %s has no src", p.Name, p.Font.Name)
	}
	return nil
}

// LoadProfile parses and resolves a .mushaf profile.
func LoadProfile(r io.Reader) (Profile, error) {
	doc, err := dsl.Parse(r)
	if err != nil {
		return DefaultProfile, err
	}
	return ProfileFromDSL(doc)
}

// ProfileFromDSL resolves a parsed profile file against DefaultProfile.
func ProfileFromDSL(doc *dsl.Profile) (Profile, error) {
	p := DefaultProfile
	if doc == nil {
		return p, fmt.Errorf("profile document is nil")
	}
	if doc.Name != "" {
		p.Name = doc.Name
	}
	for _, sec := range doc.Sections {
		switch {
		case sec.Page != nil:
			applyLength(sec.Page.Block, "width", UnitMM, &p.PageWidth)
			applyLength(sec.Page.Block, "height", UnitMM, &p.PageHeight)
			applyLength(sec.Page.Block, "margin", UnitMM, &p.Margin)
		case sec.Font != nil:
			if sec.Font.Name != "" {
				p.Font.Name = sec.Font.Name
			}
			applyString(sec.Font.Block, "src", &p.Font.Src)
			applyString(sec.Font.Block, "style", &p.Font.Style)
		case sec.Fit != nil:
			applyLength(sec.Fit.Block, "base", UnitPT, &p.Constraints.BaseFontSize)
			applyLength(sec.Fit.Block, "min", UnitPT, &p.Constraints.MinFontSize)
			applyLength(sec.Fit.Block, "max", UnitPT, &p.Constraints.MaxFontSize)
			applyLength(sec.Fit.Block, "step-down", UnitPT, &p.Constraints.SizeStepDown)
			applyLength(sec.Fit.Block, "step-up", UnitPT, &p.Constraints.SizeStepUp)
			if sec.Fit.Block.Get("title-step") != "" {
				applyLength(sec.Fit.Block, "title-step", UnitPT, &p.Constraints.TitleStepUp)
			} else {
				// Headings grow more aggressively than body lines.
				p.Constraints.TitleStepUp = 2 * p.Constraints.SizeStepUp
			}
		case sec.Markers != nil:
			applyString(sec.Markers.Block, "basmala", &p.Markers.BasmalaMarker)
			applyString(sec.Markers.Block, "surah", &p.Markers.SurahMarker)
		case sec.Source != nil:
			applyString(sec.Source.Block, "kind", &p.Source.Kind)
			applyString(sec.Source.Block, "path", &p.Source.Path)
			applyString(sec.Source.Block, "pattern", &p.Source.Pattern)
		default:
			return p, fmt.Errorf("profile %s: unknown section at %s", p.Name, sec.Kind())
		}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func applyLength(b *dsl.Block, key string, target Unit, dst *float64) {
	if raw := b.Get(key); raw != "" {
		if l := ParseLength(raw); l.Value > 0 {
			*dst = l.To(target)
		}
	}
}

func applyString(b *dsl.Block, key string, dst *string) {
	if v := b.Get(key); v != "" {
		*dst = v
	}
}
