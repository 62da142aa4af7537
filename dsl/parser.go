// Package dsl parses .mushaf layout-profile files.
//
// A profile declares the page geometry, the typeface, the fit constraints and
// the page-text source for one mushaf edition:
//
//	mushaf madani {
//	  page {
//	    width: 105mm
//	    height: 165mm
//	    margin: 8mm
//	  }
//	  font Body {
//	    src: "fonts/KFGQPC-Uthmanic.ttf"
//	  }
//	  fit {
//	    base: 14pt
//	    min: 9pt
//	    max: 22pt
//	    step-down: 0.5pt
//	    step-up: 0.25pt
//	  }
//	  source {
//	    kind: "sqlite"
//	    path: "data/pages.db"
//	  }
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	profileLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	profileParser = participle.MustBuild[Profile](
		participle.Lexer(profileLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Profile is the root AST node for a .mushaf file.
type Profile struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'mushaf' @Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level block (page/font/fit/markers/source).
type Section struct {
	Page    *PageSection    `parser:"  @@"`
	Font    *FontSection    `parser:"| @@"`
	Fit     *FitSection     `parser:"| @@"`
	Markers *MarkersSection `parser:"| @@"`
	Source  *SourceSection  `parser:"| @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Page != nil:
		return "page"
	case s.Font != nil:
		return "font"
	case s.Fit != nil:
		return "fit"
	case s.Markers != nil:
		return "markers"
	case s.Source != nil:
		return "source"
	default:
		return "unknown"
	}
}

// PageSection declares page geometry.
type PageSection struct {
	Block *Block `parser:"'page' @@"`
}

// FontSection declares the typeface used for measuring and painting.
type FontSection struct {
	Name  string `parser:"'font' @Ident"`
	Block *Block `parser:"@@"`
}

// FitSection declares the fit-search constraints.
type FitSection struct {
	Block *Block `parser:"'fit' @@"`
}

// MarkersSection overrides the heading-marker substrings.
type MarkersSection struct {
	Block *Block `parser:"'markers' @@"`
}

// SourceSection declares where page text is loaded from.
type SourceSection struct {
	Block *Block `parser:"'source' @@"`
}

// Block is a delimited list of assignments.
type Block struct {
	Assignments []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' @@"`
}

// Value is a string literal or a number with an optional unit suffix.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
}

// Text returns the value as a plain string regardless of its syntactic form.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Get returns the value for key within the block, or "" when absent.
func (b *Block) Get(key string) string {
	if b == nil {
		return ""
	}
	for _, a := range b.Assignments {
		if a.Key == key {
			return a.Value.Text()
		}
	}
	return ""
}

// Parse parses profile content from an io.Reader.
func Parse(r io.Reader) (*Profile, error) {
	return profileParser.Parse("", r)
}

// ParseString parses profile content from a string.
func ParseString(input string) (*Profile, error) {
	return profileParser.ParseString("", input)
}
