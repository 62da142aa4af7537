package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNormalizeLinesEmptyInput(t *testing.T) {
	lines := NormalizeLines("")
	if len(lines) != LinesPerPage {
		t.Fatalf("expected %d lines, got %d", LinesPerPage, len(lines))
	}
	for i, l := range lines {
		if l != "" {
			t.Fatalf("line %d not empty: %q", i+1, l)
		}
	}
}

func TestNormalizeLinesAlwaysFifteen(t *testing.T) {
	for _, rows := range []int{0, 1, 10, 15, 50} {
		var b strings.Builder
		for i := 0; i < rows; i++ {
			fmt.Fprintf(&b, "row %d\n", i+1)
		}
		lines := NormalizeLines(b.String())
		nonEmpty := 0
		for _, l := range lines {
			if l != "" {
				nonEmpty++
			}
		}
		want := rows
		if want > LinesPerPage {
			want = LinesPerPage
		}
		if nonEmpty != want {
			t.Fatalf("rows=%d: expected %d non-empty lines, got %d", rows, want, nonEmpty)
		}
	}
}

func TestNormalizeLinesTrimsAndSkipsBlanks(t *testing.T) {
	raw := "  first  \r\n\n   \n\tsecond\t\nthird"
	lines := NormalizeLines(raw)
	if lines[0] != "first" || lines[1] != "second" || lines[2] != "third" {
		t.Fatalf("unexpected normalization: %q %q %q", lines[0], lines[1], lines[2])
	}
	if lines[3] != "" {
		t.Fatalf("expected padding after last row, got %q", lines[3])
	}
}

func TestBuildPageClassifiesLines(t *testing.T) {
	raw := "سُورَةُ ٱلْفَاتِحَةِ\nبِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ\nٱلْحَمْدُ لِلَّهِ"
	page := BuildPage(1, raw, DefaultClassifier)
	if page.Number != 1 {
		t.Fatalf("page number: %d", page.Number)
	}
	if page.Lines[0].Role != Centered {
		t.Fatalf("line 1 must be centered")
	}
	if page.Lines[1].Role != Centered {
		t.Fatalf("basmala line must be centered")
	}
	if page.Lines[2].Role != Justified {
		t.Fatalf("body line must be justified")
	}
	for i, l := range page.Lines {
		if l.Index != i+1 {
			t.Fatalf("line %d has index %d", i+1, l.Index)
		}
	}
}

type stubProvider struct {
	text string
	err  error
}

func (p stubProvider) PageText(context.Context, int) (string, error) { return p.text, p.err }

func TestAssemblePageLoadFailureYieldsBlankPage(t *testing.T) {
	p := stubProvider{err: errors.New("asset missing")}
	page := AssemblePage(context.Background(), p, 42, DefaultClassifier)
	if page.Number != 42 {
		t.Fatalf("page number: %d", page.Number)
	}
	for i, l := range page.Lines {
		if !l.Empty() {
			t.Fatalf("line %d not blank after load failure: %q", i+1, l.Text)
		}
	}
}

func TestAssemblePageUsesProviderText(t *testing.T) {
	p := stubProvider{text: "ٱلْحَمْدُ لِلَّهِ\nرَبِّ ٱلْعَٰلَمِينَ"}
	page := AssemblePage(context.Background(), p, 2, DefaultClassifier)
	if page.Lines[0].Text == "" || page.Lines[1].Text == "" {
		t.Fatalf("provider text lost: %+v", page.Lines[:2])
	}
	if page.Lines[2].Text != "" {
		t.Fatalf("expected padding, got %q", page.Lines[2].Text)
	}
}

func TestAssemblePageNilProvider(t *testing.T) {
	page := AssemblePage(context.Background(), nil, 3, DefaultClassifier)
	for _, l := range page.Lines {
		if !l.Empty() {
			t.Fatalf("nil provider must yield blank page")
		}
	}
}
