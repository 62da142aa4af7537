package layout

import "testing"

func TestClassifyFirstLineAlwaysCentered(t *testing.T) {
	for _, text := range []string{
		"",
		"plain body text",
		"ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ",
	} {
		if got := Classify(1, text); got != Centered {
			t.Fatalf("Classify(1, %q) = %v, want centered", text, got)
		}
	}
}

func TestClassifyMarkers(t *testing.T) {
	cases := []struct {
		name  string
		index int
		text  string
		want  AlignmentRole
	}{
		{"basmala", 2, "بِسْمِ ٱللَّهِ ٱلرَّحْمٰنِ ٱلرَّحِيمِ", Centered},
		{"surah heading", 8, "سُورَةُ ٱلْبَقَرَةِ", Centered},
		{"body", 3, "ذَٰلِكَ ٱلْكِتَٰبُ لَا رَيْبَ فِيهِ", Justified},
		{"empty", 15, "", Justified},
		{"latin body", 4, "not a heading", Justified},
	}
	for _, tc := range cases {
		if got := Classify(tc.index, tc.text); got != tc.want {
			t.Fatalf("%s: Classify(%d, %q) = %v, want %v", tc.name, tc.index, tc.text, got, tc.want)
		}
	}
}

func TestClassifyCustomMarkers(t *testing.T) {
	c := Classifier{BasmalaMarker: "BASMALA", SurahMarker: "SURAH"}
	if got := c.Classify(5, "xx SURAH xx"); got != Centered {
		t.Fatalf("custom surah marker not recognized: %v", got)
	}
	if got := c.Classify(5, "سُورَةُ ٱلْبَقَرَةِ"); got != Justified {
		t.Fatalf("default marker must not apply with custom classifier: %v", got)
	}
}
