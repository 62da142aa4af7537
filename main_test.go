package main

import (
	"reflect"
	"testing"
)

func TestParsePageSelection(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"1", []int{1}},
		{"3-6", []int{3, 4, 5, 6}},
		{"1,5,9-11", []int{1, 5, 9, 10, 11}},
		{" 2 , 4 - 5 ", []int{2, 4, 5}},
		{"604", []int{604}},
	}
	for _, tc := range cases {
		got, err := parsePageSelection(tc.in)
		if err != nil {
			t.Fatalf("parsePageSelection(%q): %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parsePageSelection(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParsePageSelectionErrors(t *testing.T) {
	for _, in := range []string{"", "0", "605", "10-5", "abc", "1-", ","} {
		if _, err := parsePageSelection(in); err == nil {
			t.Fatalf("parsePageSelection(%q): expected error", in)
		}
	}
}
