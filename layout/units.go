package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe helpers for the lengths a layout profile uses:
// page geometry in mm, font sizes and steps in pt.

// Unit represents the original unit of a length value as written in a profile.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to the target unit. Supported targets: UnitMM, UnitPT.
func (l Length) To(target Unit) float64 {
	mm := l.Value
	switch l.Unit {
	case UnitMM:
		// already mm
	case UnitCM:
		mm = l.Value * 10
	case UnitIN:
		mm = l.Value * 25.4
	case UnitPT:
		if target == UnitPT {
			return l.Value
		}
		mm = l.Value * PtToMm
	case UnitNone:
		// unit-less numbers pass through untouched
		return l.Value
	}
	if target == UnitPT {
		return mm * MmToPt
	}
	return mm
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// ParseLength parses a profile length string preserving its unit.
func ParseLength(value string) Length {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return Length{}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
