// Package normalize holds the pure coercion functions that turn loosely
// typed extractor output and free-text fragments into canonical values.
package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"dealfinder/internal/model"
)

var (
	kSuffixPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:k|thousand)\b`)
	mSuffixPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:m|mm|million)\b`)
	nonNumeric     = regexp.MustCompile(`[^\d.\-]`)

	rangePattern = regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d+)?)\s*(k)?\s*[-–—]\s*(\d+(?:,\d{3})*(?:\.\d+)?)\s*(k)?`)
)

// ToNumber coerces numbers, numeric strings, and strings with "k"/
// "thousand"/"m" suffixes into a float. "20k" becomes 20000, "2.5m" becomes
// 2500000. Returns nil for anything non-numeric or non-finite.
func ToNumber(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return finite(float64(n))
	case int64:
		return finite(float64(n))
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return finite(f)
	case *float64:
		if n == nil {
			return nil
		}
		return finite(*n)
	case string:
		return numberFromString(n)
	}
	return nil
}

func numberFromString(s string) *float64 {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ",", "")
	if s == "" {
		return nil
	}
	if m := kSuffixPattern.FindStringSubmatch(s); m != nil {
		f, _ := strconv.ParseFloat(m[1], 64)
		return finite(math.Round(f * 1_000))
	}
	if m := mSuffixPattern.FindStringSubmatch(s); m != nil {
		f, _ := strconv.ParseFloat(m[1], 64)
		return finite(math.Round(f * 1_000_000))
	}
	stripped := nonNumeric.ReplaceAllString(s, "")
	if stripped == "" || stripped == "-" || stripped == "." {
		return nil
	}
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// AssetType lower-cases and maps known synonyms: "warehouse" becomes
// "industrial", "sfr" becomes "single-family". Anything else passes through
// lower-cased; the schema is deliberately open-ended (self-storage, medical
// office, data center, ...).
func AssetType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	if strings.Contains(s, "warehouse") {
		return "industrial"
	}
	if strings.Contains(s, "sfr") {
		return "single-family"
	}
	return s
}

// ParseRange extracts a two-endpoint numeric band from text like
// "60k-120k" or "1,500 - 3,000", expanding a "k" suffix attached to either
// endpoint or trailing the whole expression. Returns nil when no range is
// present.
func ParseRange(text string) *model.Range {
	m := rangePattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return nil
	}
	lo := ToNumber(m[1])
	hi := ToNumber(m[3])
	if lo == nil || hi == nil {
		return nil
	}
	// A "k" on the upper endpoint distributes to a bare lower endpoint:
	// "60-120k" means 60k-120k.
	loK, hiK := m[2] != "", m[4] != ""
	if loK {
		*lo *= 1_000
	}
	if hiK {
		*hi *= 1_000
		if !loK {
			*lo *= 1_000
		}
	}
	return &model.Range{Min: lo, Max: hi}
}

// Band coerces a RawRange (endpoints possibly strings) into a typed Range.
// Negative endpoints are dropped; an empty result collapses to nil.
func Band(rr *model.RawRange) *model.Range {
	if rr == nil {
		return nil
	}
	out := &model.Range{Min: nonNegative(ToNumber(rr.Min)), Max: nonNegative(ToNumber(rr.Max))}
	if out.Empty() {
		return nil
	}
	return out
}

func nonNegative(f *float64) *float64 {
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

// minBuildYear guards against misparsed unrelated four-digit numbers.
const minBuildYear = 1800

// ClampYear accepts a build-year value only when it exceeds 1800.
func ClampYear(v any) *int {
	f := ToNumber(v)
	if f == nil || *f <= minBuildYear {
		return nil
	}
	y := int(*f)
	return &y
}

// BuildYearBand coerces a raw after/before pair into a clamped BuildYear.
func BuildYearBand(rr *model.RawBuildYear) *model.BuildYear {
	if rr == nil {
		return nil
	}
	out := &model.BuildYear{After: ClampYear(rr.After), Before: ClampYear(rr.Before)}
	if out.Empty() {
		return nil
	}
	return out
}
