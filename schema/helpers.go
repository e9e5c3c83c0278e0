package schema

import (
	"math"
	"strings"
	"unicode"
)

// NameFromEmail derives a normalized collaborator key from an email address:
// the local part up to its last '.', lower-cased.
// "Bob.Smith.ext@corp.com" becomes "bob.smith".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if i := strings.LastIndex(local, "."); i >= 0 {
		local = local[:i]
	}
	return strings.ToLower(local)
}

// IsASCII reports whether every rune of s is below 128.
func IsASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// MaskName hides the leading characters of a person's name.
// Short ASCII names are left alone since they carry little identity.
func MaskName(name string) string {
	rr := []rune(name)
	switch size := len(rr); {
	case size <= 1:
		return name
	case size <= 3:
		if IsASCII(name) {
			return name
		}
		return "*" + string(rr[1:])
	case size <= 6:
		return "**" + string(rr[2:])
	default:
		return "***" + string(rr[3:])
	}
}

// MaskString hides the middle of an identifier such as a repository name.
func MaskString(s string) string {
	rr := []rune(s)
	switch size := len(rr); {
	case size <= 2:
		return s
	case size <= 5:
		return string(rr[:2]) + strings.Repeat("*", size-2)
	case size <= 9:
		return string(rr[:2]) + strings.Repeat("*", size-4) + string(rr[size-2:])
	default:
		return string(rr[:3]) + strings.Repeat("*", size-6) + string(rr[size-3:])
	}
}

// Percents returns each value's share of the total, scaled to 100 and
// rounded to the given number of digits. A zero total yields zeros.
func Percents(nums []int, digits int) []float64 {
	total := 0
	for _, n := range nums {
		total += n
	}
	if total == 0 {
		total = 1
	}
	scale := math.Pow(10, float64(digits))
	out := make([]float64, len(nums))
	for i, n := range nums {
		out[i] = math.Round(float64(n)/float64(total)*100*scale) / scale
	}
	return out
}

// Rescale maps values linearly onto [0, upper], clamping at lower.
// When all values are equal they all map to upper.
func Rescale(nums []float64, lower, upper float64) []float64 {
	if len(nums) == 0 {
		return nil
	}
	high, low := nums[0], nums[0]
	for _, n := range nums[1:] {
		high = math.Max(high, n)
		low = math.Min(low, n)
	}
	out := make([]float64, len(nums))
	for i, n := range nums {
		if high == low {
			out[i] = upper
			continue
		}
		out[i] = math.Max((n-low)/(high-low)*upper, lower)
	}
	return out
}
