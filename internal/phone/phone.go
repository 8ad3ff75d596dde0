// Package phone formats raw phone input for display as the user types.
// It is a formatting heuristic, not a validator: input is never rejected,
// only reshaped, and LikelyUS is a placeholder hint for the UI.
package phone

import "strings"

type Result struct {
	Value    string `json:"value"`
	LikelyUS bool   `json:"isLikelyUS"`
}

// FormatSmart keeps digits plus a leading "+", leaves international
// numbers untouched, and progressively formats NANP-looking numbers as
// (AAA) BBB-CCCC. It is total: every input yields a well-defined result.
func FormatSmart(input string) Result {
	trimmed := strings.TrimSpace(input)
	hasPlus := strings.HasPrefix(trimmed, "+")

	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	cleaned := digits
	if hasPlus {
		cleaned = "+" + digits
		if !strings.HasPrefix(digits, "1") {
			return Result{Value: cleaned, LikelyUS: false}
		}
		// +1 numbers fall through to NANP formatting below.
	}

	if digits == "" {
		return Result{Value: "", LikelyUS: false}
	}

	likelyUS := len(digits) <= 11 && (len(digits) <= 10 || strings.HasPrefix(digits, "1"))
	if !likelyUS {
		return Result{Value: cleaned, LikelyUS: false}
	}

	d := strings.TrimPrefix(digits, "1")
	return Result{Value: formatNANP(d), LikelyUS: true}
}

func formatNANP(d string) string {
	switch {
	case d == "":
		return ""
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		if len(d) > 10 {
			d = d[:10]
		}
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	}
}
