package phone

import "testing"

func TestFormatSmartEmpty(t *testing.T) {
	got := FormatSmart("")
	if got.Value != "" || got.LikelyUS {
		t.Fatalf("expected empty non-US result, got %+v", got)
	}
}

func TestFormatSmartFullUSNumber(t *testing.T) {
	got := FormatSmart("5551234567")
	if got.Value != "(555) 123-4567" {
		t.Fatalf("unexpected value: %q", got.Value)
	}
	if !got.LikelyUS {
		t.Fatalf("expected LikelyUS")
	}
}

func TestFormatSmartDropsCountryCode(t *testing.T) {
	got := FormatSmart("15551234567")
	if got.Value != "(555) 123-4567" {
		t.Fatalf("unexpected value: %q", got.Value)
	}
	if !got.LikelyUS {
		t.Fatalf("expected LikelyUS")
	}
}

func TestFormatSmartInternational(t *testing.T) {
	got := FormatSmart("+442071234567")
	if got.Value != "+442071234567" {
		t.Fatalf("international number should pass through, got %q", got.Value)
	}
	if got.LikelyUS {
		t.Fatalf("international number must not be LikelyUS")
	}
}

func TestFormatSmartPlusOnePrefix(t *testing.T) {
	got := FormatSmart("+1 555 123 4567")
	if got.Value != "(555) 123-4567" || !got.LikelyUS {
		t.Fatalf("+1 numbers should format as NANP, got %+v", got)
	}
}

func TestFormatSmartProgressive(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5", "(5"},
		{"55", "(55"},
		{"555", "(555"},
		{"5551", "(555) 1"},
		{"55512", "(555) 12"},
		{"555123", "(555) 123"},
		{"5551234", "(555) 123-4"},
		{"555123456", "(555) 123-456"},
	}
	for _, tc := range cases {
		got := FormatSmart(tc.in)
		if got.Value != tc.want {
			t.Fatalf("FormatSmart(%q) = %q, want %q", tc.in, got.Value, tc.want)
		}
		if !got.LikelyUS {
			t.Fatalf("FormatSmart(%q): expected LikelyUS", tc.in)
		}
	}
}

func TestFormatSmartMidGroupShape(t *testing.T) {
	// 4-6 digit inputs must render as "(AAA) B.." with no hyphen yet.
	for _, in := range []string{"2345", "23456", "234567", "9876", "98765", "987654"} {
		got := FormatSmart(in)
		if len(got.Value) < 7 || got.Value[0] != '(' || got.Value[4] != ')' || got.Value[5] != ' ' {
			t.Fatalf("FormatSmart(%q) = %q, want \"(AAA) B..\" shape", in, got.Value)
		}
		for _, r := range got.Value {
			if r == '-' {
				t.Fatalf("FormatSmart(%q) = %q contains premature hyphen", in, got.Value)
			}
		}
	}
}

func TestFormatSmartTooLongNotUS(t *testing.T) {
	got := FormatSmart("4420712345678")
	if got.LikelyUS {
		t.Fatalf("13-digit number must not be LikelyUS")
	}
	if got.Value != "4420712345678" {
		t.Fatalf("non-US number should pass through digits, got %q", got.Value)
	}
}

func TestFormatSmartPlusOneTooLongKeepsPlus(t *testing.T) {
	got := FormatSmart("+123456789012")
	if got.LikelyUS {
		t.Fatalf("12-digit number must not be LikelyUS")
	}
	if got.Value != "+123456789012" {
		t.Fatalf("cleaned value should keep its leading +, got %q", got.Value)
	}
}

func TestFormatSmartStripsNoise(t *testing.T) {
	got := FormatSmart("(555) 123-4567 ext")
	if got.Value != "(555) 123-4567" || !got.LikelyUS {
		t.Fatalf("noisy input should normalize, got %+v", got)
	}
}
