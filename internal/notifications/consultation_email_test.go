package notifications

import (
	"strings"
	"testing"

	"veilandvow-backend/internal/consultation"
)

func baseLead() consultation.Lead {
	return consultation.Lead{
		Partner1: "Maya",
		Partner2: "Jordan",
		Email:    "maya@example.com",
		Role:     consultation.RoleCouple,
	}
}

func TestStorySectionOmittedWhenEmpty(t *testing.T) {
	html, text := BuildConsultationEmail(baseLead())
	if strings.Contains(html, "Their Story") {
		t.Fatalf("html should omit story section for empty fields")
	}
	if strings.Contains(text, "THEIR STORY") {
		t.Fatalf("text should omit story section for empty fields")
	}
}

func TestStorySectionPresentWithHowYouMet(t *testing.T) {
	lead := baseLead()
	lead.HowYouMet = "A rainy bus stop in Lisbon."
	html, text := BuildConsultationEmail(lead)
	if !strings.Contains(html, "Their Story &amp; Vision") {
		t.Fatalf("html missing story section")
	}
	if !strings.Contains(html, "A rainy bus stop in Lisbon.") {
		t.Fatalf("html missing how-you-met content")
	}
	if !strings.Contains(text, "THEIR STORY & VISION") {
		t.Fatalf("text missing story section")
	}
}

func TestStorySectionPresentWithFilmFeelOnly(t *testing.T) {
	lead := baseLead()
	lead.FilmFeel = []string{"cinematic", "documentary"}
	html, text := BuildConsultationEmail(lead)
	if !strings.Contains(html, "Their Story &amp; Vision") || !strings.Contains(html, "cinematic, documentary") {
		t.Fatalf("html missing film feel")
	}
	if !strings.Contains(text, "Film feel: cinematic, documentary") {
		t.Fatalf("text missing film feel")
	}
}

func TestInspirationSectionConditional(t *testing.T) {
	html, text := BuildConsultationEmail(baseLead())
	if strings.Contains(html, "Inspiration") || strings.Contains(text, "INSPIRATION") {
		t.Fatalf("inspiration section should be absent")
	}

	lead := baseLead()
	lead.PinterestBoardURL = "https://pinterest.com/maya/wedding"
	lead.PinterestBoardTitle = "Forever Film"
	html, text = BuildConsultationEmail(lead)
	if !strings.Contains(html, "Forever Film") || !strings.Contains(text, "Forever Film") {
		t.Fatalf("inspiration section missing pinterest board")
	}
	want := "Forever Film - https://pinterest.com/maya/wedding"
	if !strings.Contains(html, want) || !strings.Contains(text, want) {
		t.Fatalf("both twins should join title and url with a hyphen")
	}
}

func TestContactSectionAlwaysPresent(t *testing.T) {
	html, text := BuildConsultationEmail(baseLead())
	if !strings.Contains(html, "Maya &amp; Jordan") {
		t.Fatalf("html missing couple names")
	}
	if !strings.Contains(text, "Maya & Jordan") {
		t.Fatalf("text missing couple names")
	}
	if !strings.Contains(html, "maya@example.com") || !strings.Contains(text, "maya@example.com") {
		t.Fatalf("email address missing")
	}
}

func TestPlannerSubsection(t *testing.T) {
	lead := baseLead()
	lead.Role = consultation.RolePlanner
	lead.Planner = &consultation.PlannerInfo{Name: "Ana Reyes", Company: "Reyes Events"}
	html, text := BuildConsultationEmail(lead)
	if !strings.Contains(html, "Ana Reyes") || !strings.Contains(html, "Reyes Events") {
		t.Fatalf("html missing planner subsection")
	}
	if !strings.Contains(text, "Planner: Ana Reyes") {
		t.Fatalf("text missing planner subsection")
	}
}

func TestEventFieldsConditional(t *testing.T) {
	lead := baseLead()
	lead.EventType = "wedding"
	lead.Date = "2030-01-01"
	html, text := BuildConsultationEmail(lead)
	if !strings.Contains(html, "Wedding") {
		t.Fatalf("html missing event type label")
	}
	if !strings.Contains(html, "Tuesday, January 1, 2030") {
		t.Fatalf("html missing long-form date: %s", html)
	}
	if strings.Contains(text, "Guest Count:") || strings.Contains(text, "Venue:") {
		t.Fatalf("unset event fields must be omitted")
	}
}

func TestUnknownEventTypePassesThrough(t *testing.T) {
	lead := baseLead()
	lead.EventType = "vow renewal"
	html, _ := BuildConsultationEmail(lead)
	if !strings.Contains(html, "vow renewal") {
		t.Fatalf("unknown event type must pass through verbatim")
	}
}

func TestUnparseableDatePassesThrough(t *testing.T) {
	lead := baseLead()
	lead.Date = "sometime next summer"
	html, text := BuildConsultationEmail(lead)
	if !strings.Contains(html, "sometime next summer") || !strings.Contains(text, "sometime next summer") {
		t.Fatalf("unparseable date must pass through verbatim")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	lead := baseLead()
	lead.EventType = "elopement"
	lead.Date = "2031-06-14"
	lead.HowYouMet = "College radio."
	lead.FilmFeel = []string{"romantic"}
	lead.BudgetRange = "$8k-$12k"

	html1, text1 := BuildConsultationEmail(lead)
	html2, text2 := BuildConsultationEmail(lead)
	if html1 != html2 || text1 != text2 {
		t.Fatalf("template composition must be byte-identical across calls")
	}
}

func TestFormatLongDate(t *testing.T) {
	if got := formatLongDate("2030-01-01"); got != "Tuesday, January 1, 2030" {
		t.Fatalf("unexpected long date: %q", got)
	}
	if got := formatLongDate(""); got != "" {
		t.Fatalf("empty date must stay empty, got %q", got)
	}
}
