package briefing

import (
	"testing"

	"veilandvow-backend/internal/consultation"
)

func filledContact() FormState {
	s := New()
	s = Reduce(s, SetIdentity{Partner1: "Maya", Partner2: "Jordan", Email: "maya@example.com", Phone: "5551234567"})
	return s
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := New()
	_ = Reduce(before, SetIdentity{Partner1: "Maya"})
	if before.Partner1 != "" {
		t.Fatalf("reducer mutated its input")
	}
}

func TestSetIdentityFormatsPhone(t *testing.T) {
	s := filledContact()
	if s.Phone != "(555) 123-4567" {
		t.Fatalf("phone should be smart-formatted, got %q", s.Phone)
	}
	if !s.PhoneLikelyUS {
		t.Fatalf("expected likely-US phone")
	}

	s = Reduce(s, SetIdentity{Partner1: "Maya", Partner2: "Jordan", Email: "maya@example.com", Phone: "+4420712345"})
	if s.Phone != "+4420712345" || s.PhoneLikelyUS {
		t.Fatalf("international phone should pass through, got %q likelyUS=%v", s.Phone, s.PhoneLikelyUS)
	}
}

func TestToggleFilmFeel(t *testing.T) {
	s := New()
	s = Reduce(s, ToggleFilmFeel{Option: "cinematic"})
	s = Reduce(s, ToggleFilmFeel{Option: "documentary"})
	if len(s.FilmFeel) != 2 {
		t.Fatalf("expected 2 options, got %v", s.FilmFeel)
	}
	s = Reduce(s, ToggleFilmFeel{Option: "cinematic"})
	if len(s.FilmFeel) != 1 || s.FilmFeel[0] != "documentary" {
		t.Fatalf("toggle should remove existing option, got %v", s.FilmFeel)
	}
}

func TestEmailValid(t *testing.T) {
	valid := []string{"a@b.co", "maya.w@example.com"}
	invalid := []string{"", "maya", "maya@", "@example.com", "maya@example", "maya@.com", "maya@com."}
	for _, e := range valid {
		if !EmailValid(e) {
			t.Fatalf("expected %q valid", e)
		}
	}
	for _, e := range invalid {
		if EmailValid(e) {
			t.Fatalf("expected %q invalid", e)
		}
	}
}

func TestContactSectionCompleteness(t *testing.T) {
	if SectionComplete(New(), SectionContact) {
		t.Fatalf("empty contact section must be incomplete")
	}
	s := filledContact()
	if !SectionComplete(s, SectionContact) {
		t.Fatalf("filled couple contact must be complete")
	}

	s = Reduce(s, SetRole{Role: consultation.RolePlanner})
	if SectionComplete(s, SectionContact) {
		t.Fatalf("planner role without planner info must be incomplete")
	}
	s = Reduce(s, SetRole{Role: consultation.RolePlanner, Planner: &consultation.PlannerInfo{Name: "Ana", Email: "ana@plans.com"}})
	if !SectionComplete(s, SectionContact) {
		t.Fatalf("planner role with info must be complete")
	}
}

func TestEventSectionRequiresLocationAndTradition(t *testing.T) {
	s := filledContact()
	if SectionComplete(s, SectionEvent) {
		t.Fatalf("event section must require location and tradition")
	}
	s = Reduce(s, SetEvent{Location: "Hudson Valley, NY", Tradition: "Nondenominational"})
	if !SectionComplete(s, SectionEvent) {
		t.Fatalf("event section should be complete")
	}
}

func TestReviewGatesOnRequiredSections(t *testing.T) {
	s := filledContact()
	if Complete(s) {
		t.Fatalf("form must not be submittable before event section")
	}
	s = Reduce(s, SetEvent{Location: "Big Sur, CA", Tradition: "Secular"})
	if !Complete(s) {
		t.Fatalf("form should be submittable; story and inspiration are optional")
	}
}

func TestSubmissionRolePairing(t *testing.T) {
	s := filledContact()
	s = Reduce(s, SetRole{
		Role:   consultation.RoleParent,
		Parent: &consultation.ParentInfo{Name: "Rita", Relation: "mother"},
	})
	s = Reduce(s, SetEvent{Location: "Chicago, IL", Tradition: "Jewish"})

	lead := Submission(s)
	if lead.Parent == nil || lead.Planner != nil {
		t.Fatalf("exactly the parent sub-record must survive, got %+v", lead)
	}
	if lead.Role != consultation.RoleParent {
		t.Fatalf("unexpected role: %q", lead.Role)
	}

	s = Reduce(s, SetRole{Role: consultation.RoleCouple})
	lead = Submission(s)
	if lead.Planner != nil || lead.Parent != nil {
		t.Fatalf("couple submission must carry no sub-records")
	}
}

func TestSubmissionCopiesFilmFeel(t *testing.T) {
	s := filledContact()
	s = Reduce(s, ToggleFilmFeel{Option: "romantic"})
	lead := Submission(s)
	lead.FilmFeel[0] = "changed"
	if s.FilmFeel[0] != "romantic" {
		t.Fatalf("submission must not alias form state")
	}
}
