// Package briefing models the multi-section consultation form as an
// explicit immutable state passed through a reducer, so completeness and
// validation rules are testable without any UI framework.
package briefing

import (
	"strings"

	"veilandvow-backend/internal/consultation"
	"veilandvow-backend/internal/phone"
)

type Section int

const (
	SectionContact Section = iota
	SectionEvent
	SectionStory
	SectionInspiration
	SectionReview
)

// FormState holds every in-progress answer for one form-fill session.
// It is a value: reducers return a new state and never mutate the input.
type FormState struct {
	Partner1      string
	Partner2      string
	Email         string
	Phone         string
	PhoneLikelyUS bool

	Role    string
	Planner *consultation.PlannerInfo
	Parent  *consultation.ParentInfo

	EventType  string
	Date       string
	Location   string
	GuestCount string
	VenueName  string
	VenueLink  string
	IsMultiDay bool
	Tradition  string

	HowYouMet string
	FilmFeel  []string

	PinterestURL   string
	PinterestTitle string
	OtherLinks     string

	BudgetRange       string
	ContactPreference string
	AdditionalNotes   string
}

// New returns the initial state: everything empty, role defaulted to couple.
func New() FormState {
	return FormState{Role: consultation.RoleCouple}
}

type Action interface {
	apply(FormState) FormState
}

// Reduce is the single state transition: pure, total, input untouched.
func Reduce(state FormState, action Action) FormState {
	if action == nil {
		return state
	}
	return action.apply(state)
}

type SetIdentity struct {
	Partner1 string
	Partner2 string
	Email    string
	Phone    string
}

func (a SetIdentity) apply(s FormState) FormState {
	formatted := phone.FormatSmart(a.Phone)
	s.Partner1 = a.Partner1
	s.Partner2 = a.Partner2
	s.Email = a.Email
	s.Phone = formatted.Value
	s.PhoneLikelyUS = formatted.LikelyUS
	return s
}

type SetRole struct {
	Role    string
	Planner *consultation.PlannerInfo
	Parent  *consultation.ParentInfo
}

func (a SetRole) apply(s FormState) FormState {
	s.Role = a.Role
	s.Planner = nil
	s.Parent = nil
	switch a.Role {
	case consultation.RolePlanner:
		s.Planner = a.Planner
	case consultation.RoleParent:
		s.Parent = a.Parent
	}
	return s
}

type SetEvent struct {
	EventType  string
	Date       string
	Location   string
	GuestCount string
	VenueName  string
	VenueLink  string
	IsMultiDay bool
	Tradition  string
}

func (a SetEvent) apply(s FormState) FormState {
	s.EventType = a.EventType
	s.Date = a.Date
	s.Location = a.Location
	s.GuestCount = a.GuestCount
	s.VenueName = a.VenueName
	s.VenueLink = a.VenueLink
	s.IsMultiDay = a.IsMultiDay
	s.Tradition = a.Tradition
	return s
}

type SetStory struct {
	HowYouMet string
}

func (a SetStory) apply(s FormState) FormState {
	s.HowYouMet = a.HowYouMet
	return s
}

// ToggleFilmFeel adds the option when absent and removes it when present.
type ToggleFilmFeel struct {
	Option string
}

func (a ToggleFilmFeel) apply(s FormState) FormState {
	next := make([]string, 0, len(s.FilmFeel)+1)
	found := false
	for _, opt := range s.FilmFeel {
		if opt == a.Option {
			found = true
			continue
		}
		next = append(next, opt)
	}
	if !found {
		next = append(next, a.Option)
	}
	s.FilmFeel = next
	return s
}

type SetInspiration struct {
	PinterestURL   string
	PinterestTitle string
	OtherLinks     string
}

func (a SetInspiration) apply(s FormState) FormState {
	s.PinterestURL = a.PinterestURL
	s.PinterestTitle = a.PinterestTitle
	s.OtherLinks = a.OtherLinks
	return s
}

type SetInvestment struct {
	BudgetRange       string
	ContactPreference string
	AdditionalNotes   string
}

func (a SetInvestment) apply(s FormState) FormState {
	s.BudgetRange = a.BudgetRange
	s.ContactPreference = a.ContactPreference
	s.AdditionalNotes = a.AdditionalNotes
	return s
}

// EmailValid is the client-grade check: an "@" with a non-empty local part
// and a domain segment containing a dot.
func EmailValid(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// SectionComplete reports whether a section holds everything required to
// advance past it. Story and inspiration are entirely optional.
func SectionComplete(s FormState, section Section) bool {
	switch section {
	case SectionContact:
		if strings.TrimSpace(s.Partner1) == "" || strings.TrimSpace(s.Partner2) == "" || !EmailValid(s.Email) {
			return false
		}
		switch s.Role {
		case consultation.RolePlanner:
			return s.Planner != nil && strings.TrimSpace(s.Planner.Name) != "" && EmailValid(s.Planner.Email)
		case consultation.RoleParent:
			return s.Parent != nil && strings.TrimSpace(s.Parent.Name) != ""
		}
		return true
	case SectionEvent:
		return strings.TrimSpace(s.Location) != "" && strings.TrimSpace(s.Tradition) != ""
	case SectionStory, SectionInspiration:
		return true
	case SectionReview:
		return SectionComplete(s, SectionContact) && SectionComplete(s, SectionEvent)
	default:
		return false
	}
}

// Complete reports whether the whole form can be submitted.
func Complete(s FormState) bool {
	return SectionComplete(s, SectionReview)
}

// Submission derives the payload sent to the intake endpoint. The
// role/sub-record pairing is re-normalized so exactly one or neither
// sub-record is present.
func Submission(s FormState) consultation.Lead {
	lead := consultation.Lead{
		Partner1: strings.TrimSpace(s.Partner1),
		Partner2: strings.TrimSpace(s.Partner2),
		Email:    strings.TrimSpace(s.Email),
		Phone:    s.Phone,

		Role:    s.Role,
		Planner: s.Planner,
		Parent:  s.Parent,

		EventType:         s.EventType,
		Date:              s.Date,
		Location:          strings.TrimSpace(s.Location),
		GuestCount:        strings.TrimSpace(s.GuestCount),
		VenueName:         s.VenueName,
		VenueLink:         s.VenueLink,
		IsMultiDay:        s.IsMultiDay,
		TraditionResolved: strings.TrimSpace(s.Tradition),

		HowYouMet:             s.HowYouMet,
		FilmFeel:              append([]string(nil), s.FilmFeel...),
		BudgetRange:           s.BudgetRange,
		ContactPreference:     s.ContactPreference,
		PinterestBoardURL:     s.PinterestURL,
		PinterestBoardTitle:   s.PinterestTitle,
		OtherInspirationLinks: s.OtherLinks,
		AdditionalNotes:       s.AdditionalNotes,
	}
	lead.Normalize()
	return lead
}
