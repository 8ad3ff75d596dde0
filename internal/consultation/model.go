package consultation

const (
	RoleCouple  = "couple"
	RolePlanner = "planner"
	RoleParent  = "parent"
)

const (
	EventWedding    = "wedding"
	EventElopement  = "elopement"
	EventEngagement = "engagement"
	EventProposal   = "proposal"
	EventOther      = "other"
)

// PlannerInfo is present only when the submitter is a wedding planner.
type PlannerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// ParentInfo is present only when the submitter is a parent or family member.
type ParentInfo struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Relation          string `json:"relation"`
	ContactPreference string `json:"contactPreference"`
}

// Lead is one briefing-form submission. It is never persisted by this
// process: it is handed to the record store and the mailer, then discarded.
type Lead struct {
	Partner1 string `json:"partner1"`
	Partner2 string `json:"partner2"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	Role    string       `json:"role"`
	Planner *PlannerInfo `json:"planner,omitempty"`
	Parent  *ParentInfo  `json:"parent,omitempty"`

	EventType         string `json:"eventType"`
	Date              string `json:"date"`
	Location          string `json:"location"`
	GuestCount        string `json:"guestCount"`
	VenueName         string `json:"venueName"`
	VenueLink         string `json:"venueLink"`
	IsMultiDay        bool   `json:"isMultiDay"`
	TraditionResolved string `json:"traditionResolved"`

	HowYouMet             string   `json:"howYouMet"`
	FilmFeel              []string `json:"filmFeel"`
	BudgetRange           string   `json:"budgetRange"`
	ContactPreference     string   `json:"contactPreference"`
	PinterestBoardURL     string   `json:"pinterestBoardUrl"`
	PinterestBoardTitle   string   `json:"pinterestBoardTitle"`
	OtherInspirationLinks string   `json:"otherInspirationLinks"`
	AdditionalNotes       string   `json:"additionalNotes"`
}

// Normalize enforces the role/sub-record pairing: at most one of the
// planner and parent sub-records survives, chosen by Role.
func (l *Lead) Normalize() {
	switch l.Role {
	case RolePlanner:
		l.Parent = nil
	case RoleParent:
		l.Planner = nil
	default:
		if l.Role == "" {
			l.Role = RoleCouple
		}
		l.Planner = nil
		l.Parent = nil
	}
}

// EventTypeLabel maps the known event types to their human-readable form.
// Unknown values pass through verbatim.
func EventTypeLabel(value string) string {
	switch value {
	case EventWedding:
		return "Wedding"
	case EventElopement:
		return "Elopement"
	case EventEngagement:
		return "Engagement Session"
	case EventProposal:
		return "Proposal"
	case EventOther:
		return "Other Celebration"
	default:
		return value
	}
}
