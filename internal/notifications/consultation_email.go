package notifications

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"veilandvow-backend/internal/consultation"
)

// LeadMailer renders and sends the studio notification for a new
// consultation lead. It implements consultation.Mailer.
type LeadMailer struct {
	client *ResendClient
	from   string
	to     string
}

// NewLeadMailer returns nil when the underlying client is disabled. When
// no studio recipient is configured the notification goes to the
// submitter's own address.
func NewLeadMailer(client *ResendClient, from, to string) *LeadMailer {
	if client == nil {
		return nil
	}
	return &LeadMailer{
		client: client,
		from:   from,
		to:     to,
	}
}

func (m *LeadMailer) SendLeadNotification(ctx context.Context, lead consultation.Lead) (string, error) {
	html, text := BuildConsultationEmail(lead)

	to := m.to
	if strings.TrimSpace(to) == "" {
		to = lead.Email
	}

	return m.client.send(ctx, resendMessage{
		From:    m.from,
		To:      []string{to},
		ReplyTo: lead.Email,
		Subject: fmt.Sprintf("New Consultation Request: %s & %s", lead.Partner1, lead.Partner2),
		HTML:    html,
		Text:    text,
	})
}

type consultationEmailView struct {
	Partner1 string
	Partner2 string
	Email    string
	Phone    string
	Planner  *consultation.PlannerInfo
	Parent   *consultation.ParentInfo

	EventType  string
	DateLong   string
	Tradition  string
	Location   string
	GuestCount string
	VenueName  string
	VenueLink  string
	IsMultiDay bool

	ShowStory bool
	HowYouMet string
	FilmFeel  string

	ShowInspiration bool
	PinterestURL    string
	PinterestTitle  string
	OtherLinks      string

	BudgetRange string
	Notes       string
}

// BuildConsultationEmail renders the same lead into two always-in-sync
// representations: a styled HTML body and its plain-text twin. Sections
// whose backing fields are all empty are omitted from both. Pure: the same
// lead always yields byte-identical output.
func BuildConsultationEmail(lead consultation.Lead) (string, string) {
	view := consultationEmailView{
		Partner1: lead.Partner1,
		Partner2: lead.Partner2,
		Email:    lead.Email,
		Phone:    lead.Phone,
		Planner:  lead.Planner,
		Parent:   lead.Parent,

		EventType:  consultation.EventTypeLabel(lead.EventType),
		DateLong:   formatLongDate(lead.Date),
		Tradition:  lead.TraditionResolved,
		Location:   lead.Location,
		GuestCount: lead.GuestCount,
		VenueName:  lead.VenueName,
		VenueLink:  lead.VenueLink,
		IsMultiDay: lead.IsMultiDay,

		ShowStory: lead.HowYouMet != "" || len(lead.FilmFeel) > 0,
		HowYouMet: lead.HowYouMet,
		FilmFeel:  strings.Join(lead.FilmFeel, ", "),

		ShowInspiration: lead.PinterestBoardURL != "" || lead.OtherInspirationLinks != "",
		PinterestURL:    lead.PinterestBoardURL,
		PinterestTitle:  lead.PinterestBoardTitle,
		OtherLinks:      lead.OtherInspirationLinks,

		BudgetRange: lead.BudgetRange,
		Notes:       lead.AdditionalNotes,
	}

	var html bytes.Buffer
	if err := consultationHTMLTmpl.Execute(&html, view); err != nil {
		// Templates only reference fields of the view struct; execution
		// cannot fail on well-formed templates.
		return "", ""
	}

	var text bytes.Buffer
	if err := consultationTextTmpl.Execute(&text, view); err != nil {
		return html.String(), ""
	}

	return html.String(), text.String()
}

// formatLongDate renders an ISO date as e.g. "Monday, January 1, 2030".
// Anything unparseable passes through verbatim; formatting never fails.
func formatLongDate(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return parsed.Format("Monday, January 2, 2006")
}

const consultationHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #2b2b2b;">
  <h2>New Consultation Request</h2>

  <h3>Contact Information</h3>
  <p><strong>Couple:</strong> {{.Partner1}} &amp; {{.Partner2}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  {{if .Planner}}<h4>Planner</h4>
  <p><strong>Name:</strong> {{.Planner.Name}}</p>
  {{if .Planner.Email}}<p><strong>Email:</strong> {{.Planner.Email}}</p>{{end}}
  {{if .Planner.Phone}}<p><strong>Phone:</strong> {{.Planner.Phone}}</p>{{end}}
  {{if .Planner.Company}}<p><strong>Company:</strong> {{.Planner.Company}}</p>{{end}}{{end}}
  {{if .Parent}}<h4>Family Contact</h4>
  <p><strong>Name:</strong> {{.Parent.Name}}</p>
  {{if .Parent.Relation}}<p><strong>Relation:</strong> {{.Parent.Relation}}</p>{{end}}
  {{if .Parent.Email}}<p><strong>Email:</strong> {{.Parent.Email}}</p>{{end}}
  {{if .Parent.Phone}}<p><strong>Phone:</strong> {{.Parent.Phone}}</p>{{end}}
  {{if .Parent.ContactPreference}}<p><strong>Prefers:</strong> {{.Parent.ContactPreference}}</p>{{end}}{{end}}

  <h3>Event Details</h3>
  {{if .EventType}}<p><strong>Event Type:</strong> {{.EventType}}</p>{{end}}
  {{if .DateLong}}<p><strong>Date:</strong> {{.DateLong}}</p>{{end}}
  {{if .Tradition}}<p><strong>Tradition:</strong> {{.Tradition}}</p>{{end}}
  {{if .Location}}<p><strong>Location:</strong> {{.Location}}</p>{{end}}
  {{if .GuestCount}}<p><strong>Guest Count:</strong> {{.GuestCount}}</p>{{end}}
  {{if .VenueName}}<p><strong>Venue:</strong> {{.VenueName}}</p>{{end}}
  {{if .VenueLink}}<p><strong>Venue Link:</strong> {{.VenueLink}}</p>{{end}}
  {{if .IsMultiDay}}<p><strong>Multi-day celebration</strong></p>{{end}}
{{if .ShowStory}}
  <h3>Their Story &amp; Vision</h3>
  {{if .HowYouMet}}<p><strong>How they met:</strong> {{.HowYouMet}}</p>{{end}}
  {{if .FilmFeel}}<p><strong>Film feel:</strong> {{.FilmFeel}}</p>{{end}}
{{end}}{{if .ShowInspiration}}
  <h3>Inspiration</h3>
  {{if .PinterestURL}}<p><strong>Pinterest:</strong> {{if .PinterestTitle}}{{.PinterestTitle}} - {{end}}{{.PinterestURL}}</p>{{end}}
  {{if .OtherLinks}}<p><strong>Other links:</strong> {{.OtherLinks}}</p>{{end}}
{{end}}
  <h3>Investment &amp; Notes</h3>
  {{if .BudgetRange}}<p><strong>Budget Range:</strong> {{.BudgetRange}}</p>{{end}}
  {{if .Notes}}<p><strong>Additional Notes:</strong> {{.Notes}}</p>{{end}}
</body>
</html>`

const consultationTextTemplate = `NEW CONSULTATION REQUEST

CONTACT INFORMATION
Couple: {{.Partner1}} & {{.Partner2}}
Email: {{.Email}}
{{if .Phone}}Phone: {{.Phone}}
{{end}}{{if .Planner}}Planner: {{.Planner.Name}}{{if .Planner.Email}} / {{.Planner.Email}}{{end}}{{if .Planner.Phone}} / {{.Planner.Phone}}{{end}}{{if .Planner.Company}} ({{.Planner.Company}}){{end}}
{{end}}{{if .Parent}}Family contact: {{.Parent.Name}}{{if .Parent.Relation}} ({{.Parent.Relation}}){{end}}{{if .Parent.Email}} / {{.Parent.Email}}{{end}}{{if .Parent.Phone}} / {{.Parent.Phone}}{{end}}{{if .Parent.ContactPreference}}, prefers {{.Parent.ContactPreference}}{{end}}
{{end}}
EVENT DETAILS
{{if .EventType}}Event Type: {{.EventType}}
{{end}}{{if .DateLong}}Date: {{.DateLong}}
{{end}}{{if .Tradition}}Tradition: {{.Tradition}}
{{end}}{{if .Location}}Location: {{.Location}}
{{end}}{{if .GuestCount}}Guest Count: {{.GuestCount}}
{{end}}{{if .VenueName}}Venue: {{.VenueName}}
{{end}}{{if .VenueLink}}Venue Link: {{.VenueLink}}
{{end}}{{if .IsMultiDay}}Multi-day celebration
{{end}}{{if .ShowStory}}
THEIR STORY & VISION
{{if .HowYouMet}}How they met: {{.HowYouMet}}
{{end}}{{if .FilmFeel}}Film feel: {{.FilmFeel}}
{{end}}{{end}}{{if .ShowInspiration}}
INSPIRATION
{{if .PinterestURL}}Pinterest: {{if .PinterestTitle}}{{.PinterestTitle}} - {{end}}{{.PinterestURL}}
{{end}}{{if .OtherLinks}}Other links: {{.OtherLinks}}
{{end}}{{end}}
INVESTMENT & NOTES
{{if .BudgetRange}}Budget Range: {{.BudgetRange}}
{{end}}{{if .Notes}}Additional Notes: {{.Notes}}
{{end}}`

var consultationHTMLTmpl = htmltemplate.Must(htmltemplate.New("consultation_html").Parse(consultationHTMLTemplate))
var consultationTextTmpl = texttemplate.Must(texttemplate.New("consultation_text").Parse(consultationTextTemplate))
