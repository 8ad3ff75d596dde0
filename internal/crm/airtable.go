package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"veilandvow-backend/internal/consultation"
)

const defaultAirtableBase = "https://api.airtable.com/v0"

// AirtableClient writes consultation leads into an Airtable table acting
// as the studio's CRM. It implements consultation.RecordStore.
type AirtableClient struct {
	token      string
	baseID     string
	tableID    string
	endpoint   string
	httpClient *http.Client
}

// NewAirtableClient returns nil unless all three configuration values are
// present; a nil client means "CRM disabled".
func NewAirtableClient(token, baseID, tableID string) *AirtableClient {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(baseID) == "" || strings.TrimSpace(tableID) == "" {
		return nil
	}
	return &AirtableClient{
		token:      token,
		baseID:     baseID,
		tableID:    tableID,
		endpoint:   defaultAirtableBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type airtableCreateRequest struct {
	Records  []airtableRecord `json:"records"`
	Typecast bool             `json:"typecast"`
}

type airtableRecord struct {
	ID     string                 `json:"id,omitempty"`
	Fields map[string]interface{} `json:"fields"`
}

type airtableCreateResponse struct {
	Records []airtableRecord `json:"records"`
}

func (c *AirtableClient) CreateLead(ctx context.Context, lead consultation.Lead) (string, error) {
	if c == nil {
		return "", errors.New("airtable client is nil")
	}

	payload := airtableCreateRequest{
		Records:  []airtableRecord{{Fields: leadFields(lead)}},
		Typecast: true,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("airtable marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", c.endpoint, c.baseID, c.tableID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("airtable create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("airtable request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("airtable create failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out airtableCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("airtable decode response: %w", err)
	}
	if len(out.Records) == 0 || strings.TrimSpace(out.Records[0].ID) == "" {
		return "", errors.New("airtable response missing record id")
	}
	return out.Records[0].ID, nil
}

// leadFields is the fixed submission-field to CRM-column mapping.
func leadFields(lead consultation.Lead) map[string]interface{} {
	fields := map[string]interface{}{
		"Partner 1":          lead.Partner1,
		"Partner 2":          lead.Partner2,
		"Email":              lead.Email,
		"Phone":              lead.Phone,
		"Status":             "New Lead",
		"Role":               roleLabel(lead.Role),
		"Event Type":         lead.EventType,
		"Event Date":         lead.Date,
		"Location":           lead.Location,
		"Venue Name":         lead.VenueName,
		"Venue Link":         lead.VenueLink,
		"Is Multi-Day":       lead.IsMultiDay,
		"Tradition":          lead.TraditionResolved,
		"How They Met":       lead.HowYouMet,
		"Film Feel":          lead.FilmFeel,
		"Budget Range":       lead.BudgetRange,
		"Pinterest Board":    lead.PinterestBoardURL,
		"Pinterest Title":    lead.PinterestBoardTitle,
		"Other Links":        lead.OtherInspirationLinks,
		"Additional Notes":   lead.AdditionalNotes,
		"Contact Preference": lead.ContactPreference,
		"Source":             "Website Form",
	}

	if n, err := strconv.Atoi(strings.TrimSpace(lead.GuestCount)); err == nil {
		fields["Guest Count"] = n
	} else {
		fields["Guest Count"] = nil
	}

	if lead.Planner != nil {
		fields["Planner Name"] = lead.Planner.Name
		fields["Planner Email"] = lead.Planner.Email
		fields["Planner Phone"] = lead.Planner.Phone
		fields["Planner Company"] = lead.Planner.Company
	}
	if lead.Parent != nil {
		fields["Parent Name"] = lead.Parent.Name
		fields["Parent Email"] = lead.Parent.Email
		fields["Parent Phone"] = lead.Parent.Phone
		fields["Parent Relation"] = lead.Parent.Relation
	}

	return fields
}

func roleLabel(role string) string {
	switch role {
	case consultation.RolePlanner:
		return "Planner"
	case consultation.RoleParent:
		return "Parent"
	case consultation.RoleCouple, "":
		return "Couple"
	default:
		return role
	}
}
