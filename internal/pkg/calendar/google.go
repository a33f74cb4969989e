package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	DefaultBaseURL        = "https://www.googleapis.com/calendar/v3"
	CalendarReadonlyScope = "https://www.googleapis.com/auth/calendar.readonly"
	SourceGoogle          = "google_calendar"
)

type GoogleCalendarConfig struct {
	CalendarID      string
	CredentialsJSON []byte
	BaseURL         string
}

// GoogleCalendarFeed reads a holiday calendar through the Calendar v3 events
// API and classifies every event into holiday categories.
type GoogleCalendarFeed struct {
	client     *http.Client
	baseURL    string
	calendarID string
}

// NewGoogleCalendarFeed authenticates with service account credentials.
func NewGoogleCalendarFeed(ctx context.Context, cfg GoogleCalendarConfig) (*GoogleCalendarFeed, error) {
	if cfg.CalendarID == "" || len(cfg.CredentialsJSON) == 0 {
		return nil, holiday.ErrFeedNotConfigured
	}
	creds, err := google.CredentialsFromJSON(ctx, cfg.CredentialsJSON, CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}
	return NewGoogleCalendarFeedFromTokenSource(ctx, creds.TokenSource, cfg), nil
}

func NewGoogleCalendarFeedFromTokenSource(ctx context.Context, ts oauth2.TokenSource, cfg GoogleCalendarConfig) *GoogleCalendarFeed {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleCalendarFeed{
		client:     oauth2.NewClient(ctx, ts),
		baseURL:    strings.TrimRight(baseURL, "/"),
		calendarID: cfg.CalendarID,
	}
}

type eventDate struct {
	Date     string `json:"date"`
	DateTime string `json:"dateTime"`
}

type event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       eventDate `json:"start"`
}

type eventsPage struct {
	Items         []event `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
}

// FetchYear returns every holiday event of year, following pagination.
func (f *GoogleCalendarFeed) FetchYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	timeMin := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	timeMax := timeMin.AddDate(1, 0, 0)

	var holidays []holiday.Holiday
	pageToken := ""
	for {
		page, err := f.fetchPage(ctx, timeMin, timeMax, pageToken)
		if err != nil {
			return nil, err
		}
		for _, ev := range page.Items {
			h, ok := toHoliday(ev)
			if !ok || h.Date.Year() != year {
				continue
			}
			holidays = append(holidays, h)
		}
		if page.NextPageToken == "" {
			return holidays, nil
		}
		pageToken = page.NextPageToken
	}
}

func (f *GoogleCalendarFeed) fetchPage(ctx context.Context, timeMin, timeMax time.Time, pageToken string) (eventsPage, error) {
	q := url.Values{}
	q.Set("timeMin", timeMin.Format(time.RFC3339))
	q.Set("timeMax", timeMax.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", "250")
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", f.baseURL, url.PathEscape(f.calendarID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return eventsPage{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return eventsPage{}, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return eventsPage{}, fmt.Errorf("calendar API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page eventsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return eventsPage{}, fmt.Errorf("failed to decode calendar events: %w", err)
	}
	return page, nil
}

func toHoliday(ev event) (holiday.Holiday, bool) {
	var date time.Time
	switch {
	case ev.Start.Date != "":
		d, err := time.Parse("2006-01-02", ev.Start.Date)
		if err != nil {
			return holiday.Holiday{}, false
		}
		date = d
	case ev.Start.DateTime != "":
		d, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return holiday.Holiday{}, false
		}
		date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return holiday.Holiday{}, false
	}

	cats, ok := Classify(ev.Summary + " " + ev.Description)
	if !ok {
		return holiday.Holiday{}, false
	}
	return holiday.Holiday{
		Date:       date,
		Categories: cats,
		Summary:    strings.TrimSpace(ev.Summary),
		Source:     SourceGoogle,
	}, true
}

// Classify reads holiday categories from free event text. Events that only
// mark an observance are skipped; events without any keyword are public.
func Classify(text string) (holiday.Categories, bool) {
	lower := strings.ToLower(text)
	cats := holiday.Categories{
		Public:     strings.Contains(lower, "public"),
		Bank:       strings.Contains(lower, "bank"),
		Mercantile: strings.Contains(lower, "mercantile"),
	}
	if cats.Any() {
		return cats, true
	}
	if strings.Contains(lower, "observance") {
		return holiday.Categories{}, false
	}
	return holiday.Categories{Public: true}, true
}
