package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GraphBaseURL is the Microsoft Graph v1.0 endpoint.
const GraphBaseURL = "https://graph.microsoft.com/v1.0"

// Client is an authenticated Microsoft Graph API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Graph API client. httpClient must attach the bearer
// token (see GetHTTPClient); an empty baseURL means GraphBaseURL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = GraphBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// DateTimeTimeZone is the Graph representation of a local time.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// ItemBody is the body of a Graph event.
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Location is the place of a Graph event.
type Location struct {
	DisplayName string `json:"displayName"`
}

// CalendarEvent represents a Microsoft Graph calendar event.
type CalendarEvent struct {
	ID            string           `json:"id,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	Subject       string           `json:"subject"`
	Body          *ItemBody        `json:"body,omitempty"`
	IsAllDay      bool             `json:"isAllDay"`
	IsCancelled   bool             `json:"isCancelled,omitempty"`
	ShowAs        string           `json:"showAs,omitempty"`
	Categories    []string         `json:"categories,omitempty"`
	Start         DateTimeTimeZone `json:"start"`
	End           DateTimeTimeZone `json:"end"`
	Location      *Location        `json:"location,omitempty"`
}

// calendarViewResponse is the Graph API paged response for calendar events.
type calendarViewResponse struct {
	Value    []CalendarEvent `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

// GetCalendarView fetches calendar events in [from, to) using the calendarView endpoint.
// timezone is an IANA timezone name (e.g. "Asia/Kuala_Lumpur"); pass "" for UTC.
func (c *Client) GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error) {
	startISO := from.UTC().Format(time.RFC3339)
	endISO := to.UTC().Format(time.RFC3339)

	endpoint := fmt.Sprintf("%s/me/calendarView?startDateTime=%s&endDateTime=%s&$top=100&$select=%s",
		c.baseURL,
		url.QueryEscape(startISO),
		url.QueryEscape(endISO),
		url.QueryEscape("id,subject,transactionId,isAllDay,isCancelled,start,end"),
	)

	var all []CalendarEvent
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if timezone != "" {
			req.Header.Set("Prefer", fmt.Sprintf(`outlook.timezone="%s"`, timezone))
		}

		var page calendarViewResponse
		if err := c.do(req, http.StatusOK, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Value...)
		endpoint = page.NextLink
	}
	return all, nil
}

// CreateEvent creates ev in the signed-in user's default calendar and
// returns the event as stored by Graph.
func (c *Client) CreateEvent(ctx context.Context, ev CalendarEvent) (CalendarEvent, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("encoding event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/me/events", bytes.NewReader(payload))
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	var created CalendarEvent
	if err := c.do(req, http.StatusCreated, &created); err != nil {
		return CalendarEvent{}, err
	}
	return created, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("graph API error %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding graph response: %w", err)
	}
	return nil
}
