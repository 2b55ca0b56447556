package earl

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// GitHubEvents lists the public events of a user, page by page.
var GitHubEvents = Endpoint{
	Name:          "github.events",
	Origin:        "https://api.github.com",
	BasicPathname: "/users/",
	Query: map[string]string{
		"per_page": "30",
	},
}

type PagedEvents struct {
	*Earl
}

func NewPagedEvents(c *Client) (*PagedEvents, error) {
	e, err := c.Open(GitHubEvents, nil)
	if err != nil {
		return nil, err
	}
	return &PagedEvents{Earl: e}, nil
}

func (p *PagedEvents) SetUserName(name string) *PagedEvents {
	p.SetLastPathSegment(name + "/events")
	return p
}

func (p *PagedEvents) SetPerPage(n int) *PagedEvents {
	p.SetSearchParam("per_page", strconv.Itoa(n))
	return p
}

// SetPage selects a page, pages start at 1.
func (p *PagedEvents) SetPage(n int) *PagedEvents {
	p.SetSearchParam("page", strconv.Itoa(n))
	return p
}

type EventRepo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Repo      EventRepo       `json:"repo"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

func (p *PagedEvents) FetchEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	err := p.FetchJSON(ctx, &events)
	return events, err
}
