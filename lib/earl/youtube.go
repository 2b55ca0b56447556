package earl

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// YouTubePlaylistItems is the playlistItems resource of the YouTube Data
// API, it requires an api key.
var YouTubePlaylistItems = Endpoint{
	Name:          "youtube.playlist-items",
	Origin:        "https://www.googleapis.com",
	BasicPathname: "/youtube/v3/playlistItems",
	Query: map[string]string{
		"part":       "snippet",
		"maxResults": "50",
	},
	Secrets: []string{"key"},
}

type Playlist struct {
	*Earl
}

// NewPlaylist fails with a *ConfigurationError when `apiKey` is empty.
func NewPlaylist(c *Client, apiKey string) (*Playlist, error) {
	e, err := c.Open(YouTubePlaylistItems, map[string]string{"key": apiKey})
	if err != nil {
		return nil, err
	}
	return &Playlist{Earl: e}, nil
}

func (p *Playlist) SetMaxResults(n int) *Playlist {
	p.SetSearchParam("maxResults", strconv.Itoa(n))
	return p
}

func (p *Playlist) SetPlaylistID(id string) *Playlist {
	p.SetSearchParam("playlistId", id)
	return p
}

func (p *Playlist) SetPageToken(token string) *Playlist {
	if token == "" {
		p.DeleteSearchParam("pageToken")
		return p
	}
	p.SetSearchParam("pageToken", token)
	return p
}

type ResourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

type PlaylistItemSnippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	PublishedAt  time.Time  `json:"publishedAt"`
	ChannelTitle string     `json:"channelTitle"`
	Position     int        `json:"position"`
	ResourceID   ResourceID `json:"resourceId"`
}

type PlaylistItem struct {
	ID      string              `json:"id"`
	Snippet PlaylistItemSnippet `json:"snippet"`
}

type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// APIError is the error object the api answers with instead of items.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube api: %d %s", e.Code, e.Message)
}

type PlaylistItems struct {
	Items         []PlaylistItem `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
	PageInfo      PageInfo       `json:"pageInfo"`
	Error         *APIError      `json:"error"`
}

// FetchPlaylistByID fetches one page of the playlist `id`. An error object
// in the response is returned as an *APIError.
func (p *Playlist) FetchPlaylistByID(ctx context.Context, id string) (PlaylistItems, error) {
	p.SetPlaylistID(id)

	var out PlaylistItems
	err := p.FetchJSON(ctx, &out)
	if err != nil {
		return PlaylistItems{}, err
	}
	if out.Error != nil {
		return out, out.Error
	}
	return out, nil
}
