// Package bgg looks games up in the BoardGameGeek XML API.
package bgg

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"boardshelf/backend/internal/catalog"
)

const (
	// DefaultBaseURL is the public XML API v2 endpoint.
	DefaultBaseURL = "https://boardgamegeek.com/xmlapi2"
	gameURLPrefix  = "https://boardgamegeek.com/boardgame/"
	unknown        = "Unknown"
)

// SearchResult is one hit of a name search.
type SearchResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year string `json:"year"`
}

// Client queries BoardGameGeek. Cache may be nil.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   Cache
	TTL     time.Duration
	Logger  *slog.Logger
}

// New returns a Client with its own http.Client.
func New(baseURL string, timeout time.Duration, cache Cache, ttl time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Cache:   cache,
		TTL:     ttl,
		Logger:  logger,
	}
}

type valueAttr struct {
	Value string `xml:"value,attr"`
}

type xmlName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type xmlLink struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type xmlItem struct {
	ID            string     `xml:"id,attr"`
	Names         []xmlName  `xml:"name"`
	YearPublished *valueAttr `xml:"yearpublished"`
	Image         string     `xml:"image"`
	Description   string     `xml:"description"`
	MinPlayers    valueAttr  `xml:"minplayers"`
	MaxPlayers    valueAttr  `xml:"maxplayers"`
	MinPlaytime   valueAttr  `xml:"minplaytime"`
	MaxPlaytime   valueAttr  `xml:"maxplaytime"`
	Links         []xmlLink  `xml:"link"`
}

type xmlItems struct {
	XMLName xml.Name  `xml:"items"`
	Items   []xmlItem `xml:"item"`
}

func (it xmlItem) primaryName() string {
	for _, n := range it.Names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(it.Names) > 0 {
		return it.Names[0].Value
	}
	return ""
}

func (it xmlItem) firstLink(kind string) string {
	for _, l := range it.Links {
		if l.Type == kind {
			return l.Value
		}
	}
	return ""
}

func (it xmlItem) links(kind string) []string {
	var out []string
	for _, l := range it.Links {
		if l.Type == kind && l.Value != "" {
			out = append(out, l.Value)
		}
	}
	return out
}

// Search finds board games whose name matches name. An empty name yields no
// results without a request.
func (c *Client) Search(ctx context.Context, name string) ([]SearchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []SearchResult{}, nil
	}

	key := "bgg:search:" + strings.ToLower(name)
	var results []SearchResult
	if c.cached(ctx, key, &results) {
		return results, nil
	}

	q := url.Values{}
	q.Set("query", name)
	q.Set("type", "boardgame")
	var doc xmlItems
	if err := c.fetch(ctx, "/search?"+q.Encode(), &doc); err != nil {
		return nil, err
	}

	results = make([]SearchResult, 0, len(doc.Items))
	for _, it := range doc.Items {
		r := SearchResult{ID: it.ID, Name: it.primaryName(), Year: unknown}
		if r.Name == "" {
			r.Name = unknown
		}
		if it.YearPublished != nil && it.YearPublished.Value != "" {
			r.Year = it.YearPublished.Value
		}
		results = append(results, r)
	}
	c.store(ctx, key, results)
	return results, nil
}

// Thing fetches the details of one game as a record fragment suitable for
// catalog.Merge. An id BoardGameGeek does not know yields catalog.ErrNotFound.
func (c *Client) Thing(ctx context.Context, id string) (catalog.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Record{}, catalog.ErrNotFound
	}

	key := "bgg:thing:" + id
	var rec catalog.Record
	if c.cached(ctx, key, &rec) {
		return rec, nil
	}

	q := url.Values{}
	q.Set("id", id)
	var doc xmlItems
	if err := c.fetch(ctx, "/thing?"+q.Encode(), &doc); err != nil {
		return catalog.Record{}, err
	}
	if len(doc.Items) == 0 {
		return catalog.Record{}, fmt.Errorf("bgg thing %s: %w", id, catalog.ErrNotFound)
	}

	it := doc.Items[0]
	rec = catalog.Record{
		ID:          it.ID,
		Name:        it.primaryName(),
		MinPlayers:  atoi(it.MinPlayers.Value),
		MaxPlayers:  atoi(it.MaxPlayers.Value),
		MinPlaytime: atoi(it.MinPlaytime.Value),
		MaxPlaytime: atoi(it.MaxPlaytime.Value),
		Designer:    it.firstLink("boardgamedesigner"),
		Artist:      it.firstLink("boardgameartist"),
		Publisher:   it.firstLink("boardgamepublisher"),
		Categories:  it.links("boardgamecategory"),
		ImageURL:    strings.TrimSpace(it.Image),
		Description: strings.TrimSpace(html.UnescapeString(it.Description)),
		BGGURL:      gameURLPrefix + it.ID,
	}
	if rec.ID == "" {
		rec.ID = id
		rec.BGGURL = gameURLPrefix + id
	}
	if it.YearPublished != nil {
		rec.Year = atoi(it.YearPublished.Value)
	}
	c.store(ctx, key, rec)
	return rec, nil
}

func (c *Client) fetch(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bgg request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return fmt.Errorf("bgg request queued, retry later")
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("bgg request: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("bgg read: %w", err)
	}
	if err := xml.Unmarshal(body, out); err != nil {
		return fmt.Errorf("bgg decode: %w", err)
	}
	return nil
}

// cached decodes the entry under key into out. Cache failures are logged
// and treated as misses.
func (c *Client) cached(ctx context.Context, key string, out any) bool {
	if c.Cache == nil {
		return false
	}
	b, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		c.log().Warn("bgg cache read failed", slog.String("key", key), slog.Any("err", err))
		return false
	}
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

func (c *Client) store(ctx context.Context, key string, v any) {
	if c.Cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Cache.Set(ctx, key, b, c.TTL); err != nil {
		c.log().Warn("bgg cache write failed", slog.String("key", key), slog.Any("err", err))
	}
}

func (c *Client) log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
