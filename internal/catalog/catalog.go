package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/bookshelf/internal/config"
)

// Default values filled in when the upstream response omits a field.
const (
	defaultTitle       = "No Title"
	defaultAuthor      = "Unknown Author"
	defaultDescription = "No description available"
	defaultThumbnail   = "https://via.placeholder.com/150"
	defaultInfoLink    = "#"
)

// Client queries the Google Books volumes API.
type Client struct {
	cfg        *config.GoogleBooksConfig
	httpClient *http.Client
}

// Volume is a normalized search result. It exists only within a single
// request/response cycle and is never persisted as-is.
type Volume struct {
	Title       string
	Author      string
	Description string
	Thumbnail   string
	InfoLink    string
}

// volumesResponse matches the Google Books volumes list shape.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title       string   `json:"title"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			InfoLink string `json:"infoLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func New(cfg *config.GoogleBooksConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Search issues a single GET against the volumes endpoint and returns the
// normalized results. Transport errors, non-2xx statuses and malformed bodies
// all degrade to an empty slice with a log note; the caller never sees an
// error from this method.
func (c *Client) Search(ctx context.Context, query string, limit int) []Volume {
	if query == "" {
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	if c.cfg.APIKey != "" {
		params.Set("key", c.cfg.APIKey)
	}
	searchURL := c.cfg.URL + "/volumes?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		log.Error("failed to create catalog request", "error", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("catalog request failed", "error", err)
		return nil
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		log.Warn("catalog returned non-success status", "status", resp.StatusCode, "query", query)
		return nil
	}

	var data volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Warn("failed to decode catalog response", "error", err)
		return nil
	}

	volumes := make([]Volume, 0, len(data.Items))
	for _, item := range data.Items {
		info := item.VolumeInfo

		v := Volume{
			Title:       info.Title,
			Author:      strings.Join(info.Authors, ", "),
			Description: info.Description,
			Thumbnail:   info.ImageLinks.Thumbnail,
			InfoLink:    info.InfoLink,
		}
		if v.Title == "" {
			v.Title = defaultTitle
		}
		if v.Author == "" {
			v.Author = defaultAuthor
		}
		if v.Description == "" {
			v.Description = defaultDescription
		}
		if v.Thumbnail == "" {
			v.Thumbnail = defaultThumbnail
		}
		if v.InfoLink == "" {
			v.InfoLink = defaultInfoLink
		}
		volumes = append(volumes, v)
	}

	return volumes
}
