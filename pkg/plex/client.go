package plex

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/snabb/httpreaderat"
)

// totalSizeHeader carries the server-declared total item count of a
// paged listing, independent of how many items the page contains.
const totalSizeHeader = "X-Plex-Container-Total-Size"

// Client talks to a single Plex server with a token fixed at
// construction. It serves both catalog listings and ranged content
// reads.
type Client struct {
	host  string
	token string
	http  *http.Client

	mu      sync.Mutex
	readers map[string]*httpreaderat.HTTPReaderAt
}

// NewClient creates a client for the server at host (host:port), using
// token on every request.
func NewClient(host, token string) *Client {
	return &Client{
		host:    host,
		token:   token,
		http:    http.DefaultClient,
		readers: make(map[string]*httpreaderat.HTTPReaderAt),
	}
}

func (c *Client) url(path string, query url.Values) string {
	query.Set("X-Plex-Token", c.token)
	u := url.URL{
		Scheme:   "http",
		Host:     c.host,
		Path:     path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (c *Client) getPaged(path string, query url.Values, start, size uint64) (Container, uint64, error) {
	query.Set("X-Plex-Container-Start", strconv.FormatUint(start, 10))
	query.Set("X-Plex-Container-Size", strconv.FormatUint(size, 10))
	fullURL := c.url(path, query)
	log.WithField("url", fullURL).Debug("GET")

	resp, err := c.http.Get(fullURL)
	if err != nil {
		return Container{}, 0, fmt.Errorf("cannot fetch %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Container{}, 0, fmt.Errorf("cannot fetch %s: status %d", path, resp.StatusCode)
	}

	var total uint64
	if h := resp.Header.Get(totalSizeHeader); h != "" {
		total, err = strconv.ParseUint(h, 10, 64)
		if err != nil {
			return Container{}, 0, fmt.Errorf("invalid %s header: %w", totalSizeHeader, err)
		}
	}

	var container Container
	if err := xml.NewDecoder(resp.Body).Decode(&container); err != nil {
		return Container{}, 0, fmt.Errorf("cannot decode %s response: %w", path, err)
	}
	return container, total, nil
}

func (c *Client) get(path string, query url.Values) (Container, error) {
	container, _, err := c.getPaged(path, query, 0, 100)
	return container, err
}

// RecentlyAdded lists the server's recently-added hub for one media
// kind.
func (c *Client) RecentlyAdded(kind MediaKind) (Container, error) {
	query := url.Values{"type": {strconv.Itoa(int(kind))}}
	return c.get("/hubs/home/recentlyAdded", query)
}

// SectionPage fetches one page of a library section listing, along
// with the server-declared total item count of the section.
func (c *Client) SectionPage(section uint64, kind MediaKind, start, size uint64) (Container, uint64, error) {
	query := url.Values{"type": {strconv.Itoa(int(kind))}}
	return c.getPaged(fmt.Sprintf("/library/sections/%d/all", section), query, start, size)
}

// Metadata fetches the metadata container of a single rating key. The
// container is empty when the key is unknown to the server.
func (c *Client) Metadata(ratingKey uint64) (Container, error) {
	return c.get(fmt.Sprintf("/library/metadata/%d", ratingKey), url.Values{})
}

// MetadataChildren fetches one page of an item's children listing.
func (c *Client) MetadataChildren(ratingKey uint64, start, size uint64) (Container, uint64, error) {
	query := url.Values{
		"excludeAllLeaves":     {"1"},
		"includeExternalMedia": {"1"},
	}
	return c.getPaged(fmt.Sprintf("/library/metadata/%d/children", ratingKey), query, start, size)
}

// ReadRange reads up to size bytes at offset from the part's backing
// stream. Short reads at end of content are returned without error.
func (c *Client) ReadRange(part Part, offset int64, size int) ([]byte, error) {
	r, err := c.readerFor(part)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	n, err := r.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot read %s: %w", part.Key, err)
	}
	return buf[:n], nil
}

// readerFor returns the part's ranged reader, constructing it on first
// use. Construction issues a probing request, so readers are kept for
// the lifetime of the client.
func (c *Client) readerFor(part Part) (*httpreaderat.HTTPReaderAt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.readers[part.Key]; ok {
		return r, nil
	}

	req, err := http.NewRequest("GET", c.url(part.Key, url.Values{}), nil)
	if err != nil {
		return nil, err
	}
	r, err := httpreaderat.New(c.http, req, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open ranged reader for %s: %w", part.Key, err)
	}

	c.readers[part.Key] = r
	return r, nil
}
