package plexfs

import "github.com/csweichel/plexfs/pkg/plex"

// pageSize bounds the payload of a single listing round trip. Sections
// can hold thousands of items; the crawler hides the paging loop from
// its callers.
const pageSize = 50

// pageFunc fetches one page of a listing and reports the
// server-declared total number of items.
type pageFunc func(start, size uint64) ([]plex.Item, uint64, error)

// crawl drains a paged listing into a single item set, in server
// order. A first-page failure yields no items. A failure on a later
// page keeps the pages fetched so far and returns them together with
// the error, so callers can tell a truncated listing from a complete
// one.
func crawl(fetch pageFunc) ([]plex.Item, error) {
	items, total, err := fetch(0, pageSize)
	if err != nil {
		return nil, err
	}

	for start := uint64(pageSize); start < total; start += pageSize {
		page, _, err := fetch(start, pageSize)
		if err != nil {
			return items, err
		}
		items = append(items, page...)
	}
	return items, nil
}
