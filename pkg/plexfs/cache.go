package plexfs

import (
	"strconv"
	"sync"

	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sync/singleflight"
)

// DirEntry is one resolved child of a directory inode.
type DirEntry struct {
	Name string
	Ino  uint64
	// Position numbers the entry within its directory, strictly
	// increasing from 1, so enumeration can be resumed.
	Position uint64
	// Mode is S_IFDIR or S_IFREG.
	Mode uint32
	Attr fuse.Attr
}

// entryCache memoizes the resolved children of every directory inode
// for the lifetime of the process. Whatever populate returns on first
// access is kept, including the empty set of a failed crawl; there is
// no retry and no expiry.
type entryCache struct {
	mu    sync.RWMutex
	dirs  map[uint64][]DirEntry
	group singleflight.Group
}

func newEntryCache() *entryCache {
	return &entryCache{dirs: make(map[uint64][]DirEntry)}
}

// entriesFor returns the cached children of parent, invoking populate
// on first access. Population is single-writer per parent: concurrent
// callers for the same parent share one populate call.
func (c *entryCache) entriesFor(parent uint64, populate func() []DirEntry) []DirEntry {
	c.mu.RLock()
	entries, ok := c.dirs[parent]
	c.mu.RUnlock()
	if ok {
		return entries
	}

	v, _, _ := c.group.Do(strconv.FormatUint(parent, 10), func() (interface{}, error) {
		c.mu.RLock()
		entries, ok := c.dirs[parent]
		c.mu.RUnlock()
		if ok {
			return entries, nil
		}

		entries = populate()

		c.mu.Lock()
		c.dirs[parent] = entries
		c.mu.Unlock()
		return entries, nil
	})
	return v.([]DirEntry)
}
