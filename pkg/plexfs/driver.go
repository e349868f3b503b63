package plexfs

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"
	log "github.com/sirupsen/logrus"

	"github.com/csweichel/plexfs/pkg/plex"
)

// ErrNotFound is the only error the driver surfaces. Remote failures
// are deliberately collapsed into it: an unreachable server makes
// directories look empty and files look missing instead of raising
// I/O errors.
var ErrNotFound = errors.New("no such entry")

// Default ownership of exposed nodes when Options leave it unset.
const (
	DefaultUID = 501
	DefaultGID = 20
)

// Options tune what the synthesizer cannot derive from the catalog.
type Options struct {
	// UID and GID own every exposed node. Zero values fall back to
	// DefaultUID/DefaultGID.
	UID uint32
	GID uint32
}

// Driver exposes one library section through four operations: Lookup,
// Getattr, Read, and Entries. All state beyond the entry cache lives
// on the server; operations block on remote I/O and carry no timeout
// or cancellation of their own.
type Driver struct {
	api     CatalogAPI
	section uint64
	kind    plex.MediaKind
	owner   fuse.Owner
	cache   *entryCache
}

// NewDriver creates a driver serving the given section of the catalog.
func NewDriver(api CatalogAPI, section uint64, kind plex.MediaKind, opts Options) *Driver {
	owner := fuse.Owner{Uid: opts.UID, Gid: opts.GID}
	if owner.Uid == 0 {
		owner.Uid = DefaultUID
	}
	if owner.Gid == 0 {
		owner.Gid = DefaultGID
	}

	return &Driver{
		api:     api,
		section: section,
		kind:    kind,
		owner:   owner,
		cache:   newEntryCache(),
	}
}

// Lookup resolves name within the directory parent.
func (d *Driver) Lookup(parent uint64, name string) (DirEntry, error) {
	log.WithField("parent", parent).WithField("name", name).Debug("lookup")

	for _, e := range d.entries(parent) {
		if e.Name == name {
			return e, nil
		}
	}
	return DirEntry{}, ErrNotFound
}

// Getattr synthesizes attributes for an inode. The root is answered
// locally; every other inode costs one metadata fetch.
func (d *Driver) Getattr(ino uint64) (fuse.Attr, error) {
	log.WithField("ino", ino).Debug("getattr")

	if ino == RootInode {
		return rootAttr(d.owner), nil
	}

	item, err := d.fetchItem(ino)
	if err != nil {
		return fuse.Attr{}, err
	}

	attr, ok := synthesize(item, d.owner)
	if !ok {
		return fuse.Attr{}, ErrNotFound
	}
	return attr, nil
}

// Read fetches up to size bytes at offset from the track behind ino.
// Reads past end of content come back short, as the kernel expects.
func (d *Driver) Read(ino uint64, offset int64, size int) ([]byte, error) {
	log.WithField("ino", ino).WithField("offset", offset).WithField("size", size).Debug("read")

	if ino == RootInode {
		return nil, ErrNotFound
	}

	item, err := d.fetchItem(ino)
	if err != nil {
		return nil, err
	}
	if item.Kind != plex.KindTrack {
		return nil, ErrNotFound
	}

	body, err := d.api.ReadRange(item.Media.Part, offset, size)
	if err != nil {
		log.WithError(err).WithField("ino", ino).Debug("ranged read failed")
		return nil, ErrNotFound
	}
	if len(body) > size {
		body = body[:size]
	}
	return body, nil
}

// Entries enumerates the directory ino from position start onward, in
// a stable order. The root is always enumerable; any other inode
// enumerates its children listing.
func (d *Driver) Entries(ino uint64, start int) ([]DirEntry, error) {
	log.WithField("ino", ino).WithField("start", start).Debug("enumerate")

	entries := d.entries(ino)
	if start >= len(entries) {
		return nil, nil
	}
	return entries[start:], nil
}

// entries returns the resolved children of ino, crawling the section
// listing (root) or the item's children listing (any other inode) on
// first access.
func (d *Driver) entries(ino uint64) []DirEntry {
	return d.cache.entriesFor(ino, func() []DirEntry {
		var fetch pageFunc
		if ino == RootInode {
			fetch = func(start, size uint64) ([]plex.Item, uint64, error) {
				container, total, err := d.api.SectionPage(d.section, d.kind, start, size)
				return container.Items, total, err
			}
		} else {
			fetch = func(start, size uint64) ([]plex.Item, uint64, error) {
				container, total, err := d.api.MetadataChildren(ino-RootInode, start, size)
				return container.Items, total, err
			}
		}

		items, err := crawl(fetch)
		if err != nil {
			log.WithError(err).WithField("ino", ino).Warn("directory listing incomplete")
		}
		return d.resolveEntries(items)
	})
}

// resolveEntries turns crawled items into directory entries, dropping
// items without a resolvable name or synthesizable attributes.
// Duplicate names get a deterministic " (2)", " (3)"... suffix in
// server order rather than silently replacing the earlier entry. The
// suffixed name is checked against every name emitted so far, so a
// suffix can never collide with a literal entry either.
func (d *Driver) resolveEntries(items []plex.Item) []DirEntry {
	entries := make([]DirEntry, 0, len(items))
	taken := make(map[string]bool, len(items))

	for _, item := range items {
		attr, ok := synthesize(item, d.owner)
		if !ok {
			continue
		}

		name, err := resolveName(item)
		if err != nil {
			log.WithError(err).WithField("ratingKey", item.RatingKey).Debug("skipping unnamed item")
			continue
		}

		if taken[name] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s (%d)", name, n)
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		taken[name] = true

		mode := uint32(syscall.S_IFREG)
		if item.Kind == plex.KindCollection {
			mode = syscall.S_IFDIR
		}

		entries = append(entries, DirEntry{
			Name:     name,
			Ino:      RootInode + item.RatingKey,
			Position: uint64(len(entries) + 1),
			Mode:     mode,
			Attr:     attr,
		})
	}
	return entries
}

// fetchItem retrieves single-item metadata for a non-root inode. The
// dedicated metadata fetch, not the entry cache, is authoritative for
// attributes and part details.
func (d *Driver) fetchItem(ino uint64) (plex.Item, error) {
	container, err := d.api.Metadata(ino - RootInode)
	if err != nil {
		log.WithError(err).WithField("ino", ino).Debug("metadata fetch failed")
		return plex.Item{}, ErrNotFound
	}
	if len(container.Items) == 0 {
		return plex.Item{}, ErrNotFound
	}
	return container.Items[0], nil
}
