// Package plexfs exposes a remote Plex library section as a read-only
// virtual filesystem: collections become directories, tracks become
// files whose content is fetched on demand with ranged reads. The
// package implements the four filesystem operations over plain inode
// numbers; binding them to a kernel mount is pkg/fusefs's job.
package plexfs

import "github.com/csweichel/plexfs/pkg/plex"

// CatalogAPI is the remote catalog surface the driver consumes. It is
// implemented by *plex.Client; tests substitute a fake.
type CatalogAPI interface {
	RecentlyAdded(kind plex.MediaKind) (plex.Container, error)
	SectionPage(section uint64, kind plex.MediaKind, start, size uint64) (plex.Container, uint64, error)
	Metadata(ratingKey uint64) (plex.Container, error)
	MetadataChildren(ratingKey, start, size uint64) (plex.Container, uint64, error)
	ReadRange(part plex.Part, offset int64, size int) ([]byte, error)
}

var _ CatalogAPI = (*plex.Client)(nil)
