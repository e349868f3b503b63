package plexfs

import (
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/csweichel/plexfs/pkg/plex"
)

// RootInode is the reserved inode of the mount root. Every catalog
// item gets inode RootInode + ratingKey; rating keys are assumed to
// never be zero, so the mapping is a bijection.
const RootInode = 1

// Timeout is the entry and attribute TTL advertised to the kernel. It
// bounds how long the kernel may reuse a reply without calling back
// into the driver; the driver's own entry cache never expires.
const Timeout = time.Hour

// rootAttr returns the fixed attributes of the mount root. The root
// has no catalog item and never costs a remote call.
func rootAttr(owner fuse.Owner) fuse.Attr {
	return fuse.Attr{
		Ino:   RootInode,
		Mode:  syscall.S_IFDIR | 0444,
		Nlink: 2,
		Owner: owner,
	}
}

// synthesize maps a catalog item to filesystem attributes. Collections
// become read-only directories, tracks with a part become read-only
// regular files. Videos and partless tracks report ok=false and stay
// invisible to the filesystem. This is the only place permission bits,
// ownership, and timestamp semantics are fixed.
func synthesize(item plex.Item, owner fuse.Owner) (attr fuse.Attr, ok bool) {
	attr = fuse.Attr{
		Ino:   RootInode + item.RatingKey,
		Atime: uint64(item.LastViewedAt),
		Mtime: uint64(item.UpdatedAt),
		Ctime: uint64(item.AddedAt),
		Nlink: 1,
		Owner: owner,
	}

	switch item.Kind {
	case plex.KindCollection:
		attr.Mode = syscall.S_IFDIR | 0444

	case plex.KindTrack:
		if item.Media.Part.IsZero() {
			return fuse.Attr{}, false
		}
		attr.Mode = syscall.S_IFREG | 0444
		attr.Size = item.Media.Part.Size
		attr.Blocks = 1

	default:
		return fuse.Attr{}, false
	}

	return attr, true
}
