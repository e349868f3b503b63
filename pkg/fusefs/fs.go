// Package fusefs binds a plexfs.Driver to the kernel through go-fuse.
// It is a thin adapter: every operation delegates to the driver, every
// driver error surfaces as ENOENT, and writes are refused before they
// reach the driver.
package fusefs

import (
	"context"
	"fmt"
	"os"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/csweichel/plexfs/pkg/plexfs"
)

// Options configure the kernel mount.
type Options struct {
	// AllowOther permits other users to access the mount. Requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// Debug enables go-fuse protocol tracing.
	Debug bool
}

// Mount mounts the driver at mountpoint and returns the serving FUSE
// server. The caller is expected to Wait on it.
func Mount(mountpoint string, driver *plexfs.Driver, opts Options) (*fuse.Server, error) {
	if err := os.Mkdir(mountpoint, 0755); err != nil && !os.IsExist(err) {
		return nil, fmt.Errorf("cannot create mountpoint %s: %w", mountpoint, err)
	}

	timeout := plexfs.Timeout
	root := &node{driver: driver, ino: plexfs.RootInode}

	return gofs.Mount(mountpoint, root, &gofs.Options{
		EntryTimeout: &timeout,
		AttrTimeout:  &timeout,
		MountOptions: fuse.MountOptions{
			FsName:     "plexfs",
			AllowOther: opts.AllowOther,
			Debug:      opts.Debug,
		},
	})
}

// node is one inode of the mounted tree. It carries nothing but the
// inode number; all metadata is resolved through the driver per call.
type node struct {
	gofs.Inode

	driver *plexfs.Driver
	ino    uint64
}

var _ gofs.InodeEmbedder = (*node)(nil)
var _ gofs.NodeGetattrer = (*node)(nil)
var _ gofs.NodeLookuper = (*node)(nil)
var _ gofs.NodeReaddirer = (*node)(nil)
var _ gofs.NodeOpener = (*node)(nil)
var _ gofs.NodeReader = (*node)(nil)

func (n *node) Getattr(ctx context.Context, f gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	attr, err := n.driver.Getattr(n.ino)
	if err != nil {
		return syscall.ENOENT
	}
	out.Attr = attr
	return 0
}

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	entry, err := n.driver.Lookup(n.ino, name)
	if err != nil {
		return nil, syscall.ENOENT
	}

	child := n.NewInode(ctx, &node{driver: n.driver, ino: entry.Ino}, gofs.StableAttr{
		Mode: entry.Mode,
		Ino:  entry.Ino,
	})
	out.Attr = entry.Attr
	return child, 0
}

func (n *node) Readdir(ctx context.Context) (gofs.DirStream, syscall.Errno) {
	entries, err := n.driver.Entries(n.ino, 0)
	if err != nil {
		return nil, syscall.ENOENT
	}

	res := make([]fuse.DirEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, fuse.DirEntry{
			Name: e.Name,
			Ino:  e.Ino,
			Mode: e.Mode,
		})
	}
	return gofs.NewListDirStream(res), 0
}

func (n *node) Open(ctx context.Context, flags uint32) (gofs.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}

	// Part content never changes for a given inode, so the kernel may
	// keep its page cache across opens.
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *node) Read(ctx context.Context, f gofs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	body, err := n.driver.Read(n.ino, off, len(dest))
	if err != nil {
		return nil, syscall.ENOENT
	}
	return fuse.ReadResultData(body), 0
}
