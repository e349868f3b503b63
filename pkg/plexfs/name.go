package plexfs

import (
	"fmt"
	"strings"

	"github.com/csweichel/plexfs/pkg/plex"
)

// escapeName replaces path separators so a title can serve as a single
// directory entry name.
func escapeName(s string) string {
	return strings.ReplaceAll(s, "/", "_")
}

// resolveName maps a catalog item to its directory entry name. Tracks
// are named after the final segment of their part's source file path;
// everything else uses the escaped title.
func resolveName(item plex.Item) (string, error) {
	if item.Kind != plex.KindTrack {
		return escapeName(item.Title), nil
	}

	file := item.Media.Part.File
	segment := file[strings.LastIndexByte(file, '/')+1:]
	if segment == "" {
		return "", fmt.Errorf("no filename in part path %q", file)
	}
	return segment, nil
}
