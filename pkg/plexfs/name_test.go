package plexfs

import (
	"testing"

	"github.com/csweichel/plexfs/pkg/plex"
)

func TestResolveNameCollection(t *testing.T) {
	name, err := resolveName(plex.Item{Kind: plex.KindCollection, Title: "A/B"})
	if err != nil {
		t.Fatal(err)
	}
	if name != "A_B" {
		t.Errorf("expected A_B, got %q", name)
	}
}

func TestResolveNameTrack(t *testing.T) {
	for file, want := range map[string]string{
		"/x/song.mp3":   "song.mp3",
		"song.mp3":      "song.mp3",
		"/a/b/c/d.flac": "d.flac",
	} {
		item := plex.Item{Kind: plex.KindTrack, Title: "ignored", Media: plex.Media{Part: plex.Part{File: file}}}
		name, err := resolveName(item)
		if err != nil {
			t.Errorf("resolveName(%q): %v", file, err)
			continue
		}
		if name != want {
			t.Errorf("resolveName(%q) = %q, want %q", file, name, want)
		}
	}
}

func TestResolveNameTrackWithoutFilename(t *testing.T) {
	for _, file := range []string{"", "/x/"} {
		item := plex.Item{Kind: plex.KindTrack, Media: plex.Media{Part: plex.Part{File: file}}}
		if _, err := resolveName(item); err == nil {
			t.Errorf("expected error for part path %q", file)
		}
	}
}

func TestResolveNameVideo(t *testing.T) {
	name, err := resolveName(plex.Item{Kind: plex.KindVideo, Title: "a/b/c"})
	if err != nil {
		t.Fatal(err)
	}
	if name != "a_b_c" {
		t.Errorf("expected a_b_c, got %q", name)
	}
}
