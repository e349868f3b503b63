package plex

import (
	"encoding/xml"
	"testing"
)

const sectionXML = `<?xml version="1.0" encoding="UTF-8"?>
<MediaContainer size="3" totalSize="3" allowSync="1">
  <Directory ratingKey="5" guid="plex://album/5" title="Jazz" parentTitle="Various" summary="best of" lastViewedAt="100" addedAt="200" updatedAt="300"/>
  <Track ratingKey="9" guid="plex://track/9" title="Song" parentTitle="Jazz" addedAt="400" updatedAt="500">
    <Media container="mp3" duration="180000">
      <Part key="/library/parts/9/file.mp3" file="/x/song.mp3" size="12345" container="mp3"/>
    </Media>
  </Track>
  <Video title="Clip" grandparentTitle="Show">
    <Media videoResolution="1080" duration="60000"/>
  </Video>
</MediaContainer>`

func TestContainerDecode(t *testing.T) {
	var container Container
	if err := xml.Unmarshal([]byte(sectionXML), &container); err != nil {
		t.Fatal(err)
	}
	if len(container.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(container.Items))
	}

	dir := container.Items[0]
	if dir.Kind != KindCollection {
		t.Errorf("item 0: expected collection, got %v", dir.Kind)
	}
	if dir.RatingKey != 5 || dir.Title != "Jazz" || dir.ParentTitle != "Various" {
		t.Errorf("unexpected collection fields: %+v", dir)
	}
	if dir.LastViewedAt != 100 || dir.AddedAt != 200 || dir.UpdatedAt != 300 {
		t.Errorf("unexpected collection timestamps: %+v", dir)
	}
	if !dir.Media.Part.IsZero() {
		t.Errorf("collection should have no part: %+v", dir.Media.Part)
	}

	track := container.Items[1]
	if track.Kind != KindTrack {
		t.Errorf("item 1: expected track, got %v", track.Kind)
	}
	if track.LastViewedAt != 0 {
		t.Errorf("omitted lastViewedAt should decode to 0, got %d", track.LastViewedAt)
	}
	part := track.Media.Part
	if part.Key != "/library/parts/9/file.mp3" || part.File != "/x/song.mp3" || part.Size != 12345 {
		t.Errorf("unexpected part: %+v", part)
	}
	if track.Media.Duration != 180000 || track.Media.Container != "mp3" {
		t.Errorf("unexpected media: %+v", track.Media)
	}

	video := container.Items[2]
	if video.Kind != KindVideo {
		t.Errorf("item 2: expected video, got %v", video.Kind)
	}
	if video.GrandparentTitle != "Show" {
		t.Errorf("unexpected video fields: %+v", video)
	}
	if !video.Media.Part.IsZero() {
		t.Errorf("video without part should decode to zero part: %+v", video.Media.Part)
	}
}

func TestContainerDecodeSkipsUnknownElements(t *testing.T) {
	const body = `<MediaContainer size="1">
	  <Hub title="ignored"><Directory ratingKey="1" title="nested"/></Hub>
	  <Directory ratingKey="7" title="Blues"/>
	</MediaContainer>`

	var container Container
	if err := xml.Unmarshal([]byte(body), &container); err != nil {
		t.Fatal(err)
	}
	if len(container.Items) != 1 || container.Items[0].RatingKey != 7 {
		t.Fatalf("expected only the top-level directory, got %+v", container.Items)
	}
}

func TestParseMediaKind(t *testing.T) {
	for in, want := range map[string]MediaKind{
		"music": MediaKindMusic,
		"TV":    MediaKindTV,
		"show":  MediaKindTV,
		"video": MediaKindVideo,
		"movie": MediaKindVideo,
	} {
		got, err := ParseMediaKind(in)
		if err != nil {
			t.Errorf("ParseMediaKind(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMediaKind(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseMediaKind("podcast"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
