package plex

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// MediaKind selects which library item type the server should list.
type MediaKind int

const (
	MediaKindVideo MediaKind = 1
	MediaKindTV    MediaKind = 2
	MediaKindMusic MediaKind = 8
)

// ParseMediaKind maps a configuration string to a MediaKind.
func ParseMediaKind(s string) (MediaKind, error) {
	switch strings.ToLower(s) {
	case "video", "movie":
		return MediaKindVideo, nil
	case "tv", "show":
		return MediaKindTV, nil
	case "music":
		return MediaKindMusic, nil
	}
	return 0, fmt.Errorf("unknown media kind %q", s)
}

func (k MediaKind) String() string {
	switch k {
	case MediaKindVideo:
		return "video"
	case MediaKindTV:
		return "tv"
	case MediaKindMusic:
		return "music"
	}
	return fmt.Sprintf("MediaKind(%d)", int(k))
}

// Kind discriminates the item variants a media container can hold.
type Kind int

const (
	// KindCollection is any container-like item the server lists as a
	// <Directory> element: artist, album, show, season, section.
	KindCollection Kind = iota
	// KindTrack is a playable item backed by a part.
	KindTrack
	// KindVideo is a playable video. The filesystem only ever sees its
	// metadata.
	KindVideo
)

// Item is a single entry of a media container. The zero value of every
// field is what the server's omitted attributes decode to.
type Item struct {
	Kind             Kind   `xml:"-"`
	RatingKey        uint64 `xml:"ratingKey,attr"`
	GUID             string `xml:"guid,attr"`
	Title            string `xml:"title,attr"`
	ParentTitle      string `xml:"parentTitle,attr"`
	GrandparentTitle string `xml:"grandparentTitle,attr"`
	Summary          string `xml:"summary,attr"`
	LastViewedAt     int64  `xml:"lastViewedAt,attr"`
	AddedAt          int64  `xml:"addedAt,attr"`
	UpdatedAt        int64  `xml:"updatedAt,attr"`
	Media            Media  `xml:"Media"`
}

// Media describes the single media stream of a playable item.
type Media struct {
	Container       string `xml:"container,attr"`
	VideoResolution string `xml:"videoResolution,attr"`
	Duration        int64  `xml:"duration,attr"`
	Part            Part   `xml:"Part"`
}

// Part points at the byte stream backing a playable item. Key is the
// server path used for ranged reads, File the source filename on the
// server.
type Part struct {
	Key       string `xml:"key,attr"`
	File      string `xml:"file,attr"`
	Size      uint64 `xml:"size,attr"`
	Container string `xml:"container,attr"`
}

// IsZero reports whether the server sent no part for this item.
func (p Part) IsZero() bool {
	return p.Key == "" && p.File == "" && p.Size == 0
}

// Container mirrors the <MediaContainer> element wrapping every
// catalog response. Items keeps server order, which may interleave
// element types.
type Container struct {
	Items []Item
}

var _ xml.Unmarshaler = (*Container)(nil)

func (c *Container) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var kind Kind
			switch t.Name.Local {
			case "Directory":
				kind = KindCollection
			case "Track":
				kind = KindTrack
			case "Video":
				kind = KindVideo
			default:
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}

			var item Item
			if err := d.DecodeElement(&item, &t); err != nil {
				return err
			}
			item.Kind = kind
			c.Items = append(c.Items, item)

		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}
