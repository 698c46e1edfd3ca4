package plex

import (
	"fmt"
	"strings"
)

// envelope wraps the MediaContainer root of every Plex JSON response.
type envelope struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}

// MediaContainer is the root container for Plex API responses.
type MediaContainer struct {
	Size      int         `json:"size"`
	Directory []Directory `json:"Directory,omitempty"`
	Metadata  []Metadata  `json:"Metadata,omitempty"`
}

// Directory represents a library section.
type Directory struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// IsVideoLibrary reports whether the section holds movies or shows, the only
// section types that carry per-item extras.
func (d Directory) IsVideoLibrary() bool {
	return d.Type == "movie" || d.Type == "show"
}

// Tag is a collection (or genre, label, ...) tag attached to an item.
type Tag struct {
	Tag string `json:"tag"`
}

// Extras holds the bonus content attached to a metadata item.
type Extras struct {
	Size     int            `json:"size"`
	Metadata []ExtraContent `json:"Metadata,omitempty"`
}

// ExtraContent is a single extra (trailer, featurette, ...).
type ExtraContent struct {
	GUID  string `json:"guid,omitempty"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Metadata represents a library item (movie or episode).
type Metadata struct {
	RatingKey        string  `json:"ratingKey"`
	Key              string  `json:"key"`
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	GrandparentTitle string  `json:"grandparentTitle,omitempty"`
	ParentIndex      int     `json:"parentIndex,omitempty"`
	Index            int     `json:"index,omitempty"`
	Year             int     `json:"year,omitempty"`
	Extras           *Extras `json:"Extras,omitempty"`
	Collections      []Tag   `json:"Collection,omitempty"`
}

const localExtraPrefix = "file:///"

// HasLocalExtras reports whether the item carries at least one extra stored
// next to the media on disk, as opposed to extras streamed from plex.tv.
func (m Metadata) HasLocalExtras() bool {
	if m.Extras == nil || m.Extras.Size == 0 {
		return false
	}
	for _, extra := range m.Extras.Metadata {
		if strings.HasPrefix(extra.GUID, localExtraPrefix) {
			return true
		}
	}
	return false
}

// DisplayTitle renders a human-readable title; episodes are prefixed with
// their show and SxxEyy position.
func (m Metadata) DisplayTitle() string {
	if m.Type == "episode" && m.GrandparentTitle != "" {
		return fmt.Sprintf("%s - S%02dE%02d - %s", m.GrandparentTitle, m.ParentIndex, m.Index, m.Title)
	}
	return m.Title
}

// CollectionTags returns the item's collection tag names.
func (m Metadata) CollectionTags() []string {
	if len(m.Collections) == 0 {
		return nil
	}
	tags := make([]string, 0, len(m.Collections))
	for _, tag := range m.Collections {
		if tag.Tag != "" {
			tags = append(tags, tag.Tag)
		}
	}
	return tags
}
