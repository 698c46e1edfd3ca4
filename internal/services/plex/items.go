package plex

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Plex numeric metadata types for the /all endpoint.
const (
	typeMovie   = "1"
	typeEpisode = "4"
)

func libraryType(sectionType string) (string, error) {
	switch sectionType {
	case "movie":
		return typeMovie, nil
	case "show":
		// Extras hang off episodes, not the show container.
		return typeEpisode, nil
	default:
		return "", fmt.Errorf("section type %q has no scannable items", sectionType)
	}
}

// SectionItems lists every movie (or episode, for show libraries) in a section.
// The returned metadata is shallow; use ItemsMetadata to load extras and
// collection tags.
func (c *Client) SectionItems(ctx context.Context, section Directory) ([]Metadata, error) {
	itemType, err := libraryType(section.Type)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("type", itemType)

	container, err := c.getContainer(ctx, "/library/sections/"+section.Key+"/all", query)
	if err != nil {
		return nil, err
	}
	return container.Metadata, nil
}

// ItemsMetadata fetches full metadata, including extras and collection tags,
// for the given rating keys in a single request. Plex caps URL length rather
// than id count; callers batch ids (see collector) to stay well clear of it.
func (c *Client) ItemsMetadata(ctx context.Context, ids []string) ([]Metadata, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("includeExtras", "1")

	path := "/library/metadata/" + strings.Join(ids, ",")
	container, err := c.getContainer(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return container.Metadata, nil
}
