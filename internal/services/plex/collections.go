package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SetCollections rewrites an item's full list of collection tags. Plex treats
// the PUT as authoritative: tags absent from the list are removed, and a tag
// naming a collection that does not exist yet creates it.
func (c *Client) SetCollections(ctx context.Context, section Directory, itemID string, tags []string) error {
	itemType, err := libraryType(section.Type)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("type", itemType)
	query.Set("id", itemID)
	for i, tag := range tags {
		query.Set(fmt.Sprintf("collection[%d].tag.tag", i), tag)
	}

	_, err = c.do(ctx, http.MethodPut, "/library/sections/"+section.Key+"/all", query)
	if err != nil {
		return fmt.Errorf("update collections for item %s: %w", itemID, err)
	}
	return nil
}
