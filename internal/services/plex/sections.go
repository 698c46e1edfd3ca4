package plex

import "context"

// Sections lists the server's library sections.
func (c *Client) Sections(ctx context.Context) ([]Directory, error) {
	container, err := c.getContainer(ctx, "/library/sections", nil)
	if err != nil {
		return nil, err
	}
	return container.Directory, nil
}
