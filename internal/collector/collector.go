// Package collector runs one reconciliation pass: scan a Plex library section
// for items with local extras and converge the target collection on them.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"plexextras/internal/config"
	"plexextras/internal/prompt"
	"plexextras/internal/reconcile"
	"plexextras/internal/services"
	"plexextras/internal/services/plex"
)

// metadataBatchSize bounds the number of rating keys fetched per metadata
// request, keeping URLs well under Plex's length limit.
const metadataBatchSize = 50

// Summary describes what a run found and changed. Title slices are sorted by
// the caller for display.
type Summary struct {
	Section     plex.Directory
	ItemCount   int
	ExtrasCount int

	// Titles of items already in the collection that still have extras.
	AlreadyIn []string
	// Titles added to and removed from the collection this run.
	Added   []string
	Removed []string
	// Titles that would have been removed but were kept (no_delete).
	Kept []string

	Failed int
}

// Collector wires the Plex client, the prompter, and the reconciler together.
type Collector struct {
	client   *plex.Client
	prompter *prompt.Prompter
	cfg      *config.Config
	logger   *slog.Logger
}

// New constructs a Collector.
func New(client *plex.Client, prompter *prompt.Prompter, cfg *config.Config, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{client: client, prompter: prompter, cfg: cfg, logger: logger}
}

type itemInfo struct {
	title     string
	tags      []string
	hasExtras bool
}

// Run performs one full pass: connection check, section resolution, scan,
// diff, and best-effort mutation application.
func (c *Collector) Run(ctx context.Context) (*Summary, error) {
	if err := c.client.CheckConnection(ctx); err != nil {
		return nil, err
	}

	section, err := c.resolveSection(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("scanning section", "key", section.Key, "title", section.Title, "type", section.Type)

	items, err := c.client.SectionItems(ctx, section)
	if err != nil {
		return nil, err
	}
	c.logger.Info("found items to parse", "count", len(items))

	info, err := c.loadMetadata(ctx, items)
	if err != nil {
		return nil, err
	}

	collectionName := c.cfg.Collection.Name
	withExtras := make(reconcile.Set)
	members := make(reconcile.Set)
	for id, item := range info {
		if item.hasExtras {
			withExtras[id] = struct{}{}
		}
		for _, tag := range item.tags {
			if tag == collectionName {
				members[id] = struct{}{}
				break
			}
		}
	}
	c.logger.Info("scan complete",
		"items", len(info),
		"with_extras", len(withExtras),
		"in_collection", len(members))

	plan := reconcile.Diff(withExtras, members, c.cfg.Collection.NoDelete)
	if plan.Empty() {
		c.logger.Info("collection already converged", "collection", collectionName)
	}

	summary := &Summary{
		Section:     section,
		ItemCount:   len(info),
		ExtrasCount: len(withExtras),
	}
	for id := range members {
		if _, ok := withExtras[id]; ok {
			summary.AlreadyIn = append(summary.AlreadyIn, info[id].title)
		}
	}
	sort.Strings(summary.AlreadyIn)

	if c.cfg.Collection.NoDelete {
		for _, id := range reconcile.Diff(withExtras, members, false).Remove {
			summary.Kept = append(summary.Kept, info[id].title)
		}
		sort.Strings(summary.Kept)
	}

	mutator := &tagMutator{
		client:     c.client,
		section:    section,
		collection: collectionName,
		items:      info,
	}
	result, err := reconcile.Apply(ctx, plan, mutator, c.logger)
	summary.Failed = result.Failed
	for _, id := range result.Added {
		summary.Added = append(summary.Added, info[id].title)
	}
	for _, id := range result.Removed {
		summary.Removed = append(summary.Removed, info[id].title)
	}
	sort.Strings(summary.Added)
	sort.Strings(summary.Removed)
	if err != nil {
		return summary, err
	}
	return summary, nil
}

// resolveSection finds the configured section, falling back to an interactive
// chooser when the key is missing or names a library without video items.
func (c *Collector) resolveSection(ctx context.Context) (plex.Directory, error) {
	sections, err := c.client.Sections(ctx)
	if err != nil {
		return plex.Directory{}, err
	}

	configured := c.cfg.Plex.Section
	for _, section := range sections {
		if section.Key != configured {
			continue
		}
		if section.IsVideoLibrary() {
			return section, nil
		}
		c.logger.Warn("configured section is not a movie or show library",
			"key", section.Key, "type", section.Type)
		break
	}
	if configured != "" {
		c.logger.Warn("configured section not usable, choosing interactively", "section", configured)
	}

	choices := make([]prompt.Choice, 0, len(sections))
	byKey := make(map[string]plex.Directory, len(sections))
	for _, section := range sections {
		if !section.IsVideoLibrary() {
			continue
		}
		choices = append(choices, prompt.Choice{Key: section.Key, Label: section.Title})
		byKey[section.Key] = section
	}
	if len(choices) == 0 {
		return plex.Directory{}, services.Wrap(services.ErrConfiguration, "collector", "resolve section",
			"server has no movie or show libraries", nil)
	}
	if c.prompter == nil || !c.prompter.Interactive() {
		return plex.Directory{}, services.Wrap(services.ErrConfiguration, "collector", "resolve section",
			fmt.Sprintf("section %q not found and no terminal available to choose one", configured), nil)
	}

	key, err := c.prompter.Choose("Choose a library to scan:", choices)
	if err != nil {
		return plex.Directory{}, services.Wrap(services.ErrConfiguration, "collector", "resolve section", "", err)
	}
	return byKey[key], nil
}

// loadMetadata fetches full metadata (extras, collection tags) in batches.
func (c *Collector) loadMetadata(ctx context.Context, items []plex.Metadata) (map[string]itemInfo, error) {
	info := make(map[string]itemInfo, len(items))

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.RatingKey != "" {
			ids = append(ids, item.RatingKey)
		}
	}

	start := time.Now()
	for offset := 0; offset < len(ids); offset += metadataBatchSize {
		end := offset + metadataBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := c.client.ItemsMetadata(ctx, ids[offset:end])
		if err != nil {
			return nil, fmt.Errorf("fetch metadata batch at offset %d: %w", offset, err)
		}
		for _, item := range batch {
			info[item.RatingKey] = itemInfo{
				title:     item.DisplayTitle(),
				tags:      item.CollectionTags(),
				hasExtras: item.HasLocalExtras(),
			}
		}
		c.logger.Debug("processed metadata batch",
			"done", end, "total", len(ids), "elapsed", time.Since(start).Round(time.Millisecond))
	}
	return info, nil
}

// tagMutator applies membership changes by rewriting an item's full tag list,
// which also creates the collection on the first addition.
type tagMutator struct {
	client     *plex.Client
	section    plex.Directory
	collection string
	items      map[string]itemInfo
}

func (m *tagMutator) AddToCollection(ctx context.Context, itemID string) error {
	tags := append([]string{}, m.items[itemID].tags...)
	for _, tag := range tags {
		if tag == m.collection {
			return nil
		}
	}
	tags = append(tags, m.collection)
	return m.client.SetCollections(ctx, m.section, itemID, tags)
}

func (m *tagMutator) RemoveFromCollection(ctx context.Context, itemID string) error {
	var tags []string
	for _, tag := range m.items[itemID].tags {
		if tag != m.collection {
			tags = append(tags, tag)
		}
	}
	return m.client.SetCollections(ctx, m.section, itemID, tags)
}
