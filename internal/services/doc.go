// Package services defines shared error handling for external integrations.
//
// It provides the sentinel markers (configuration, unauthorized, not found,
// transient) that classify failures from the Plex API, plus the Wrap helper
// that attaches component and operation detail so callers and logs see a
// consistent shape regardless of which service produced the error.
package services
