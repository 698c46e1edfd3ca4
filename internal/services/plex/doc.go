// Package plex is a thin HTTP client for the Plex Media Server endpoints
// plexextras needs: connection checks, library section listing, item metadata
// with extras, and per-item collection tag updates.
package plex
