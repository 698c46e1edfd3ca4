// Package reconcile computes and applies the additions and removals needed to
// make collection membership match the set of items that have local extras.
package reconcile
