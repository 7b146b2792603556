package main

import "bangskull/models"

// Move directions for banner reordering.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// nextOrderIndex returns the rank for a newly created banner: one past the
// highest existing rank, 1 for an empty table. Ranks are dense, so with the
// invariant held this equals len(banners)+1.
func nextOrderIndex(banners []models.PromoBanner) int {
	max := 0
	for _, b := range banners {
		if b.OrderIndex > max {
			max = b.OrderIndex
		}
	}
	return max + 1
}

// adjacentBanner finds the neighbor a move would swap with: the banner
// ranked directly above for "up", directly below for "down". Active and
// inactive banners rank alike. Returns nil at the edges (already first or
// last) and for unknown directions.
func adjacentBanner(banners []models.PromoBanner, target models.PromoBanner, direction string) *models.PromoBanner {
	want := 0
	switch direction {
	case MoveUp:
		want = target.OrderIndex - 1
	case MoveDown:
		want = target.OrderIndex + 1
	default:
		return nil
	}
	for i := range banners {
		if banners[i].ID != target.ID && banners[i].OrderIndex == want {
			return &banners[i]
		}
	}
	return nil
}
