package usecase

import "time"

const (
	// DefaultListLimit bounds unpaginated transaction listings.
	DefaultListLimit = 100

	// MaxListLimit is the hard ceiling for a single page.
	MaxListLimit = 1000

	// OverviewCacheTTL is how long cached statistics rollups stay fresh.
	OverviewCacheTTL = 30 * time.Second
)
