package catalog

import "time"

const (
	DefaultCacheSize = 2048
	DefaultCacheTTL  = 10 * time.Minute

	DefaultSearchResults = 10
	MaxSearchResults     = 50

	SearchKindItems   = "items"
	SearchKindRecipes = "recipes"
)

// Log messages
const (
	LogMsgResolvedMaterials = "Resolved raw materials"
)
