package enrich

// Log messages
const (
	LogMsgRecipeEnriched           = "Recipe enriched"
	LogMsgPersistIngredientsFailed = "Failed to persist ingredients"
	LogMsgMultipleProducingRecipes = "Item has multiple producing recipes, using first"
	LogMsgIngredientDetailFailed   = "Failed to fetch ingredient item detail"
	LogMsgIngredientCacheFailed    = "Failed to cache ingredient item"
	LogMsgReloadAfterEnrichFailed  = "Failed to reload recipe after enrichment"
	LogMsgEnrichmentDetached       = "On-demand enrichment exceeded bound, continuing in background"
	LogMsgListUnenrichedFailed     = "Failed to list unenriched recipes"
	LogMsgSweepStarted             = "Enrichment sweep started"
	LogMsgSweepCompleted           = "Enrichment sweep completed"
	LogMsgSweepCancelled           = "Enrichment sweep cancelled"
	LogMsgSweepRecipeFailed        = "Recipe enrichment failed, skipping"
)
