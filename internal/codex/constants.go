package codex

// Upstream endpoint paths
const (
	EndpointItems   = "/items"
	EndpointRecipes = "/recipes"
	EndpointMobs    = "/mobs"
)

// Resource labels for logs and metrics
const (
	ResourceItems      = "items"
	ResourceRecipes    = "recipes"
	ResourceMobs       = "mobs"
	ResourceItemDetail = "item_detail"
)

// envelopeKeys are the known wrapper keys for bulk listing responses,
// probed in order.
var envelopeKeys = []string{"data", "items", "results"}

// ingredientKeys are the field names under which recipe payloads have been
// observed to carry their input list, probed in priority order. The probe
// stops at the first non-empty match.
var ingredientKeys = []string{"ingredients", "inputs", "materials", "requirements", "components"}

// Tag hierarchy prefixes for deriving item classification from dotted
// gameplay tags such as "Item.Resource.Raw".
const (
	TagPrefixItem = "Item."
)

// Log messages
const (
	LogMsgUpstreamRequestFailed   = "Upstream request failed"
	LogMsgUpstreamBadStatus       = "Upstream returned non-success status"
	LogMsgUpstreamMalformedJSON   = "Upstream returned malformed JSON"
	LogMsgUpstreamUnknownEnvelope = "Upstream envelope shape not recognized"
	LogMsgSkippedMalformedRecord  = "Skipped malformed record in batch"
	LogMsgFetchedRecords          = "Fetched upstream records"
)
