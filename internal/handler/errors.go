package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Catalog error messages
	ErrMsgSearchFailed    = "Failed to perform search"
	ErrMsgGetItemFailed   = "Failed to retrieve item"
	ErrMsgGetRecipeFailed = "Failed to retrieve recipe"
	ErrMsgResolveFailed   = "Failed to resolve raw materials"

	// Admin error messages
	ErrMsgRefreshEnqueueFailed = "Refresh queue is full"
)

// Success messages for API responses
const (
	MsgRefreshEnqueued = "Refresh enqueued"
	MsgMobDropRecorded = "Drop recorded"
)
