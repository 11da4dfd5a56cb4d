package refresh

// Log messages
const (
	LogMsgRefreshStarting  = "Codex refresh starting"
	LogMsgRefreshCompleted = "Codex refresh completed"
	LogMsgUpsertFailed     = "Failed to upsert record"
)
