package dto

type MessageIdsRequest struct {
	MessageIDs []string `json:"messageIds"`
}

type TrashError struct {
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

type TrashResponse struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	TotalCount    int          `json:"totalCount"`
	SuccessCount  int          `json:"successCount"`
	FailedCount   int          `json:"failedCount"`
	SuccessfulIDs []string     `json:"successfulIds"`
	FailedIDs     []string     `json:"failedIds"`
	Errors        []TrashError `json:"errors"`
}

type BatchDeleteResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	DeletedCount int      `json:"deletedCount"`
	DeletedIDs   []string `json:"deletedIds"`
	Permanent    bool     `json:"permanent"`
}
