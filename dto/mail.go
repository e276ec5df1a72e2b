package dto

// MessageView is the list representation of a Gmail message.
type MessageView struct {
	ID           string   `json:"id"`
	ThreadID     string   `json:"threadId"`
	LabelIDs     []string `json:"labelIds"`
	Snippet      string   `json:"snippet"`
	HistoryID    string   `json:"historyId"`
	InternalDate string   `json:"internalDate"`
	SizeEstimate int64    `json:"sizeEstimate"`

	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	To        string `json:"to"`
	Cc        string `json:"cc"`
	Bcc       string `json:"bcc"`

	RawDate       string `json:"rawDate"`
	FormattedDate string `json:"formattedDate"`
	Timestamp     int64  `json:"timestamp"`

	Category string `json:"category"`
	Priority string `json:"priority"`

	IsUnread    bool `json:"isUnread"`
	IsImportant bool `json:"isImportant"`
	IsStarred   bool `json:"isStarred"`
	IsSpam      bool `json:"isSpam"`
	IsTrash     bool `json:"isTrash"`

	IsInInbox      bool `json:"isInInbox"`
	HasAttachments bool `json:"hasAttachments"`
	ThreadLength   int  `json:"threadLength"`
}

// MessageDetail extends the list view with recipient, body and attachment data.
type MessageDetail struct {
	MessageView
	ToName      string          `json:"to_name"`
	ToEmail     string          `json:"to_email"`
	Body        MessageBody     `json:"body"`
	Attachments []AttachmentRef `json:"attachments"`
}

type MessageBody struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

type AttachmentRef struct {
	Filename     string `json:"filename"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	AttachmentID string `json:"attachmentId"`
}

type ListRequest struct {
	PageToken  string
	MaxResults int64
	Category   string
}

type ListResponse struct {
	Messages           []MessageView `json:"messages"`
	NextPageToken      string        `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int64         `json:"resultSizeEstimate"`
	Category           string        `json:"category"`
	Type               string        `json:"type"`
	HasMore            bool          `json:"hasMore"`
}

type DetailResponse struct {
	Message *MessageDetail `json:"message"`
}

type AttachmentResponse struct {
	AttachmentID string `json:"attachmentId"`
	Size         int64  `json:"size"`
	Data         string `json:"data"`
}
