package enum

type EmailCategory string

const (
	EmailCategoryPrimary    EmailCategory = "primary"
	EmailCategorySocial     EmailCategory = "social"
	EmailCategoryPromotions EmailCategory = "promotions"
	EmailCategoryUpdates    EmailCategory = "updates"
	EmailCategoryForums     EmailCategory = "forums"
)

func (t EmailCategory) String() string {
	return string(t)
}

type EmailPriority string

const (
	EmailPriorityHigh    EmailPriority = "high"
	EmailPriorityStarred EmailPriority = "starred"
	EmailPriorityNormal  EmailPriority = "normal"
)

func (t EmailPriority) String() string {
	return string(t)
}

// MailFolder is the logical list a dashboard view reads from.
type MailFolder string

const (
	MailFolderAll    MailFolder = "mail"
	MailFolderInbox  MailFolder = "inbox"
	MailFolderSpam   MailFolder = "spam"
	MailFolderOutbox MailFolder = "outbox"
	MailFolderTrash  MailFolder = "trash"
)

func (t MailFolder) String() string {
	return string(t)
}
