package enum

// System label ids assigned by Gmail.
const (
	LabelInbox              = "INBOX"
	LabelSent               = "SENT"
	LabelSpam               = "SPAM"
	LabelTrash              = "TRASH"
	LabelUnread             = "UNREAD"
	LabelImportant          = "IMPORTANT"
	LabelStarred            = "STARRED"
	LabelCategorySocial     = "CATEGORY_SOCIAL"
	LabelCategoryPromotions = "CATEGORY_PROMOTIONS"
	LabelCategoryUpdates    = "CATEGORY_UPDATES"
	LabelCategoryForums     = "CATEGORY_FORUMS"
)
