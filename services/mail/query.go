package mail

import (
	"strings"

	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/internal/enum"
)

// folderSpec describes how a folder maps onto a messages.list call and the list view flags.
type folderSpec struct {
	// query maps a lowercase category name to a search query. Empty means the folder lists by label.
	query            map[string]string
	defaultQuery     string
	labelIDs         []string
	includeSpamTrash *bool
	isInInbox        bool
}

var excludeSpamTrash = false

var folders = map[enum.MailFolder]folderSpec{
	enum.MailFolderAll: {
		query: map[string]string{
			"primary":    "category:primary",
			"social":     "category:social",
			"promotions": "category:promotions",
			"updates":    "category:updates",
			"forums":     "category:forums",
			"unread":     "is:unread",
			"sent":       "in:sent",
			"drafts":     "in:drafts",
			"trash":      "in:trash",
			"spam":       "in:spam",
		},
		defaultQuery:     "category:primary",
		includeSpamTrash: &excludeSpamTrash,
	},
	enum.MailFolderInbox: {
		query: map[string]string{
			"primary":    "in:inbox category:primary",
			"social":     "in:inbox category:social",
			"promotions": "in:inbox category:promotions",
			"updates":    "in:inbox category:updates",
			"forums":     "in:inbox category:forums",
			"unread":     "in:inbox is:unread",
			"important":  "in:inbox is:important",
			"starred":    "in:inbox is:starred",
		},
		defaultQuery:     "in:inbox category:primary",
		includeSpamTrash: &excludeSpamTrash,
		isInInbox:        true,
	},
	enum.MailFolderSpam: {
		labelIDs:  []string{enum.LabelSpam},
		isInInbox: true,
	},
	enum.MailFolderOutbox: {
		labelIDs:  []string{enum.LabelSent},
		isInInbox: true,
	},
	enum.MailFolderTrash: {
		labelIDs: []string{enum.LabelTrash},
	},
}

// CategoryQuery returns the search query for a category within a folder. Unknown names fall back to primary.
func CategoryQuery(folder enum.MailFolder, category string) string {
	fs, ok := folders[folder]
	if !ok || fs.query == nil {
		return ""
	}
	if q, ok := fs.query[strings.ToLower(strings.TrimSpace(category))]; ok {
		return q
	}
	return fs.defaultQuery
}

func listParams(folder enum.MailFolder, category, pageToken string, maxResults int64) interfaces.ListMessagesParams {
	fs := folders[folder]
	return interfaces.ListMessagesParams{
		Query:            CategoryQuery(folder, category),
		LabelIDs:         fs.labelIDs,
		PageToken:        pageToken,
		MaxResults:       maxResults,
		IncludeSpamTrash: fs.includeSpamTrash,
	}
}

func isKnownFolder(folder enum.MailFolder) bool {
	_, ok := folders[folder]
	return ok
}
