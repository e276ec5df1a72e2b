package message

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/customeros/webmail/internal/enum"
)

func TestClassify_SocialUnread(t *testing.T) {
	c := Classify([]string{"CATEGORY_SOCIAL", "UNREAD"})

	assert.Equal(t, enum.EmailCategorySocial, c.Category)
	assert.Equal(t, enum.EmailPriorityNormal, c.Priority)
	assert.True(t, c.Flags.Unread)
	assert.False(t, c.Flags.Important)
	assert.False(t, c.Flags.Starred)
}

func TestPriorityOf(t *testing.T) {
	assert.Equal(t, enum.EmailPriorityHigh, PriorityOf([]string{"IMPORTANT", "STARRED"}))
	assert.Equal(t, enum.EmailPriorityHigh, PriorityOf([]string{"STARRED", "IMPORTANT"}))
	assert.Equal(t, enum.EmailPriorityStarred, PriorityOf([]string{"STARRED"}))
	assert.Equal(t, enum.EmailPriorityNormal, PriorityOf(nil))
}

func TestCategoryOf_Cascade(t *testing.T) {
	tests := []struct {
		labels   []string
		expected enum.EmailCategory
	}{
		{[]string{"CATEGORY_FORUMS", "CATEGORY_SOCIAL"}, enum.EmailCategorySocial},
		{[]string{"CATEGORY_UPDATES", "CATEGORY_PROMOTIONS"}, enum.EmailCategoryPromotions},
		{[]string{"CATEGORY_FORUMS", "CATEGORY_UPDATES"}, enum.EmailCategoryUpdates},
		{[]string{"CATEGORY_FORUMS"}, enum.EmailCategoryForums},
		{[]string{"CATEGORY_PERSONAL", "INBOX"}, enum.EmailCategoryPrimary},
		{nil, enum.EmailCategoryPrimary},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategoryOf(tt.labels), "%v", tt.labels)
	}
}

func TestFlagsOf(t *testing.T) {
	flags := FlagsOf([]string{"SPAM", "TRASH", "STARRED"})

	assert.Equal(t, Flags{Starred: true, Spam: true, Trash: true}, flags)
}
