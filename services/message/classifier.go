package message

import (
	"github.com/customeros/webmail/internal/enum"
)

// Flags mirrors the state labels of a message.
type Flags struct {
	Unread    bool
	Important bool
	Starred   bool
	Spam      bool
	Trash     bool
}

// Classification is everything derived from a label set.
type Classification struct {
	Category enum.EmailCategory
	Priority enum.EmailPriority
	Flags    Flags
}

var categoryCascade = []struct {
	label    string
	category enum.EmailCategory
}{
	{enum.LabelCategorySocial, enum.EmailCategorySocial},
	{enum.LabelCategoryPromotions, enum.EmailCategoryPromotions},
	{enum.LabelCategoryUpdates, enum.EmailCategoryUpdates},
	{enum.LabelCategoryForums, enum.EmailCategoryForums},
}

type labelSet map[string]struct{}

func newLabelSet(labels []string) labelSet {
	set := make(labelSet, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

func (s labelSet) has(label string) bool {
	_, ok := s[label]
	return ok
}

// CategoryOf picks the first matching category label in cascade order, defaulting to primary.
func CategoryOf(labels []string) enum.EmailCategory {
	return newLabelSet(labels).category()
}

// PriorityOf ranks IMPORTANT over STARRED.
func PriorityOf(labels []string) enum.EmailPriority {
	return newLabelSet(labels).priority()
}

// FlagsOf reports which state labels are present.
func FlagsOf(labels []string) Flags {
	return newLabelSet(labels).flags()
}

func Classify(labels []string) Classification {
	set := newLabelSet(labels)
	return Classification{
		Category: set.category(),
		Priority: set.priority(),
		Flags:    set.flags(),
	}
}

func (s labelSet) category() enum.EmailCategory {
	for _, c := range categoryCascade {
		if s.has(c.label) {
			return c.category
		}
	}
	return enum.EmailCategoryPrimary
}

func (s labelSet) priority() enum.EmailPriority {
	switch {
	case s.has(enum.LabelImportant):
		return enum.EmailPriorityHigh
	case s.has(enum.LabelStarred):
		return enum.EmailPriorityStarred
	default:
		return enum.EmailPriorityNormal
	}
}

func (s labelSet) flags() Flags {
	return Flags{
		Unread:    s.has(enum.LabelUnread),
		Important: s.has(enum.LabelImportant),
		Starred:   s.has(enum.LabelStarred),
		Spam:      s.has(enum.LabelSpam),
		Trash:     s.has(enum.LabelTrash),
	}
}
