package suggest

import (
	"context"
	"strings"
)

// Category classifies what kind of event a suggestion is being asked for.
type Category string

const (
	CategoryInterview  Category = "interview"
	CategoryMeeting    Category = "meeting"
	CategoryTrip       Category = "trip"
	CategoryConference Category = "conference"
	CategoryGeneric    Category = "generic"
)

type Suggestion struct {
	Category Category `json:"category"`
	Advice   string   `json:"suggestion"`
}

// Provider produces preparation advice for an event. Implementations must
// degrade to a fallback advice string instead of returning transport or
// decoding errors; the feature is advisory, not critical-path.
type Provider interface {
	Name() string
	Suggest(ctx context.Context, title, description string) (Suggestion, error)
}

// keyword sets in match priority order; first hit wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryInterview, []string{"面试", "interview"}},
	{CategoryMeeting, []string{"见面", "meeting", "约会"}},
	{CategoryTrip, []string{"旅行", "trip", "自驾"}},
	{CategoryConference, []string{"会议", "conference"}},
}

// Classify picks the advice category for an event from its title and
// description. It is pure and total: unmatched input is CategoryGeneric.
func Classify(title, description string) Category {
	combined := strings.ToLower(title) + " " + strings.ToLower(description)
	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(combined, kw) {
				return set.category
			}
		}
	}
	return CategoryGeneric
}
