package achievement

import "errors"

// Domain errors
var (
	ErrEmptyTitle       = errors.New("achievement title cannot be empty")
	ErrEmptyDescription = errors.New("achievement description cannot be empty")
	ErrEmptyDate        = errors.New("achievement date cannot be empty")
)

// Achievement is a grant, award, or competition result shown on the public
// showcase page. Date is a free-text string (typically YYYY-MM-DD) and is
// only used for ordering.
type Achievement struct {
	ID          int64
	Title       string
	Description string
	Date        string
}

// Image is one uploaded file attached to an achievement.
type Image struct {
	ID            int64
	AchievementID int64
	Path          string
}

// Validate checks required fields.
// PRE: Achievement struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Achievement) Validate() error {
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if a.Description == "" {
		return ErrEmptyDescription
	}
	if a.Date == "" {
		return ErrEmptyDate
	}
	return nil
}
