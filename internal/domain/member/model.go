package member

import "errors"

// Member categories. The roster page groups members under these headings;
// an unrecognized category displays as CategoryRegular.
const (
	CategorySupervisor = "opiekun"
	CategoryBoard      = "zarząd"
	CategoryRegular    = "członek"
)

// Categories lists the recognized categories in display order.
var Categories = []string{CategorySupervisor, CategoryBoard, CategoryRegular}

// Domain errors
var (
	ErrEmptyName        = errors.New("member name cannot be empty")
	ErrEmptyRole        = errors.New("member role cannot be empty")
	ErrEmptyDescription = errors.New("member description cannot be empty")
	ErrEmptyCategory    = errors.New("member category must be selected")
)

// Member is one person on the club roster.
type Member struct {
	ID          int64
	Name        string
	Role        string
	Description string
	Photo       string // relative path under the static root, "" = no photo
	Category    string
}

// Validate checks required fields. Photo is optional.
// PRE: Member struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Member) Validate() error {
	if m.Name == "" {
		return ErrEmptyName
	}
	if m.Role == "" {
		return ErrEmptyRole
	}
	if m.Description == "" {
		return ErrEmptyDescription
	}
	if m.Category == "" {
		return ErrEmptyCategory
	}
	return nil
}

// NormalizeCategory maps unknown category values to CategoryRegular.
// INVARIANT: recognized categories pass through unchanged
func NormalizeCategory(cat string) string {
	for _, c := range Categories {
		if cat == c {
			return cat
		}
	}
	return CategoryRegular
}

// GroupByCategory splits a roster into the three display groups, keeping
// input order within each group.
// PRE: none
// POST: Every member appears in exactly one group
func GroupByCategory(members []Member) map[string][]Member {
	groups := make(map[string][]Member, len(Categories))
	for _, c := range Categories {
		groups[c] = nil
	}
	for _, m := range members {
		c := NormalizeCategory(m.Category)
		groups[c] = append(groups[c], m)
	}
	return groups
}
