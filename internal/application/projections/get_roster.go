package projections

import (
	"context"

	"mikrobot/internal/domain/member"
)

// RosterStore defines the member store interface for the roster projection.
type RosterStore interface {
	List(ctx context.Context) ([]member.Member, error)
}

// RosterDeps holds dependencies for the roster projection.
type RosterDeps struct {
	MemberStore RosterStore
}

// RosterGroup is one category section of the members page.
type RosterGroup struct {
	Category string
	Members  []member.Member
}

// QueryRoster returns the roster split into category sections in display
// order: supervisors, board, regular members. Empty sections are kept so
// templates can decide whether to render a heading.
func QueryRoster(ctx context.Context, deps RosterDeps) ([]RosterGroup, error) {
	all, err := deps.MemberStore.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := member.GroupByCategory(all)
	groups := make([]RosterGroup, 0, len(member.Categories))
	for _, c := range member.Categories {
		groups = append(groups, RosterGroup{Category: c, Members: grouped[c]})
	}
	return groups, nil
}
