package projections

import (
	"context"

	"mikrobot/internal/domain/achievement"
	"mikrobot/internal/domain/publication"
)

// ShowcaseAchievementStore defines the achievement store interface for the
// showcase projection.
type ShowcaseAchievementStore interface {
	List(ctx context.Context) ([]achievement.Achievement, error)
	Images(ctx context.Context, achievementID int64) ([]achievement.Image, error)
}

// ShowcasePublicationStore defines the publication store interface for the
// showcase projection.
type ShowcasePublicationStore interface {
	List(ctx context.Context) ([]publication.Publication, error)
	Images(ctx context.Context, publicationID int64) ([]publication.Image, error)
}

// ShowcaseDeps holds dependencies for the showcase projection.
type ShowcaseDeps struct {
	AchievementStore ShowcaseAchievementStore
	PublicationStore ShowcasePublicationStore
}

// ShowcaseAchievement pairs an achievement with its gallery.
type ShowcaseAchievement struct {
	Achievement achievement.Achievement
	Images      []achievement.Image
}

// ShowcasePublication pairs a publication with its gallery.
type ShowcasePublication struct {
	Publication publication.Publication
	Images      []publication.Image
}

// Showcase is everything the achievements page renders.
type Showcase struct {
	Achievements []ShowcaseAchievement
	Publications []ShowcasePublication
}

// QueryShowcase returns achievements and publications newest first, each
// with its gallery. The two sections render on one page.
func QueryShowcase(ctx context.Context, deps ShowcaseDeps) (Showcase, error) {
	var sc Showcase

	achievements, err := deps.AchievementStore.List(ctx)
	if err != nil {
		return Showcase{}, err
	}
	for _, a := range achievements {
		images, err := deps.AchievementStore.Images(ctx, a.ID)
		if err != nil {
			return Showcase{}, err
		}
		sc.Achievements = append(sc.Achievements, ShowcaseAchievement{Achievement: a, Images: images})
	}

	publications, err := deps.PublicationStore.List(ctx)
	if err != nil {
		return Showcase{}, err
	}
	for _, p := range publications {
		images, err := deps.PublicationStore.Images(ctx, p.ID)
		if err != nil {
			return Showcase{}, err
		}
		sc.Publications = append(sc.Publications, ShowcasePublication{Publication: p, Images: images})
	}
	return sc, nil
}
