package orchestrators

import (
	"context"
	"log/slog"
	"time"

	achievementdom "mikrobot/internal/domain/achievement"
	memberdom "mikrobot/internal/domain/member"
	newsdom "mikrobot/internal/domain/news"
	publicationdom "mikrobot/internal/domain/publication"

	achStore "mikrobot/internal/adapters/storage/achievement"
	memberStore "mikrobot/internal/adapters/storage/member"
	newsStore "mikrobot/internal/adapters/storage/news"
	pubStore "mikrobot/internal/adapters/storage/publication"
)

// SeedDeps holds dependencies for ExecuteSeed.
type SeedDeps struct {
	MemberStore      memberStore.Store
	NewsStore        newsStore.Store
	AchievementStore achStore.Store
	PublicationStore pubStore.Store
	Now              func() time.Time
}

func (d SeedDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// ExecuteSeed inserts sample content so a fresh install is not an empty
// site. Each table is seeded independently and only when it is empty, so
// rerunning on an existing database changes nothing.
func ExecuteSeed(ctx context.Context, deps SeedDeps) error {
	if err := seedMembers(ctx, deps); err != nil {
		return err
	}
	if err := seedAchievements(ctx, deps); err != nil {
		return err
	}
	if err := seedPublications(ctx, deps); err != nil {
		return err
	}
	if err := seedNews(ctx, deps); err != nil {
		return err
	}
	return nil
}

func seedMembers(ctx context.Context, deps SeedDeps) error {
	existing, err := deps.MemberStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil // Already seeded
	}

	members := []memberdom.Member{
		{Name: "Dr hab. Ewa Nowicka", Role: "Opiekun naukowy",
			Description: "Adiunkt w katedrze automatyki. Specjalistka w dziedzinie sterowania mikrorobotami.",
			Photo:       "images/team.jpg", Category: memberdom.CategorySupervisor},
		{Name: "Mgr inż. Piotr Kowalczyk", Role: "Opiekun naukowy",
			Description: "Wieloletni praktyk inżynierii robotycznej, wspiera koło w sprawach technicznych.",
			Photo:       "images/team.jpg", Category: memberdom.CategorySupervisor},
		{Name: "Anna Kowalska", Role: "Przewodnicząca",
			Description: "Studentka automatyki i robotyki. Interesuje się projektowaniem mikrorobotów i sztuczną inteligencją.",
			Photo:       "images/team.jpg", Category: memberdom.CategoryBoard},
		{Name: "Jan Nowak", Role: "Wiceprzewodniczący",
			Description: "Entuzjasta elektroniki i programowania mikrokontrolerów. Odpowiada za koordynację projektów.",
			Photo:       "images/team.jpg", Category: memberdom.CategoryBoard},
		{Name: "Katarzyna Wiśniewska", Role: "Skarbnik",
			Description: "Specjalizuje się w mechanice precyzyjnej oraz druku 3D, prowadzi warsztaty dla nowych członków.",
			Photo:       "images/team.jpg", Category: memberdom.CategoryBoard},
		{Name: "Marek Zając", Role: "Członek",
			Description: "Student informatyki, pasjonat sztucznej inteligencji i algorytmiki.",
			Photo:       "images/team.jpg", Category: memberdom.CategoryRegular},
		{Name: "Ola Ptak", Role: "Członek",
			Description: "Studentka mechatroniki, zajmuje się projektowaniem PCB i montażem urządzeń.",
			Photo:       "images/team.jpg", Category: memberdom.CategoryRegular},
		{Name: "Tomasz Lis", Role: "Członek",
			Description: "Hobbystycznie zajmuje się drukiem 3D i programowaniem w Pythonie.",
			Photo:       "images/team.jpg", Category: memberdom.CategoryRegular},
	}
	for _, m := range members {
		if _, err := deps.MemberStore.Create(ctx, m); err != nil {
			return err
		}
	}
	slog.Info("seed_event", "event", "members_seeded", "count", len(members))
	return nil
}

func seedAchievements(ctx context.Context, deps SeedDeps) error {
	existing, err := deps.AchievementStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	achievements := []achievementdom.Achievement{
		{Title: "Grant MIN-Robotics",
			Description: "Dofinansowanie z Ministerstwa Nauki na badania nad mikro napędami i układami zasilania.",
			Date:        "2024-06-15"},
		{Title: "Program Innowacyjny Student",
			Description: "Grant na rozwój projektu MicroDrone w ramach programu Innowacyjny Student.",
			Date:        "2023-09-10"},
		{Title: "Fundusz Rozwoju Nauki",
			Description: "Środki przeznaczone na budowę zaplecza laboratoryjnego i zakup drukarki 3D o wysokiej rozdzielczości.",
			Date:        "2025-05-01"},
	}
	for _, a := range achievements {
		if _, err := deps.AchievementStore.Create(ctx, a, nil); err != nil {
			return err
		}
	}
	slog.Info("seed_event", "event", "achievements_seeded", "count", len(achievements))
	return nil
}

func seedPublications(ctx context.Context, deps SeedDeps) error {
	existing, err := deps.PublicationStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	publications := []publicationdom.Publication{
		{Title: "Publikacja w Journal of Microrobotics",
			Description: "Artykuł opisujący wyniki badań nad mikro napędami i sterowaniem.",
			Date:        "2023-05-20"},
		{Title: "Konferencja RoboTech 2024",
			Description: "Prezentacja osiągnięć koła MIKROBOT podczas konferencji RoboTech.",
			Date:        "2024-03-15"},
	}
	for _, p := range publications {
		if _, err := deps.PublicationStore.Create(ctx, p, nil); err != nil {
			return err
		}
	}
	slog.Info("seed_event", "event", "publications_seeded", "count", len(publications))
	return nil
}

func seedNews(ctx context.Context, deps SeedDeps) error {
	existing, err := deps.NewsStore.List(ctx, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	today := deps.now().Format("2006-01-02")
	items := []newsdom.News{
		{Title: "Start projektu NanoWalker",
			Content:    "Rozpoczynamy nowy projekt badawczy NanoWalker. Zapraszamy do współpracy wszystkich zainteresowanych!",
			DatePosted: today},
		{Title: "Sukces na konkursie robotycznym",
			Content:    "Nasza drużyna zdobyła pierwsze miejsce w konkursie Eurobot Junior dzięki projektowi SmartGrip.",
			DatePosted: today},
		{Title: "Warsztaty druku 3D",
			Content:    "W przyszłym tygodniu organizujemy warsztaty z druku 3D w naszym laboratorium. Liczba miejsc ograniczona.",
			DatePosted: today},
	}
	for _, n := range items {
		if _, err := deps.NewsStore.Create(ctx, n, nil); err != nil {
			return err
		}
	}
	slog.Info("seed_event", "event", "news_seeded", "count", len(items))
	return nil
}
