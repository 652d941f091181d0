package orchestrators

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"strings"
	"time"

	achievementdom "mikrobot/internal/domain/achievement"
	memberdom "mikrobot/internal/domain/member"
	newsdom "mikrobot/internal/domain/news"
	publicationdom "mikrobot/internal/domain/publication"
	"mikrobot/internal/domain/upload"
)

// mockFiles records saves and removals without touching the filesystem.
type mockFiles struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *mockFiles) Save(name string, src io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	p := "uploads/" + name
	f.saved = append(f.saved, p)
	return p, nil
}

func (f *mockFiles) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	f.removed = append(f.removed, relPath)
	return nil
}

// tick returns a clock advancing one second per call so generated filenames
// stay distinct within a batch.
func tick() func() time.Time {
	t := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

type mockNewsStore struct {
	items  map[int64]newsdom.News
	images map[int64]newsdom.Image
	nextID int64
}

func newMockNewsStore() *mockNewsStore {
	return &mockNewsStore{
		items:  make(map[int64]newsdom.News),
		images: make(map[int64]newsdom.Image),
	}
}

func (s *mockNewsStore) GetByID(_ context.Context, id int64) (newsdom.News, error) {
	n, ok := s.items[id]
	if !ok {
		return newsdom.News{}, sql.ErrNoRows
	}
	return n, nil
}

func (s *mockNewsStore) List(_ context.Context, limit int) ([]newsdom.News, error) {
	var list []newsdom.News
	for _, n := range s.items {
		list = append(list, n)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *mockNewsStore) Create(_ context.Context, n newsdom.News, imagePaths []string) (newsdom.News, error) {
	s.nextID++
	n.ID = s.nextID
	s.items[n.ID] = n
	for _, p := range imagePaths {
		s.nextID++
		s.images[s.nextID] = newsdom.Image{ID: s.nextID, NewsID: n.ID, Path: p}
	}
	return n, nil
}

func (s *mockNewsStore) Update(_ context.Context, n newsdom.News, newImagePaths []string) error {
	if _, ok := s.items[n.ID]; !ok {
		return sql.ErrNoRows
	}
	s.items[n.ID] = n
	for _, p := range newImagePaths {
		s.nextID++
		s.images[s.nextID] = newsdom.Image{ID: s.nextID, NewsID: n.ID, Path: p}
	}
	return nil
}

func (s *mockNewsStore) Delete(_ context.Context, id int64) error {
	delete(s.items, id)
	for imgID, img := range s.images {
		if img.NewsID == id {
			delete(s.images, imgID)
		}
	}
	return nil
}

func (s *mockNewsStore) Images(_ context.Context, newsID int64) ([]newsdom.Image, error) {
	var list []newsdom.Image
	for _, img := range s.images {
		if img.NewsID == newsID {
			list = append(list, img)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *mockNewsStore) GetImage(_ context.Context, imageID int64) (newsdom.Image, error) {
	img, ok := s.images[imageID]
	if !ok {
		return newsdom.Image{}, sql.ErrNoRows
	}
	return img, nil
}

func (s *mockNewsStore) DeleteImage(ctx context.Context, imageID int64) error {
	img, ok := s.images[imageID]
	if !ok {
		return sql.ErrNoRows
	}
	delete(s.images, imageID)
	n := s.items[img.NewsID]
	if n.Thumbnail == img.Path {
		remaining, _ := s.Images(ctx, img.NewsID)
		n.Thumbnail = newsdom.NextThumbnail(n.Thumbnail, img.Path, remaining)
		s.items[n.ID] = n
	}
	return nil
}

func (s *mockNewsStore) HasImagePath(_ context.Context, newsID int64, path string) (bool, error) {
	for _, img := range s.images {
		if img.NewsID == newsID && img.Path == path {
			return true, nil
		}
	}
	return false, nil
}

type mockAchievementStore struct {
	items  map[int64]achievementdom.Achievement
	images map[int64]achievementdom.Image
	nextID int64
}

func newMockAchievementStore() *mockAchievementStore {
	return &mockAchievementStore{
		items:  make(map[int64]achievementdom.Achievement),
		images: make(map[int64]achievementdom.Image),
	}
}

func (s *mockAchievementStore) GetByID(_ context.Context, id int64) (achievementdom.Achievement, error) {
	a, ok := s.items[id]
	if !ok {
		return achievementdom.Achievement{}, sql.ErrNoRows
	}
	return a, nil
}

func (s *mockAchievementStore) List(_ context.Context) ([]achievementdom.Achievement, error) {
	var list []achievementdom.Achievement
	for _, a := range s.items {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *mockAchievementStore) Create(_ context.Context, a achievementdom.Achievement, attach func(id int64) ([]string, error)) (achievementdom.Achievement, error) {
	s.nextID++
	a.ID = s.nextID
	var paths []string
	if attach != nil {
		var err error
		if paths, err = attach(a.ID); err != nil {
			return achievementdom.Achievement{}, err
		}
	}
	s.items[a.ID] = a
	for _, p := range paths {
		s.nextID++
		s.images[s.nextID] = achievementdom.Image{ID: s.nextID, AchievementID: a.ID, Path: p}
	}
	return a, nil
}

func (s *mockAchievementStore) Update(_ context.Context, a achievementdom.Achievement, newImagePaths []string) error {
	if _, ok := s.items[a.ID]; !ok {
		return sql.ErrNoRows
	}
	s.items[a.ID] = a
	for _, p := range newImagePaths {
		s.nextID++
		s.images[s.nextID] = achievementdom.Image{ID: s.nextID, AchievementID: a.ID, Path: p}
	}
	return nil
}

func (s *mockAchievementStore) Delete(_ context.Context, id int64) error {
	delete(s.items, id)
	for imgID, img := range s.images {
		if img.AchievementID == id {
			delete(s.images, imgID)
		}
	}
	return nil
}

func (s *mockAchievementStore) Images(_ context.Context, achievementID int64) ([]achievementdom.Image, error) {
	var list []achievementdom.Image
	for _, img := range s.images {
		if img.AchievementID == achievementID {
			list = append(list, img)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *mockAchievementStore) GetImage(_ context.Context, imageID int64) (achievementdom.Image, error) {
	img, ok := s.images[imageID]
	if !ok {
		return achievementdom.Image{}, sql.ErrNoRows
	}
	return img, nil
}

func (s *mockAchievementStore) DeleteImage(_ context.Context, imageID int64) error {
	delete(s.images, imageID)
	return nil
}

type mockPublicationStore struct {
	items  map[int64]publicationdom.Publication
	images map[int64]publicationdom.Image
	nextID int64
}

func newMockPublicationStore() *mockPublicationStore {
	return &mockPublicationStore{
		items:  make(map[int64]publicationdom.Publication),
		images: make(map[int64]publicationdom.Image),
	}
}

func (s *mockPublicationStore) GetByID(_ context.Context, id int64) (publicationdom.Publication, error) {
	p, ok := s.items[id]
	if !ok {
		return publicationdom.Publication{}, sql.ErrNoRows
	}
	return p, nil
}

func (s *mockPublicationStore) List(_ context.Context) ([]publicationdom.Publication, error) {
	var list []publicationdom.Publication
	for _, p := range s.items {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *mockPublicationStore) Create(_ context.Context, p publicationdom.Publication, attach func(id int64) ([]string, error)) (publicationdom.Publication, error) {
	s.nextID++
	p.ID = s.nextID
	var paths []string
	if attach != nil {
		var err error
		if paths, err = attach(p.ID); err != nil {
			return publicationdom.Publication{}, err
		}
	}
	s.items[p.ID] = p
	for _, path := range paths {
		s.nextID++
		s.images[s.nextID] = publicationdom.Image{ID: s.nextID, PublicationID: p.ID, Path: path}
	}
	return p, nil
}

func (s *mockPublicationStore) Update(_ context.Context, p publicationdom.Publication, newImagePaths []string) error {
	if _, ok := s.items[p.ID]; !ok {
		return sql.ErrNoRows
	}
	s.items[p.ID] = p
	for _, path := range newImagePaths {
		s.nextID++
		s.images[s.nextID] = publicationdom.Image{ID: s.nextID, PublicationID: p.ID, Path: path}
	}
	return nil
}

func (s *mockPublicationStore) Delete(_ context.Context, id int64) error {
	delete(s.items, id)
	for imgID, img := range s.images {
		if img.PublicationID == id {
			delete(s.images, imgID)
		}
	}
	return nil
}

func (s *mockPublicationStore) Images(_ context.Context, publicationID int64) ([]publicationdom.Image, error) {
	var list []publicationdom.Image
	for _, img := range s.images {
		if img.PublicationID == publicationID {
			list = append(list, img)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *mockPublicationStore) GetImage(_ context.Context, imageID int64) (publicationdom.Image, error) {
	img, ok := s.images[imageID]
	if !ok {
		return publicationdom.Image{}, sql.ErrNoRows
	}
	return img, nil
}

func (s *mockPublicationStore) DeleteImage(_ context.Context, imageID int64) error {
	delete(s.images, imageID)
	return nil
}

type mockMemberStore struct {
	items  map[int64]memberdom.Member
	nextID int64
}

func newMockMemberStore() *mockMemberStore {
	return &mockMemberStore{items: make(map[int64]memberdom.Member)}
}

func (s *mockMemberStore) GetByID(_ context.Context, id int64) (memberdom.Member, error) {
	m, ok := s.items[id]
	if !ok {
		return memberdom.Member{}, sql.ErrNoRows
	}
	return m, nil
}

func (s *mockMemberStore) List(_ context.Context) ([]memberdom.Member, error) {
	var list []memberdom.Member
	for _, m := range s.items {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *mockMemberStore) Create(_ context.Context, m memberdom.Member) (memberdom.Member, error) {
	s.nextID++
	m.ID = s.nextID
	s.items[m.ID] = m
	return m, nil
}

func (s *mockMemberStore) Update(_ context.Context, m memberdom.Member) error {
	if _, ok := s.items[m.ID]; !ok {
		return sql.ErrNoRows
	}
	s.items[m.ID] = m
	return nil
}

func (s *mockMemberStore) Delete(_ context.Context, id int64) error {
	delete(s.items, id)
	return nil
}

func fileUpload(name string) upload.Upload {
	return upload.Upload{Filename: name, Content: strings.NewReader("fake image bytes")}
}
