package projections

import (
	"context"

	"mikrobot/internal/domain/news"
)

// NewsFeedStore defines the news store interface for the feed projection.
type NewsFeedStore interface {
	List(ctx context.Context, limit int) ([]news.News, error)
	Images(ctx context.Context, newsID int64) ([]news.Image, error)
}

// NewsFeedDeps holds dependencies for the news feed projection.
type NewsFeedDeps struct {
	NewsStore NewsFeedStore
}

// NewsFeedItem is one entry of the feed with its gallery attached.
type NewsFeedItem struct {
	News   news.News
	Images []news.Image
}

// QueryNewsFeed returns news newest first with their galleries. limit <= 0
// returns everything (the news archive page); the home page passes a small
// limit.
// POST: Items are ordered by date_posted DESC, id DESC
func QueryNewsFeed(ctx context.Context, limit int, deps NewsFeedDeps) ([]NewsFeedItem, error) {
	list, err := deps.NewsStore.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]NewsFeedItem, 0, len(list))
	for _, n := range list {
		images, err := deps.NewsStore.Images(ctx, n.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, NewsFeedItem{News: n, Images: images})
	}
	return items, nil
}
