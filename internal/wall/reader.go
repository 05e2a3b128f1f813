// Package wall reads a profile's wall through the VK API and renders it
// into HTML feed items.
package wall

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vkfeed/vkfeed/internal/models"
	"github.com/vkfeed/vkfeed/internal/vk"
	"github.com/vkfeed/vkfeed/pkg/logging"
	"github.com/vkfeed/vkfeed/pkg/telemetry"
)

// ReadOptions control which posts appear and how they are framed.
type ReadOptions struct {
	// ForeignPosts keeps posts written on the wall by other actors.
	ForeignPosts bool
	// ShowPhoto wraps each item in a table with the author's avatar.
	ShowPhoto bool
}

// Reader reads walls: resolve the profile, fetch one page of posts,
// render each post.
type Reader struct {
	client   *vk.Client
	renderer *Renderer
	siteURL  string
	logger   *zap.Logger
}

// NewReader creates a wall reader
func NewReader(client *vk.Client, renderer *Renderer, siteURL string) *Reader {
	return &Reader{
		client:   client,
		renderer: renderer,
		siteURL:  siteURL,
		logger:   logging.GetLogger().With(zap.String("component", "wall-reader")),
	}
}

// Read reads the wall of the specified profile. Resolution or fetch
// failures abort the whole read; there are no partial results.
func (r *Reader) Read(ctx context.Context, profileName string, opts ReadOptions) (*models.Wall, error) {
	ctx, span := telemetry.StartSpan(ctx, "wall.read")
	defer span.End()

	owner, err := r.client.ResolveProfile(ctx, profileName)
	if err != nil {
		return nil, err
	}

	page, err := r.client.FetchWall(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	actors := page.Actors()

	items := make([]models.FeedItem, 0, len(page.Posts))
	for i := range page.Posts {
		item, ok := r.renderer.assemblePost(&page.Posts[i], *owner, actors, opts)
		if !ok {
			continue
		}
		items = append(items, *item)
	}

	r.logger.Info("Wall read",
		zap.String("profile", profileName),
		zap.Int64("owner_id", owner.ID),
		zap.Int("posts", len(page.Posts)),
		zap.Int("items", len(items)))

	return &models.Wall{
		URL:   fmt.Sprintf("%s%s", r.siteURL, profileName),
		Name:  owner.Name,
		Photo: owner.Photo,
		Items: items,
	}, nil
}
