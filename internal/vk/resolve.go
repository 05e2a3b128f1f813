package vk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/vkfeed/vkfeed/internal/models"
	"github.com/vkfeed/vkfeed/pkg/telemetry"
)

// Matches group ID aliases the API does not understand itself.
var groupAliasRE = regexp.MustCompile(`^(?:event|public)(\d+)$`)

const profilePhotoFields = "photo_big,photo_medium,photo"

// ErrProfileNotFound is the user-facing resolution failure message.
const ErrProfileNotFound = "Пользователя не существует."

type userProfile struct {
	UID         int64  `json:"uid"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Photo       string `json:"photo"`
	PhotoMedium string `json:"photo_medium"`
	PhotoBig    string `json:"photo_big"`
}

type groupProfile struct {
	GID         int64  `json:"gid"`
	Name        string `json:"name"`
	Photo       string `json:"photo"`
	PhotoMedium string `json:"photo_medium"`
	PhotoBig    string `json:"photo_big"`
}

// ResolveProfile resolves a profile name (numeric ID or vanity alias) to
// a canonical actor. User lookup is tried first; an invalid-user failure
// falls back to a group lookup with known alias prefixes rewritten. If
// the group lookup fails with an invalid-group code as well, the whole
// resolution fails with the profile-not-found message.
func (c *Client) ResolveProfile(ctx context.Context, profileName string) (*models.Actor, error) {
	ctx, span := telemetry.StartSpan(ctx, "vk.resolve_profile")
	defer span.End()

	actor, err := c.resolveUser(ctx, profileName)
	if err == nil {
		return actor, nil
	}

	var serverErr *ServerError
	if !errors.As(err, &serverErr) || serverErr.Code != ErrCodeInvalidUser {
		return nil, err
	}

	c.logger.Debug("User lookup failed, trying group",
		zap.String("profile", profileName))

	actor, err = c.resolveGroup(ctx, profileName)
	if err == nil {
		return actor, nil
	}

	if errors.As(err, &serverErr) && serverErr.Code == ErrCodeInvalidGroup {
		return nil, &ServerError{Code: ErrCodeInvalidUser, Message: ErrProfileNotFound}
	}

	return nil, err
}

func (c *Client) resolveUser(ctx context.Context, profileName string) (*models.Actor, error) {
	raw, err := c.Call(ctx, "users.get", url.Values{
		"uid":    {profileName},
		"fields": {profilePhotoFields},
	})
	if err != nil {
		return nil, err
	}

	var profiles []userProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("empty user profile response")
	}

	p := profiles[0]
	return &models.Actor{
		ID:    p.UID,
		Name:  p.FirstName + " " + p.LastName,
		Photo: bestPhoto(p.PhotoBig, p.PhotoMedium, p.Photo),
	}, nil
}

func (c *Client) resolveGroup(ctx context.Context, profileName string) (*models.Actor, error) {
	// The API doesn't understand group ID aliases
	if match := groupAliasRE.FindStringSubmatch(profileName); match != nil {
		profileName = "club" + match[1]
	}

	raw, err := c.Call(ctx, "groups.getById", url.Values{
		"gid":    {profileName},
		"fields": {profilePhotoFields},
	})
	if err != nil {
		return nil, err
	}

	var profiles []groupProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal group profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("empty group profile response")
	}

	p := profiles[0]
	return &models.Actor{
		ID:    -p.GID,
		Name:  p.Name,
		Photo: bestPhoto(p.PhotoBig, p.PhotoMedium, p.Photo),
	}, nil
}

// bestPhoto picks the highest-resolution photo URL available.
func bestPhoto(big, medium, fallback string) string {
	if big != "" {
		return big
	}
	if medium != "" {
		return medium
	}
	return fallback
}

// FetchWall fetches one page of the wall of the given owner with the
// referenced profiles and groups included.
func (c *Client) FetchWall(ctx context.Context, ownerID int64) (*models.WallPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "vk.fetch_wall")
	defer span.End()

	raw, err := c.Call(ctx, "wall.get", url.Values{
		"owner_id": {strconv.FormatInt(ownerID, 10)},
		"extended": {"1"},
	})
	if err != nil {
		return nil, err
	}

	var page models.WallPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wall page: %w", err)
	}

	return &page, nil
}
