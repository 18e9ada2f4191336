package service

import (
	"context"
	"fmt"
	"log/slog"

	"conduit/internal/authz"
	"conduit/internal/model"
	"conduit/internal/queue"
	"conduit/internal/repository"
)

// ProfileService serves public profiles and the follow relation.
type ProfileService struct {
	users     repository.UserRepository
	follows   repository.FollowRepository
	present   *presenter
	publisher queue.Publisher
	log       *slog.Logger
}

func NewProfileService(store *repository.Store, publisher queue.Publisher, log *slog.Logger) *ProfileService {
	return &ProfileService{
		users:     store.Users,
		follows:   store.Follows,
		present:   newPresenter(store),
		publisher: publisher,
		log:       log.With("service", "profile"),
	}
}

// Get returns username's profile as seen by id. Anonymous viewers always
// see following=false.
func (s *ProfileService) Get(ctx context.Context, id authz.Identity, username string) (*model.Profile, error) {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	viewer, err := resolveViewer(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.present.profile(ctx, viewer, target)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}
	return &profile, nil
}

// Follow is idempotent: following twice reports following=true both times.
func (s *ProfileService) Follow(ctx context.Context, id authz.Identity, username string) (*model.Profile, error) {
	actor, target, err := s.pair(ctx, id, username)
	if err != nil {
		return nil, err
	}

	added, err := s.follows.Add(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, err
	}

	if added && s.publisher != nil {
		event := queue.NewUserFollowedEvent(actor.ID, target.ID)
		if _, err := s.publisher.Publish(ctx, queue.StreamArticles, event); err != nil {
			s.log.Warn("failed to publish event", "type", event.Type, "error", err)
		}
	}

	profile := model.NewProfile(target, true)
	return &profile, nil
}

// Unfollow is idempotent: unfollowing twice reports following=false both times.
func (s *ProfileService) Unfollow(ctx context.Context, id authz.Identity, username string) (*model.Profile, error) {
	actor, target, err := s.pair(ctx, id, username)
	if err != nil {
		return nil, err
	}

	if _, err := s.follows.Remove(ctx, actor.ID, target.ID); err != nil {
		return nil, err
	}

	profile := model.NewProfile(target, false)
	return &profile, nil
}

// pair resolves the target and the acting user. An unknown username is
// reported before the write check, as for any unresolvable path.
func (s *ProfileService) pair(ctx context.Context, id authz.Identity, username string) (*model.User, *model.User, error) {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	actor, err := resolveActor(ctx, s.users, id)
	if err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}
