package memory

import (
	"context"
	"time"

	"conduit/internal/model"
)

type userRepository struct{ *db }

func (r *userRepository) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(u); err != nil {
		return err
	}

	r.nextUserID++
	u.ID = r.nextUserID
	u.RegisteredAt = r.timestamp()

	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int64]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out := *u
			result[id] = &out
		}
	}
	return result, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *userRepository) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	if err := r.checkUnique(u); err != nil {
		return err
	}

	stored.Username = u.Username
	stored.Email = u.Email
	stored.PasswordHashed = u.PasswordHashed
	stored.Bio = u.Bio
	stored.Image = u.Image
	return nil
}

func (r *userRepository) TouchLastLogin(_ context.Context, userID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[userID]; ok {
		t := at
		u.LastLogin = &t
	}
	return nil
}

func (r *userRepository) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, model.ErrUserNotFound
}

// checkUnique must be called with the write lock held.
func (r *userRepository) checkUnique(u *model.User) error {
	for id, other := range r.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return model.ErrEmailExists
		}
		if other.Username == u.Username {
			return model.ErrUsernameExists
		}
	}
	return nil
}
