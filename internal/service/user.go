package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"conduit/internal/authz"
	"conduit/internal/model"
	"conduit/internal/repository"
	"conduit/internal/validation"
)

// MsgTaken is reported for a unique field whose value is already in use.
const MsgTaken = "has already been taken"

// UserService handles registration, login and the authenticated user's own record.
type UserService struct {
	repo     repository.UserRepository
	tokens   *TokenService
	hashCost int
	now      func() time.Time
	log      *slog.Logger
}

func NewUserService(repo repository.UserRepository, tokens *TokenService, log *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
		log:      log.With("service", "user"),
	}
}

// Register creates an account. Email and username uniqueness are checked
// independently so both can be reported at once.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserBody, error) {
	errs := validation.Errors{}
	if err := s.checkEmailFree(ctx, req.Email, errs); err != nil {
		return nil, err
	}
	if err := s.checkUsernameFree(ctx, req.Username, errs); err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHashed: hashed,
		LastLogin:      &now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if verr := conflictErrors(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return s.body(user, "")
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.UserBody, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.log.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	return s.body(user, "")
}

// Current returns the caller's own record with the token they presented.
func (s *UserService) Current(ctx context.Context, id authz.Identity) (*model.UserBody, error) {
	user, err := s.self(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.body(user, id.Token)
}

// Update changes the caller's own record. Only values that differ from the
// stored ones are checked for uniqueness. A fresh token is issued because
// the identity claims may have changed.
func (s *UserService) Update(ctx context.Context, id authz.Identity, req *model.UpdateUserRequest) (*model.UserBody, error) {
	user, err := s.self(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validation.Errors{}
	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailFree(ctx, *req.Email, errs); err != nil {
			return nil, err
		}
	}
	if req.Username != nil && *req.Username != user.Username {
		if err := s.checkUsernameFree(ctx, *req.Username, errs); err != nil {
			return nil, err
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Image != nil {
		user.Image = *req.Image
	}
	if req.Password != nil {
		if user.PasswordHashed, err = s.hash(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if verr := conflictErrors(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return s.body(user, "")
}

// SetImage stores url as the caller's image.
func (s *UserService) SetImage(ctx context.Context, id authz.Identity, url string) (*model.UserBody, error) {
	return s.Update(ctx, id, &model.UpdateUserRequest{Image: &url})
}

// self loads the record the identity refers to and applies the self-only rule.
func (s *UserService) self(ctx context.Context, id authz.Identity) (*model.User, error) {
	if err := authz.RequireIdentity(id); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessUser(id, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) checkEmailFree(ctx context.Context, email string, errs validation.Errors) error {
	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		errs.Add("email", MsgTaken)
	}
	return nil
}

func (s *UserService) checkUsernameFree(ctx context.Context, username string, errs validation.Errors) error {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		errs.Add("username", MsgTaken)
	}
	return nil
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// body renders u for its owner. An empty token means "issue a new one".
func (s *UserService) body(u *model.User, token string) (*model.UserBody, error) {
	if token == "" {
		var err error
		if token, err = s.tokens.Issue(u); err != nil {
			return nil, err
		}
	}
	return &model.UserBody{
		Email:    u.Email,
		Username: u.Username,
		Token:    token,
		Bio:      u.Bio,
		Image:    u.Image,
	}, nil
}

// conflictErrors maps a lost uniqueness race to the same field error the
// up-front check reports.
func conflictErrors(err error) validation.Errors {
	switch {
	case errors.Is(err, model.ErrEmailExists):
		return validation.Field("email", MsgTaken)
	case errors.Is(err, model.ErrUsernameExists):
		return validation.Field("username", MsgTaken)
	}
	return nil
}
