package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/awesome-blog/internal/errs"
	"github.com/deppfellow/awesome-blog/internal/lib/job"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/rs/zerolog"
)

type UserService struct {
	users userStore
	auth  *AuthService
	jobs  Enqueuer
}

func NewUserService(users userStore, auth *AuthService, jobs Enqueuer) *UserService {
	return &UserService{users: users, auth: auth, jobs: jobs}
}

// Session is a signed-in user with the token that identifies them.
type Session struct {
	User  *model.User
	Token string
}

// Register creates an account and signs the new user in.
func (s *UserService) Register(ctx context.Context, req *model.RegisterUserRequest) (*Session, error) {
	logger := zerolog.Ctx(ctx)

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, errs.NewValueError("email", "Email is already in use.")
	}

	hash, err := s.auth.HashPassword(req.Passwd)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:  req.Email,
		Passwd: hash,
		Name:   req.Name,
		Image:  model.GravatarURL(req.Email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("user registered")

	s.enqueueWelcome(ctx, user)

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// enqueueWelcome schedules the welcome email. Failures are only logged.
func (s *UserService) enqueueWelcome(ctx context.Context, user *model.User) {
	if s.jobs == nil {
		return
	}
	logger := zerolog.Ctx(ctx)

	task, err := job.NewWelcomeEmailTask(user.Email, user.Name)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build welcome email task")
		return
	}

	info, err := s.jobs.Enqueue(ctx, task)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to enqueue welcome email")
		return
	}
	logger.Debug().Str("task_id", info.ID).Msg("welcome email enqueued")
}

// Authenticate checks email and password and signs the user in.
func (s *UserService) Authenticate(ctx context.Context, req *model.AuthenticateRequest) (*Session, error) {
	users, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errs.NewValueError("email", "Email not exist.")
	}

	user := users[0]
	if !s.auth.CheckPassword(user.Passwd, req.Passwd) {
		return nil, errs.NewValueError("passwd", "Invalid password.")
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns one page of users, newest first.
func (s *UserService) List(ctx context.Context, index int64) (*model.Listing[model.User], error) {
	page, users, err := s.users.ListPage(ctx, index, model.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return &model.Listing[model.User]{Page: page, Items: users}, nil
}
