package service

import (
	"context"
	"fmt"
	"time"

	"artmarket-backend/internal/auth"
	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/model"
	"artmarket-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ResetMailer is the slice of the mailer the password-reset flow needs.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, name, resetLink string) error
}

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, patch *dto.UserPatch) (*model.User, error)
}

type userServiceImpl struct {
	userRepo    repository.UserRepository
	authService *auth.Service
	mailer      ResetMailer
	baseURL     string
	log         *logrus.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	authService *auth.Service,
	mailer ResetMailer,
	baseURL string,
	log *logrus.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		authService: authService,
		mailer:      mailer,
		baseURL:     baseURL,
		log:         log,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       model.RoleBuyerID,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("store user in db: %w", err)
	}

	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, model.ErrInvalidCredentials
	}
	if !s.authService.CheckPassword(user.PasswordHash, password) {
		return "", nil, model.ErrInvalidCredentials
	}

	token, err := s.authService.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestPasswordReset stores a one-hour token and emails the reset link.
// It reports success even when the email is unknown so the endpoint does
// not leak which addresses are registered.
func (s *userServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil
		}
		return err
	}

	token := &model.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := s.userRepo.CreateResetToken(ctx, token); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token.Token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, resetLink); err != nil {
		s.log.WithError(err).WithField("email", user.Email).Warn("password reset email failed")
	}

	return nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uint, patch *dto.UserPatch) (*model.User, error) {
	return s.userRepo.Patch(ctx, userID, patch)
}
