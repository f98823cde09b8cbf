package usecase

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/jwt"
	"maltlog/pkg/logger"
	"maltlog/pkg/s3"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var handlePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

type RegisterInput struct {
	Email    string
	Handle   string
	Nickname string
	Password string
}

type AuthUseCase interface {
	Register(input RegisterInput) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UploadAvatar(userID string, file io.Reader, contentType string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	s3Client   *s3.Client
	logger     *logger.Logger
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, s3Client *s3.Client, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		s3Client:   s3Client,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(input RegisterInput) (*entity.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	handle := strings.ToLower(strings.TrimSpace(input.Handle))
	nickname := strings.TrimSpace(input.Nickname)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if !handlePattern.MatchString(handle) {
		return nil, "", fmt.Errorf("%w: handle must be 3-30 chars of a-z, 0-9 or _", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Error("Failed to check email: %v", err)
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := uc.userRepo.GetByHandle(handle); err == nil {
		return nil, "", ErrHandleTaken
	} else if !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Error("Failed to check handle: %v", err)
		return nil, "", fmt.Errorf("failed to check handle: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Handle:   handle,
		Nickname: nickname,
		Password: string(hash),
		Role:     entity.RoleMember,
		IsActive: true,
	}
	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Info("User registered: %s", user.Handle)
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		uc.logger.Error("Failed to fetch user: %v", err)
		return nil, "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (uc *authUseCase) UploadAvatar(userID string, file io.Reader, contentType string) (*entity.User, error) {
	user, err := uc.GetUser(userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s", userID, uuid.New().String())
	path, err := uc.s3Client.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user.AvatarURL = path
	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
