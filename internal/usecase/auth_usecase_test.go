package usecase

import (
	"testing"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/jwt"
	"maltlog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (AuthUseCase, *MockUserRepo) {
	userRepo := new(MockUserRepo)
	uc := NewAuthUseCase(userRepo, jwt.NewService("test-secret"), nil, logger.New())
	return uc, userRepo
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:    "fan@example.com",
		Handle:   "islayfan",
		Nickname: "Islay Fan",
		Password: "correct-horse",
	}
}

func TestRegister_Success(t *testing.T) {
	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "fan@example.com").Return(nil, persistent.ErrNotFound)
	userRepo.On("GetByHandle", "islayfan").Return(nil, persistent.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = "user-1"
	}).Return(nil)

	user, token, err := uc.Register(validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, "islayfan", user.Handle)
	assert.Equal(t, entity.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct-horse")))
	userRepo.AssertExpectations(t)
}

func TestRegister_NormalizesEmailAndHandle(t *testing.T) {
	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "fan@example.com").Return(nil, persistent.ErrNotFound)
	userRepo.On("GetByHandle", "islayfan").Return(nil, persistent.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	input := validRegisterInput()
	input.Email = "  Fan@Example.COM "
	input.Handle = "IslayFan"

	user, _, err := uc.Register(input)
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", user.Email)
	assert.Equal(t, "islayfan", user.Handle)
}

func TestRegister_ValidationFailures(t *testing.T) {
	uc, _ := newAuthFixture()

	bad := validRegisterInput()
	bad.Email = "not-an-email"
	_, _, err := uc.Register(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = validRegisterInput()
	bad.Handle = "x"
	_, _, err = uc.Register(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = validRegisterInput()
	bad.Password = "short"
	_, _, err = uc.Register(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "fan@example.com").Return(&entity.User{ID: "other"}, nil)

	_, _, err := uc.Register(validRegisterInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_DuplicateHandle(t *testing.T) {
	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "fan@example.com").Return(nil, persistent.ErrNotFound)
	userRepo.On("GetByHandle", "islayfan").Return(&entity.User{ID: "other"}, nil)

	_, _, err := uc.Register(validRegisterInput())
	assert.ErrorIs(t, err, ErrHandleTaken)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "fan@example.com").Return(&entity.User{
		ID:       "user-1",
		Email:    "fan@example.com",
		Password: string(hash),
		Role:     entity.RoleMember,
		IsActive: true,
	}, nil)

	user, token, err := uc.Login("fan@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	claims, err := jwt.NewService("test-secret").ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)

	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "fan@example.com").Return(&entity.User{
		ID:       "user-1",
		Password: string(hash),
		IsActive: true,
	}, nil)

	_, _, err := uc.Login("fan@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, persistent.ErrNotFound)

	_, _, err := uc.Login("ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)

	uc, userRepo := newAuthFixture()
	userRepo.On("GetByEmail", "fan@example.com").Return(&entity.User{
		ID:       "user-1",
		Password: string(hash),
		IsActive: false,
	}, nil)

	_, _, err := uc.Login("fan@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
