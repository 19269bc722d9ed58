package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	"github.com/dianadimla/walo_backend/internal/core/domain"
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	"github.com/dianadimla/walo_backend/internal/core/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/dianadimla/walo_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Test Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockUserRepository
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockRepo = new(MockUserRepository)
}

func (s *UserServiceTestSuite) TestCreateUser_NormalizesEmailAndHashesPassword() {
	svc := services.NewUserService(s.mockRepo)

	s.mockRepo.On("FindUserByEmail", s.ctx, "ana@example.com").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ana@example.com" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != "" &&
			u.PasswordHash != "s3cretpass"
	})).Return(nil).Once()

	user, err := svc.CreateUser(s.ctx, dto.RegisterRequest{
		Name:     "Ana",
		Email:    "  Ana@Example.COM ",
		Password: "s3cretpass",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "ana@example.com", user.Email)
	assert.True(s.T(), utils.CheckPasswordHash("s3cretpass", user.PasswordHash))
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateEmailRejected() {
	svc := services.NewUserService(s.mockRepo)

	existing := &domain.User{UserID: "user-1", Email: "ana@example.com"}
	s.mockRepo.On("FindUserByEmail", s.ctx, "ana@example.com").Return(existing, nil).Once()

	_, err := svc.CreateUser(s.ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "s3cretpass"})
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser")
}

func (s *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	svc := services.NewUserService(s.mockRepo)

	hash, err := utils.HashPassword("rightpassword")
	require.NoError(s.T(), err)
	user := &domain.User{UserID: "user-1", Email: "ana@example.com", PasswordHash: hash}
	s.mockRepo.On("FindUserByEmail", s.ctx, "ana@example.com").Return(user, nil).Once()

	_, err = svc.AuthenticateUser(s.ctx, "ana@example.com", "wrongpassword")
	assert.ErrorIs(s.T(), err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailIndistinguishable() {
	svc := services.NewUserService(s.mockRepo)

	s.mockRepo.On("FindUserByEmail", s.ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.AuthenticateUser(s.ctx, "ghost@example.com", "whatever")
	assert.ErrorIs(s.T(), err, apperrors.ErrUnauthorized, "unknown email and wrong password must look identical")
}

func (s *UserServiceTestSuite) TestAuthenticateUser_GoogleOnlyAccountHasNoPassword() {
	svc := services.NewUserService(s.mockRepo)

	user := &domain.User{UserID: "user-1", Email: "ana@example.com", AuthProvider: domain.ProviderGoogle}
	s.mockRepo.On("FindUserByEmail", s.ctx, "ana@example.com").Return(user, nil).Once()

	_, err := svc.AuthenticateUser(s.ctx, "ana@example.com", "anything")
	assert.ErrorIs(s.T(), err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingByGoogleID() {
	svc := services.NewUserService(s.mockRepo)

	existing := &domain.User{UserID: "user-1", GoogleID: "g-123"}
	s.mockRepo.On("FindUserByGoogleID", s.ctx, "g-123").Return(existing, nil).Once()

	user, err := svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{ID: "g-123", Email: "ana@example.com", Name: "Ana"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "user-1", user.UserID)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser")
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_LinksExistingLocalAccount() {
	svc := services.NewUserService(s.mockRepo)

	local := &domain.User{UserID: "user-1", Email: "ana@example.com", AuthProvider: domain.ProviderLocal}
	s.mockRepo.On("FindUserByGoogleID", s.ctx, "g-123").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("FindUserByEmail", s.ctx, "ana@example.com").Return(local, nil).Once()
	s.mockRepo.On("UpdateUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == "user-1" && u.GoogleID == "g-123"
	})).Return(nil).Once()

	user, err := svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{ID: "g-123", Email: "Ana@example.com", Name: "Ana"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "g-123", user.GoogleID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesOnFirstSignIn() {
	svc := services.NewUserService(s.mockRepo)

	s.mockRepo.On("FindUserByGoogleID", s.ctx, "g-123").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("FindUserByEmail", s.ctx, "ana@example.com").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.GoogleID == "g-123" && u.AuthProvider == domain.ProviderGoogle && u.PasswordHash == ""
	})).Return(nil).Once()

	user, err := svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{ID: "g-123", Email: "ana@example.com", Name: "Ana"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Ana", user.Name)
	s.mockRepo.AssertExpectations(s.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
