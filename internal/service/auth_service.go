package service

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mmark/internal/model"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
	"github.com/xxxsen/mmark/internal/pkg/jwt"
	"github.com/xxxsen/mmark/internal/pkg/password"
	"github.com/xxxsen/mmark/internal/pkg/timeutil"
)

// AccessTokenTTL is fixed; tokens cannot be revoked before it elapses.
const AccessTokenTTL = 15 * time.Minute

// decoyHash is verified when signin targets an unknown email so both failure paths
// spend the same argon2 work.
const decoyHash = "$argon2id$v=19$m=65536,t=3,p=4$c29tZXNhbHRzb21lc2FsdA$MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY"

// UserDirectory is the durable user store. Implementations return appErr.ErrNotFound on
// lookup misses and appErr.ErrConflict when the email is already registered.
type UserDirectory interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID int64) (*model.User, error)
	GetByIDAndEmail(ctx context.Context, userID int64, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate, mtime int64) (*model.User, error)
}

type AuthService struct {
	users     UserDirectory
	jwtSecret []byte
}

func NewAuthService(users UserDirectory, secret []byte) *AuthService {
	return &AuthService{users: users, jwtSecret: secret}
}

func (s *AuthService) Signup(ctx context.Context, email, plainPassword string) (string, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return "", err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return "", appErr.ErrCredentialsTaken
		}
		return "", err
	}
	logutil.GetLogger(ctx).Info("user signed up", zap.Int64("user_id", user.ID))
	return s.issue(user)
}

func (s *AuthService) Signin(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			_ = password.Verify(decoyHash, plainPassword)
			return "", appErr.ErrIncorrectCredentials
		}
		return "", err
	}
	if !password.Verify(user.PasswordHash, plainPassword) {
		return "", appErr.ErrIncorrectCredentials
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to the live user it was issued for. The token
// stops working once the user is gone or has changed email.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, appErr.ErrUnauthorized
	}
	claims, err := jwt.ParseToken(token, s.jwtSecret)
	if err != nil {
		logutil.GetLogger(ctx).Debug("reject bearer token", zap.Error(err))
		return nil, appErr.ErrUnauthorized
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, appErr.ErrUnauthorized
	}
	user, err := s.users.GetByIDAndEmail(ctx, userID, claims.Email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUnauthorized
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *AuthService) issue(user *model.User) (string, error) {
	return jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, AccessTokenTTL)
}
