package service

import (
	"context"

	"github.com/xxxsen/mmark/internal/model"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
	"github.com/xxxsen/mmark/internal/pkg/timeutil"
)

type UserService struct {
	users UserDirectory
}

func NewUserService(users UserDirectory) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUserNotFound
		}
		return nil, err
	}
	return user.Public(), nil
}

// EditProfile applies the provided profile fields. Password changes do not go through here.
func (s *UserService) EditProfile(ctx context.Context, userID int64, update model.ProfileUpdate) (*model.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, update, timeutil.NowUnix())
	if err != nil {
		switch {
		case appErr.IsNotFound(err):
			return nil, appErr.ErrUserNotFound
		case appErr.IsConflict(err):
			return nil, appErr.ErrCredentialsTaken
		}
		return nil, err
	}
	return user.Public(), nil
}
