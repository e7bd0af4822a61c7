package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mmark/internal/model"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
	"github.com/xxxsen/mmark/internal/pkg/timeutil"
)

type BookmarkStore interface {
	Create(ctx context.Context, bookmark *model.Bookmark) error
	List(ctx context.Context, userID int64) ([]model.Bookmark, error)
	GetByID(ctx context.Context, bookmarkID int64) (*model.Bookmark, error)
	GetByIDAndUser(ctx context.Context, userID, bookmarkID int64) (*model.Bookmark, error)
	Update(ctx context.Context, userID, bookmarkID int64, update model.BookmarkUpdate, mtime int64) (*model.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID int64) error
}

type BookmarkService struct {
	bookmarks BookmarkStore
}

func NewBookmarkService(bookmarks BookmarkStore) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks}
}

type BookmarkCreateInput struct {
	Title       string
	Description *string
	URL         string
}

func (s *BookmarkService) List(ctx context.Context, userID int64) ([]model.Bookmark, error) {
	return s.bookmarks.List(ctx, userID)
}

// Get returns nil without error when the bookmark is missing or owned by someone else,
// so reads do not reveal which ids exist.
func (s *BookmarkService) Get(ctx context.Context, userID, bookmarkID int64) (*model.Bookmark, error) {
	item, err := s.bookmarks.GetByIDAndUser(ctx, userID, bookmarkID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID int64, input BookmarkCreateInput) (*model.Bookmark, error) {
	now := timeutil.NowUnix()
	item := &model.Bookmark{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.bookmarks.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *BookmarkService) Update(ctx context.Context, userID, bookmarkID int64, update model.BookmarkUpdate) (*model.Bookmark, error) {
	if err := s.checkOwner(ctx, userID, bookmarkID); err != nil {
		return nil, err
	}
	item, err := s.bookmarks.Update(ctx, userID, bookmarkID, update, timeutil.NowUnix())
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrAccessDenied
		}
		return nil, err
	}
	return item, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, bookmarkID int64) error {
	if err := s.checkOwner(ctx, userID, bookmarkID); err != nil {
		return err
	}
	if err := s.bookmarks.Delete(ctx, userID, bookmarkID); err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrAccessDenied
		}
		return err
	}
	return nil
}

// checkOwner runs before any mutation. The mutation itself is also scoped to the owner,
// so a change between this check and the write still fails closed.
func (s *BookmarkService) checkOwner(ctx context.Context, userID, bookmarkID int64) error {
	item, err := s.bookmarks.GetByID(ctx, bookmarkID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrAccessDenied
		}
		return err
	}
	if err := Authorize(item.UserID, userID); err != nil {
		logutil.GetLogger(ctx).Warn("bookmark access denied",
			zap.Int64("user_id", userID),
			zap.Int64("bookmark_id", bookmarkID),
		)
		return err
	}
	return nil
}
