package handler_test

import (
	"context"
	"sync"

	"github.com/xxxsen/mmark/internal/model"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
)

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]*model.User)}
}

func (m *memUsers) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (m *memUsers) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByIDAndEmail(ctx context.Context, userID int64, email string) (*model.User, error) {
	u, err := m.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Email != email {
		return nil, appErr.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate, mtime int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	if update.Email != nil {
		for id, other := range m.byID {
			if id != userID && other.Email == *update.Email {
				return nil, appErr.ErrConflict
			}
		}
		u.Email = *update.Email
	}
	if update.FirstName != nil {
		u.FirstName = update.FirstName
	}
	if update.LastName != nil {
		u.LastName = update.LastName
	}
	u.Mtime = mtime
	cp := *u
	return &cp, nil
}

func (m *memUsers) delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, userID)
}

type memBookmarks struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*model.Bookmark
}

func newMemBookmarks() *memBookmarks {
	return &memBookmarks{items: make(map[int64]*model.Bookmark)}
}

func (m *memBookmarks) Create(ctx context.Context, bookmark *model.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	bookmark.ID = m.nextID
	cp := *bookmark
	m.items[bookmark.ID] = &cp
	return nil
}

func (m *memBookmarks) List(ctx context.Context, userID int64) ([]model.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Bookmark, 0)
	for id := int64(1); id <= m.nextID; id++ {
		if b, ok := m.items[id]; ok && b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookmarks) GetByID(ctx context.Context, bookmarkID int64) (*model.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[bookmarkID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookmarks) GetByIDAndUser(ctx context.Context, userID, bookmarkID int64) (*model.Bookmark, error) {
	b, err := m.GetByID(ctx, bookmarkID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, appErr.ErrNotFound
	}
	return b, nil
}

func (m *memBookmarks) Update(ctx context.Context, userID, bookmarkID int64, update model.BookmarkUpdate, mtime int64) (*model.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[bookmarkID]
	if !ok || b.UserID != userID {
		return nil, appErr.ErrNotFound
	}
	if update.Title != nil {
		b.Title = *update.Title
	}
	if update.Description != nil {
		b.Description = update.Description
	}
	if update.URL != nil {
		b.URL = *update.URL
	}
	b.Mtime = mtime
	cp := *b
	return &cp, nil
}

func (m *memBookmarks) Delete(ctx context.Context, userID, bookmarkID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[bookmarkID]
	if !ok || b.UserID != userID {
		return appErr.ErrNotFound
	}
	delete(m.items, bookmarkID)
	return nil
}
