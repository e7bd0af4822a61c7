package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/mmark/internal/model"
	"github.com/xxxsen/mmark/internal/pkg/dbutil"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
)

var bookmarkColumns = []string{"id", "user_id", "title", "description", "url", "ctime", "mtime"}

type BookmarkRepo struct {
	db *sql.DB
}

func NewBookmarkRepo(db *sql.DB) *BookmarkRepo {
	return &BookmarkRepo{db: db}
}

func (r *BookmarkRepo) Create(ctx context.Context, bookmark *model.Bookmark) error {
	data := map[string]interface{}{
		"user_id":     bookmark.UserID,
		"title":       bookmark.Title,
		"description": bookmark.Description,
		"url":         bookmark.URL,
		"ctime":       bookmark.Ctime,
		"mtime":       bookmark.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("bookmarks", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr+" RETURNING id", args)
	return r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&bookmark.ID)
}

func (r *BookmarkRepo) List(ctx context.Context, userID int64) ([]model.Bookmark, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("bookmarks", where, bookmarkColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Bookmark, 0)
	for rows.Next() {
		item, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetByID looks a bookmark up regardless of owner. Callers must apply the ownership check.
func (r *BookmarkRepo) GetByID(ctx context.Context, bookmarkID int64) (*model.Bookmark, error) {
	return r.getOne(ctx, map[string]interface{}{"id": bookmarkID})
}

func (r *BookmarkRepo) GetByIDAndUser(ctx context.Context, userID, bookmarkID int64) (*model.Bookmark, error) {
	return r.getOne(ctx, map[string]interface{}{"id": bookmarkID, "user_id": userID})
}

// Update changes the bookmark only while it is still owned by userID.
func (r *BookmarkRepo) Update(ctx context.Context, userID, bookmarkID int64, update model.BookmarkUpdate, mtime int64) (*model.Bookmark, error) {
	where := map[string]interface{}{
		"id":      bookmarkID,
		"user_id": userID,
	}
	data := map[string]interface{}{"mtime": mtime}
	if update.Title != nil {
		data["title"] = *update.Title
	}
	if update.Description != nil {
		data["description"] = *update.Description
	}
	if update.URL != nil {
		data["url"] = *update.URL
	}
	sqlStr, args, err := builder.BuildUpdate("bookmarks", where, data)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr+" RETURNING "+strings.Join(bookmarkColumns, ","), args)
	item, err := scanBookmark(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *BookmarkRepo) Delete(ctx context.Context, userID, bookmarkID int64) error {
	where := map[string]interface{}{
		"id":      bookmarkID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("bookmarks", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *BookmarkRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Bookmark, error) {
	sqlStr, args, err := builder.BuildSelect("bookmarks", where, bookmarkColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, appErr.ErrNotFound
	}
	return scanBookmark(rows)
}

func scanBookmark(s scanner) (*model.Bookmark, error) {
	var item model.Bookmark
	if err := s.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.URL, &item.Ctime, &item.Mtime); err != nil {
		return nil, err
	}
	return &item, nil
}
