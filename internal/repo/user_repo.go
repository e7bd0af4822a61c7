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

var userColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "ctime", "mtime"}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts the user and stores the generated id back into it.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr+" RETURNING id", args)
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&user.ID); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) GetByIDAndEmail(ctx context.Context, userID int64, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID, "email": email})
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate, mtime int64) (*model.User, error) {
	where := map[string]interface{}{"id": userID}
	data := map[string]interface{}{"mtime": mtime}
	if update.FirstName != nil {
		data["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		data["last_name"] = *update.LastName
	}
	if update.Email != nil {
		data["email"] = *update.Email
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, data)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr+" RETURNING "+strings.Join(userColumns, ","), args)
	user, err := scanUser(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		if dbutil.IsConflict(err) {
			return nil, appErr.ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
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
	return scanUser(rows)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s scanner) (*model.User, error) {
	var user model.User
	if err := s.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}
