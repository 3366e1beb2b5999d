package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/rs/zerolog/log"
)

const userColumns = "id, name, email, hashed_password, is_seller, avatar, bio, created_at"

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (res domain.User, err error) {
	err = r.db.GetContext(ctx, &res, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, errs.ErrAccountNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, id string) (res domain.User, err error) {
	err = r.db.GetContext(ctx, &res, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, errs.ErrAccountNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByID").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (err error) {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().UnixMilli()
	}

	_, err = r.db.NamedExecContext(ctx, "INSERT INTO users(id, name, email, hashed_password, is_seller, avatar, bio, created_at) VALUES (:id, :name, :email, :hashed_password, :is_seller, :avatar, :bio, :created_at)", data)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrEmailAlreadyUsed
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *UserRepositoryImpl) UpdateUserProfile(ctx context.Context, data domain.User) (err error) {
	result, err := r.db.NamedExecContext(ctx, "UPDATE users SET avatar=:avatar, bio=:bio WHERE id=:id", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUserProfile").Msg("")
		return errs.ErrInternalServer
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUserProfile").Msg("")
		return errs.ErrInternalServer
	}

	if affected == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}
