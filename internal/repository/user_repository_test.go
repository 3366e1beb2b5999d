package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "hashed_password", "is_seller", "avatar", "bio", "created_at"}).
		AddRow("u1", "Ada", "ada@example.com", "hash", true, nil, "potter", int64(1700000000000))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.IsSeller)
	assert.Nil(t, user.Avatar)
	require.NotNil(t, user.Bio)
	assert.Equal(t, "potter", *user.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestUserRepository_GetUserByID_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("u1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetUserByID(context.Background(), "u1")
	assert.ErrorIs(t, err, errs.ErrInternalServer)
}

func TestUserRepository_AddUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users(id, name, email, hashed_password, is_seller, avatar, bio, created_at)")).
		WithArgs("u1", "Ada", "ada@example.com", "hash", false, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddUser(context.Background(), domain.User{
		ID:             "u1",
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: "hash",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AddUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.AddUser(context.Background(), domain.User{ID: "u1", Email: "ada@example.com"})
	assert.ErrorIs(t, err, errs.ErrEmailAlreadyUsed)
}

func TestUserRepository_UpdateUserProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	avatar := "https://cdn.example.com/ada.png"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET avatar=$1, bio=$2 WHERE id=$3")).
		WithArgs(avatar, nil, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateUserProfile(context.Background(), domain.User{ID: "u1", Avatar: &avatar})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateUserProfile(context.Background(), domain.User{ID: "missing"})
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
