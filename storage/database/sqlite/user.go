package sqliterepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/prepclass/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// userRow mirrors the users table; times are stored as RFC3339 text.
type userRow struct {
	Username     string         `db:"username"`
	PasswordHash []byte         `db:"password_hash"`
	CreatedAt    string         `db:"created_at"`
	LastLogin    sql.NullString `db:"last_login"`
}

func (r userRow) toUser() user.User {
	usr := user.User{
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
	}
	usr.CreatedAt, _ = time.Parse(time.RFC3339, r.CreatedAt)
	if r.LastLogin.Valid {
		usr.LastLogin, _ = time.Parse(time.RFC3339, r.LastLogin.String)
	}
	return usr
}

func newUserRow(usr user.User) userRow {
	row := userRow{
		Username:     usr.Username,
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt.Format(time.RFC3339),
	}
	if !usr.LastLogin.IsZero() {
		row.LastLogin = sql.NullString{String: usr.LastLogin.Format(time.RFC3339), Valid: true}
	}
	return row
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username string) error {
	var count int
	err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE username = ?`, username)
	if err != nil {
		return wrapDBErr(err, "checking username uniqueness")
	}
	if count > 0 {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.NamedExecContext(ctx, `
INSERT INTO users (username, password_hash, created_at, last_login)
VALUES (:username, :password_hash, :created_at, :last_login)`, newUserRow(usr))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, wrapDBErr(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	err := repo.db.SelectContext(ctx, &rows, `
SELECT username, password_hash, created_at, last_login FROM users ORDER BY username`)
	if err != nil {
		return nil, wrapDBErr(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row, `
SELECT username, password_hash, created_at, last_login FROM users WHERE username = ?`, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, wrapDBErr(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.NamedExecContext(ctx, `
UPDATE users SET password_hash = :password_hash, last_login = :last_login
WHERE username = :username`, newUserRow(usr))
	if err != nil {
		return user.User{}, wrapDBErr(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
