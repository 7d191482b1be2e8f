package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/resenaapp/resena-server/internal/domain"
	"github.com/resenaapp/resena-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, created_at, usuario, password_hash, perfil`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	var createdAt string

	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&u.Username,
		&u.PasswordHash,
		&u.ProfileImage,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a new user and fills in the generated id.
// Returns store.ErrAlreadyExists if the username is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (created_at, usuario, password_hash, perfil)
		VALUES (?, ?, ?, ?)`,
		formatTime(user.CreatedAt),
		user.Username,
		user.PasswordHash,
		user.ProfileImage,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("usuario already exists")
		}
		return store.ErrInternal.WithCause(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	user.ID = id
	return nil
}

// GetUserByUsername retrieves a user by exact username match.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE usuario = ?`, username)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("usuario not found")
	}
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return u, nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("usuario not found")
	}
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return u, nil
}
