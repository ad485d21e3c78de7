package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/secureexam/portal-backend/internal/model"
)

// UserRepository handles account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, google_id, picture, is_admin, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.GoogleID, &u.Picture, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new account. A unique violation means the username or
// email is already taken.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, google_id, picture, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.GoogleID, u.Picture, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)
}

// GetByID retrieves an account by its id.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByUsername retrieves an account by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetByGoogleOrEmail resolves a federated identity to an existing account,
// matching on the external id first and falling back to the email.
func (r *UserRepository) GetByGoogleOrEmail(ctx context.Context, googleID, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE google_id = $1 OR email = $2
		 ORDER BY (google_id = $1) DESC
		 LIMIT 1`, googleID, email))
}

// UpdateGoogleInfo refreshes the linked external identity fields.
func (r *UserRepository) UpdateGoogleInfo(ctx context.Context, id int, googleID, picture string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET google_id = $1, picture = $2 WHERE id = $3`,
		googleID, picture, id)
	return err
}

// Update modifies an account's profile fields.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, password_hash = $3, is_admin = $4
		 WHERE id = $5`,
		u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.ID)
	return err
}

// Delete removes an account. Fails with a foreign key violation while the
// account still owns ledger entries.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// List retrieves all accounts, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
