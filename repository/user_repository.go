package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fnp-marketplace/db"
	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/utils"
)

// UserRepository handles database operations for application users
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

const userColumns = `id, name, email, phone, password_hash, role, specialization, main_activity,
	specializations, banned, created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u     models.User
		role  string
		specs []byte
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.Specialization,
		&u.MainActivity, &specs, &u.Banned, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	if err := json.Unmarshal(specs, &u.Specializations); err != nil {
		return nil, fmt.Errorf("user %s: failed to decode specializations: %w", u.ID, err)
	}
	return &u, nil
}

// List returns one page of users ordered by name, with the total match count
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter, page utils.Page) ([]*models.User, int, error) {
	var cond conditions
	if filter.Role != "" {
		cond.add("role = ?", string(filter.Role))
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		cond.add("(name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)", p, p, p)
	}

	var total int
	if err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+cond.where(), cond.args...).Scan(&total); err != nil {
		logger.Log.Errorf("❌ UserRepository.List: Error counting users: %v", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	limit, args := cond.page(page.Limit(), page.Offset())
	rows, err := db.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users`+cond.where()+` ORDER BY name, id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0, page.Limit())
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, total, nil
}

// GetByID returns one user or ErrNotFound
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, `id = $1`, id)
}

// GetByEmail looks a user up by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	u, err := scanUser(db.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

// Create inserts user, assigning its id and timestamps. A duplicate email yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	specs, err := json.Marshal(user.Specializations)
	if err != nil {
		return fmt.Errorf("failed to encode specializations: %w", err)
	}
	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = db.DB.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Phone, user.PasswordHash,
		string(user.Role), user.Specialization, user.MainActivity, specs, user.Banned, user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", user.Email, ErrConflict)
	}
	if err != nil {
		logger.Log.Errorf("❌ UserRepository.Create: Error inserting user: %v", err)
		return fmt.Errorf("failed to insert user: %w", err)
	}
	logger.Log.Infof("💾 UserRepository.Create: id=%s role=%s", user.ID, user.Role)
	return nil
}

// Update overwrites the profile, role, ban flag and password hash of user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if _, err := uuid.Parse(user.ID); err != nil {
		return ErrNotFound
	}
	specs, err := json.Marshal(user.Specializations)
	if err != nil {
		return fmt.Errorf("failed to encode specializations: %w", err)
	}
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, password_hash = $5, role = $6, specialization = $7,
		    main_activity = $8, specializations = $9, banned = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := db.DB.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Phone, user.PasswordHash,
		string(user.Role), user.Specialization, user.MainActivity, specs, user.Banned, user.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", user.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return checkAffected(res.RowsAffected())
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := db.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffected(res.RowsAffected())
}
