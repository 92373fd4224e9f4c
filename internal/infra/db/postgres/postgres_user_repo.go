package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/infra/security"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo persists accounts. Phone numbers are encrypted before they touch
// the wire; everything else is stored as-is.
type UserRepo struct {
	pool *pgxpool.Pool
	enc  *security.EncryptionService
}

func NewUserRepo(pool *pgxpool.Pool, enc *security.EncryptionService) *UserRepo {
	return &UserRepo{pool: pool, enc: enc}
}

func (r *UserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}

	phoneEnc, err := r.enc.Encrypt(u.Phone)
	if err != nil {
		return fmt.Errorf("encrypt phone: %w", err)
	}

	const q = `
INSERT INTO users (
  id, first_name, last_name, email, phone_enc, date_of_birth,
  password_hash, bio, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  first_name=$2, last_name=$3, email=$4, phone_enc=$5,
  date_of_birth=$6, password_hash=$7, bio=$8, updated_at=$10;
`
	if _, err := ex.Exec(ctx, q, u.ID, u.FirstName, u.LastName, u.Email, phoneEnc,
		u.DateOfBirth, u.PasswordHash, u.Bio, u.CreatedAt, u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}

	return r.replaceTopics(ctx, ex, u.ID, u.Topics)
}

const userColumns = `id, first_name, last_name, email, phone_enc, date_of_birth,
       password_hash, bio, created_at, updated_at`

func (r *UserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	row := ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1;`, id)
	return r.scanUser(ctx, ex, row)
}

func (r *UserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	row := ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1;`,
		strings.ToLower(strings.TrimSpace(email)))
	return r.scanUser(ctx, ex, row)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, tx repository.Tx, id, passwordHash string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, `UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1;`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) ReplaceTopics(ctx context.Context, tx repository.Tx, id string, topics []string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	return r.replaceTopics(ctx, ex, id, topics)
}

func (r *UserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepo) replaceTopics(ctx context.Context, ex executor, id string, topics []string) error {
	if _, err := ex.Exec(ctx, `DELETE FROM user_topics WHERE user_id=$1;`, id); err != nil {
		return err
	}
	for _, t := range model.DedupeTopics(topics) {
		if _, err := ex.Exec(ctx, `INSERT INTO user_topics (user_id, topic) VALUES ($1,$2);`, id, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepo) scanUser(ctx context.Context, ex executor, row pgx.Row) (*model.User, error) {
	var u model.User
	var phoneEnc string
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &phoneEnc,
		&u.DateOfBirth, &u.PasswordHash, &u.Bio, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	phone, err := r.enc.Decrypt(phoneEnc)
	if err != nil {
		return nil, fmt.Errorf("decrypt phone: %w", err)
	}
	u.Phone = phone

	rows, err := ex.Query(ctx, `SELECT topic FROM user_topics WHERE user_id=$1 ORDER BY topic;`, u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		u.Topics = append(u.Topics, t)
	}
	return &u, rows.Err()
}
