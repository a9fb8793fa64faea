package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/devhire/devhire/pkg/models"
)

const userColumns = `id, name, email, password_hash, wallet, skills, bio, linkedin, is_admin, created`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var skills string
	var isAdmin int64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Wallet, &skills, &u.Bio, &u.Linkedin, &isAdmin, &u.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	u.Skills = unmarshalSkills(skills)
	u.IsAdmin = isAdmin != 0

	return &u, nil
}

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO users (name, email, password_hash, wallet, skills, bio, linkedin, is_admin, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Wallet, marshalSkills(u.Skills), u.Bio, u.Linkedin, boolToInt(u.IsAdmin), now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *SQLiteRepo) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *upd.Bio)
	}
	if upd.Linkedin != nil {
		sets = append(sets, "linkedin = ?")
		args = append(args, *upd.Linkedin)
	}
	if upd.Wallet != nil {
		sets = append(sets, "wallet = ?")
		args = append(args, *upd.Wallet)
	}
	if upd.Skills != nil {
		sets = append(sets, "skills = ?")
		args = append(args, marshalSkills(*upd.Skills))
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := r.conn.Exec(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

func (r *SQLiteRepo) SearchUsers(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 6)

	if f.ExcludeID != 0 {
		where = append(where, "id != ?")
		args = append(args, f.ExcludeID)
	}
	if f.Query != "" {
		where = append(where, "(name LIKE '%' || ? || '%' COLLATE NOCASE OR bio LIKE '%' || ? || '%' COLLATE NOCASE)")
		args = append(args, f.Query, f.Query)
	}
	if len(f.Skills) > 0 {
		clause, clauseArgs := skillOverlapClause("users.skills", f.Skills)
		where = append(where, clause)
		args = append(args, clauseArgs...)
	}

	q := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created DESC`
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	q += ` LIMIT ?`
	args = append(args, limit)

	rows, err := r.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
