package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/devhire/devhire/pkg/models"
)

const jobColumns = `id, title, description, skills, salary, location, posted_by, created`

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	var j models.Job
	var skills string
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &skills, &j.Salary, &j.Location, &j.PostedBy, &j.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	j.Skills = unmarshalSkills(skills)

	return &j, nil
}

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO jobs (title, description, skills, salary, location, posted_by, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.Title, j.Description, marshalSkills(j.Skills), j.Salary, j.Location, j.PostedBy, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

func (r *SQLiteRepo) ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 6)

	if len(f.Skills) > 0 {
		clause, clauseArgs := skillOverlapClause("jobs.skills", f.Skills)
		where = append(where, clause)
		args = append(args, clauseArgs...)
	}
	if f.Location != "" {
		where = append(where, "location LIKE '%' || ? || '%' COLLATE NOCASE")
		args = append(args, f.Location)
	}

	q := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created DESC, id DESC`

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	q += ` LIMIT ? OFFSET ?`
	args = append(args, limit, f.Offset)

	rows, err := r.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

func (r *SQLiteRepo) ListJobsByOwner(ctx context.Context, ownerID int64) ([]models.Job, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE posted_by = ? ORDER BY created DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, id int64, upd models.JobUpdate) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Skills != nil {
		sets = append(sets, "skills = ?")
		args = append(args, marshalSkills(*upd.Skills))
	}
	if upd.Salary != nil {
		sets = append(sets, "salary = ?")
		args = append(args, *upd.Salary)
	}
	if upd.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *upd.Location)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := r.conn.Exec(ctx, `UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}
