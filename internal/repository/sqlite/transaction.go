package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/devhire/devhire/pkg/models"
)

const transactionColumns = `id, from_address, to_address, amount, tx_hash, job_id, status, created`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	var jobID sql.NullInt64
	if err := row.Scan(&t.ID, &t.FromAddress, &t.ToAddress, &t.Amount, &t.TxHash, &jobID, &t.Status, &t.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if jobID.Valid {
		t.JobID = &jobID.Int64
	}

	return &t, nil
}

func (r *SQLiteRepo) CreateTransaction(ctx context.Context, t *models.Transaction) (int64, error) {
	if t == nil {
		return 0, fmt.Errorf("transaction is nil")
	}

	var jobID any
	if t.JobID != nil {
		jobID = *t.JobID
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO transactions (from_address, to_address, amount, tx_hash, job_id, status, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.FromAddress, t.ToAddress, t.Amount, t.TxHash, jobID, t.Status, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	return scanTransaction(row)
}

func (r *SQLiteRepo) GetTransactionByJob(ctx context.Context, jobID int64, fromAddress string) (*models.Transaction, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE job_id = ? AND from_address = ? ORDER BY created DESC LIMIT 1`,
		jobID, fromAddress)
	return scanTransaction(row)
}

func (r *SQLiteRepo) ListTransactionsByAddress(ctx context.Context, fromAddress string) ([]models.Transaction, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE from_address = ? ORDER BY created DESC, id DESC`,
		fromAddress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *t)
	}

	return txs, rows.Err()
}

func (r *SQLiteRepo) UpdateTransaction(ctx context.Context, id int64, upd models.TransactionUpdate) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.TxHash != nil {
		sets = append(sets, "tx_hash = ?")
		args = append(args, *upd.TxHash)
	}
	if upd.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *upd.Amount)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := r.conn.Exec(ctx, `UPDATE transactions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}
