// Package payments moves posting-fee transactions from pending to a settled
// state. The flow knows nothing about jobs beyond the optional association
// id; pay-before-post ordering is the HTTP surface's responsibility.
package payments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/devhire/devhire/pkg/chain"
	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository"
	"github.com/google/uuid"
)

var (
	// ErrNotFound reports an unknown transaction id.
	ErrNotFound = errors.New("transaction not found")
	// ErrAlreadySettled reports a verify attempt on a terminal transaction.
	ErrAlreadySettled = errors.New("transaction already settled")
	// ErrVerificationFailed reports a chain lookup that did not confirm the
	// payment. The stored transaction stays pending and may be retried.
	ErrVerificationFailed = errors.New("transaction verification failed")
)

// Flow orchestrates the pending -> completed/failed transition for posting
// fees.
type Flow struct {
	txRepo      repository.TransactionRepo
	verifier    chain.Verifier
	adminWallet string
	logger      *slog.Logger
}

func NewFlow(txRepo repository.TransactionRepo, verifier chain.Verifier, adminWallet string, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Flow{txRepo: txRepo, verifier: verifier, adminWallet: adminWallet, logger: logger}
}

// InitiateRequest describes a payment to open.
type InitiateRequest struct {
	Amount      float64
	FromAddress string
	JobID       *int64
}

// Initiate opens a transaction record. A non-positive amount is the free
// posting path: the record is created already completed, with a placeholder
// hash so the uniqueness constraint holds without any chain interaction.
// Otherwise the record starts pending with a distinguishable placeholder.
func (f *Flow) Initiate(ctx context.Context, req InitiateRequest) (*models.Transaction, error) {
	t := &models.Transaction{
		FromAddress: req.FromAddress,
		ToAddress:   f.adminWallet,
		Amount:      req.Amount,
		JobID:       req.JobID,
	}

	if req.Amount <= 0 {
		t.Amount = 0
		t.Status = models.TxCompleted
		t.TxHash = "zero-" + uuid.NewString()
	} else {
		t.Status = models.TxPending
		t.TxHash = "pending-" + uuid.NewString()
	}
	if t.FromAddress == "" {
		t.FromAddress = "N/A"
	}

	id, err := f.txRepo.CreateTransaction(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	t.ID = id

	f.logger.Info("payment initiated",
		slog.Int64("transaction_id", id),
		slog.Float64("amount", t.Amount),
		slog.String("status", t.Status))

	return f.txRepo.GetTransactionByID(ctx, id)
}

// Verify settles a pending transaction. With no hash this is the free-posting
// confirmation path and the record moves straight to completed. With a hash
// the chain is queried: a successful receipt completes the record and
// overwrites the placeholder hash and amount with the chain-reported values;
// anything else returns ErrVerificationFailed and leaves the record pending.
func (f *Flow) Verify(ctx context.Context, transactionID int64, txHash string) (*models.Transaction, error) {
	t, err := f.txRepo.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if t.Status != models.TxPending {
		// terminal states are never re-verified
		return t, ErrAlreadySettled
	}

	if txHash == "" {
		completed := models.TxCompleted
		if err := f.txRepo.UpdateTransaction(ctx, transactionID, models.TransactionUpdate{Status: &completed}); err != nil {
			return nil, fmt.Errorf("update transaction: %w", err)
		}
		return f.txRepo.GetTransactionByID(ctx, transactionID)
	}

	if f.verifier == nil {
		return nil, fmt.Errorf("%w: no chain verifier configured", ErrVerificationFailed)
	}

	receipt, err := f.verifier.VerifyTransaction(ctx, txHash)
	if err != nil {
		f.logger.Warn("chain verification failed", slog.Int64("transaction_id", transactionID), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if !receipt.Success {
		return nil, fmt.Errorf("%w: receipt status indicates failure", ErrVerificationFailed)
	}

	completed := models.TxCompleted
	upd := models.TransactionUpdate{
		Status: &completed,
		TxHash: &txHash,
		Amount: &receipt.Amount,
	}
	if err := f.txRepo.UpdateTransaction(ctx, transactionID, upd); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	f.logger.Info("payment verified",
		slog.Int64("transaction_id", transactionID),
		slog.String("tx_hash", txHash),
		slog.Float64("amount", receipt.Amount))

	return f.txRepo.GetTransactionByID(ctx, transactionID)
}
