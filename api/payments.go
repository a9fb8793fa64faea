package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/devhire/devhire/internal/config"
	"github.com/devhire/devhire/internal/payments"
	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository"
	"github.com/gorilla/mux"
)

type PaymentsHandler struct {
	flow     *payments.Flow
	txRepo   repository.TransactionRepo
	userRepo repository.UserRepo
	payment  config.PaymentConfig
}

func NewPaymentsHandler(flow *payments.Flow, tr repository.TransactionRepo, ur repository.UserRepo, payment config.PaymentConfig) *PaymentsHandler {
	return &PaymentsHandler{flow: flow, txRepo: tr, userRepo: ur, payment: payment}
}

// Requirements publishes the current posting fee. A zero amount means
// postings are free.
func (h *PaymentsHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	description := "No payment required to post a job"
	if h.payment.Amount > 0 {
		description = "Payment required to post a job"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"amount":      h.payment.Amount,
		"currency":    h.payment.Currency,
		"network":     h.payment.Network,
		"adminWallet": h.payment.AdminWallet,
		"description": description,
	})
}

type initiatePaymentRequest struct {
	Amount      float64 `json:"amount"`
	FromAddress string  `json:"from_address"`
	JobID       *int64  `json:"job_id"`
}

func (h *PaymentsHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFrom(r); !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req initiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}

	tx, err := h.flow.Initiate(r.Context(), payments.InitiateRequest{
		Amount:      req.Amount,
		FromAddress: req.FromAddress,
		JobID:       req.JobID,
	})
	if err != nil {
		serverError(w, "payments: initiate", err)
		return
	}

	resp := map[string]any{"transaction": tx}
	if tx.Status == models.TxCompleted {
		resp["message"] = "Zero-amount flow: payment skipped"
	} else {
		resp["message"] = "Payment initiated"
		resp["paymentDetails"] = map[string]any{
			"to":      h.payment.AdminWallet,
			"amount":  req.Amount,
			"network": h.payment.Network,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type verifyPaymentRequest struct {
	TransactionID int64  `json:"transaction_id"`
	TxHash        string `json:"tx_hash"`
}

func (h *PaymentsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFrom(r); !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.TransactionID == 0 {
		errorJSON(w, "Missing transaction id", http.StatusBadRequest)
		return
	}

	tx, err := h.flow.Verify(r.Context(), req.TransactionID, req.TxHash)
	switch {
	case errors.Is(err, payments.ErrNotFound):
		errorJSON(w, "Transaction not found", http.StatusNotFound)
		return
	case errors.Is(err, payments.ErrAlreadySettled):
		errorJSON(w, "Transaction already settled", http.StatusBadRequest)
		return
	case errors.Is(err, payments.ErrVerificationFailed):
		errorJSON(w, "Transaction verification failed", http.StatusBadRequest)
		return
	case err != nil:
		serverError(w, "payments: verify", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Payment verified successfully",
		"transaction": tx,
	})
}

// History lists the caller's transactions, identified by their connected
// wallet address.
func (h *PaymentsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		serverError(w, "payments: lookup user", err)
		return
	}
	if user == nil {
		errorJSON(w, "User not found", http.StatusNotFound)
		return
	}

	txs, err := h.txRepo.ListTransactionsByAddress(ctx, user.Wallet)
	if err != nil {
		serverError(w, "payments: history", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

// Status reports whether the caller has a completed payment for a job.
func (h *PaymentsHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, err := strconv.ParseInt(mux.Vars(r)["jobId"], 10, 64)
	if err != nil {
		errorJSON(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		serverError(w, "payments: lookup user", err)
		return
	}
	if user == nil {
		errorJSON(w, "User not found", http.StatusNotFound)
		return
	}

	tx, err := h.txRepo.GetTransactionByJob(ctx, jobID, user.Wallet)
	if err != nil {
		serverError(w, "payments: status", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"hasPaid":     tx != nil && tx.Status == models.TxCompleted,
		"transaction": tx,
	})
}
