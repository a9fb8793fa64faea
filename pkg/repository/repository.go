package repository

import (
	"context"

	"github.com/devhire/devhire/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error
	SearchUsers(ctx context.Context, f models.UserFilter) ([]models.User, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJobByID(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID int64) ([]models.Job, error)
	UpdateJob(ctx context.Context, id int64, upd models.JobUpdate) error
	DeleteJob(ctx context.Context, id int64) error
}

type TransactionRepo interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) (int64, error)
	GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)
	GetTransactionByJob(ctx context.Context, jobID int64, fromAddress string) (*models.Transaction, error)
	ListTransactionsByAddress(ctx context.Context, fromAddress string) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, upd models.TransactionUpdate) error
}
