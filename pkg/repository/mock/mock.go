package mock

import (
	"context"
	"strings"

	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Users *UserRepo
	Jobs  *JobRepo
	Txs   *TransactionRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users: &UserRepo{byID: map[int64]*models.User{}},
		Jobs:  &JobRepo{byID: map[int64]*models.Job{}},
		Txs:   &TransactionRepo{byID: map[int64]*models.Transaction{}},
	}
}

type UserRepo struct {
	byID      map[int64]*models.User
	nextID    int64
	CreateErr error
	UpdateErr error
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return 0, errDuplicate
		}
	}
	m.nextID++
	cp := *u
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Linkedin != nil {
		u.Linkedin = *upd.Linkedin
	}
	if upd.Wallet != nil {
		u.Wallet = *upd.Wallet
	}
	if upd.Skills != nil {
		u.Skills = *upd.Skills
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	return nil
}

func (m *UserRepo) SearchUsers(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	out := make([]models.User, 0)
	for _, u := range m.byID {
		if f.ExcludeID != 0 && u.ID == f.ExcludeID {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Bio), q) {
				continue
			}
		}
		if len(f.Skills) > 0 && !overlaps(u.Skills, f.Skills) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

type JobRepo struct {
	byID      map[int64]*models.Job
	order     []int64
	nextID    int64
	CreateErr error
	UpdateErr error
	DeleteErr error
}

var _ repository.JobRepo = (*JobRepo)(nil)

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	cp := *j
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	return cp.ID, nil
}

func (m *JobRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	if j, ok := m.byID[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (m *JobRepo) ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	out := make([]models.Job, 0)
	for _, id := range m.order {
		j := m.byID[id]
		if j == nil {
			continue
		}
		if len(f.Skills) > 0 && !overlaps(j.Skills, f.Skills) {
			continue
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
			continue
		}
		out = append(out, *j)
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []models.Job{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *JobRepo) ListJobsByOwner(ctx context.Context, ownerID int64) ([]models.Job, error) {
	out := make([]models.Job, 0)
	for _, id := range m.order {
		if j := m.byID[id]; j != nil && j.PostedBy == ownerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, id int64, upd models.JobUpdate) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	j, ok := m.byID[id]
	if !ok {
		return nil
	}
	if upd.Title != nil {
		j.Title = *upd.Title
	}
	if upd.Description != nil {
		j.Description = *upd.Description
	}
	if upd.Skills != nil {
		j.Skills = *upd.Skills
	}
	if upd.Salary != nil {
		j.Salary = *upd.Salary
	}
	if upd.Location != nil {
		j.Location = *upd.Location
	}
	return nil
}

func (m *JobRepo) DeleteJob(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.byID, id)
	return nil
}

type TransactionRepo struct {
	byID      map[int64]*models.Transaction
	order     []int64
	nextID    int64
	CreateErr error
	UpdateErr error
}

var _ repository.TransactionRepo = (*TransactionRepo)(nil)

func (m *TransactionRepo) CreateTransaction(ctx context.Context, t *models.Transaction) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.byID {
		if existing.TxHash == t.TxHash {
			return 0, errDuplicate
		}
	}
	m.nextID++
	cp := *t
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	return cp.ID, nil
}

func (m *TransactionRepo) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	if t, ok := m.byID[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (m *TransactionRepo) GetTransactionByJob(ctx context.Context, jobID int64, fromAddress string) (*models.Transaction, error) {
	for i := len(m.order) - 1; i >= 0; i-- {
		t := m.byID[m.order[i]]
		if t != nil && t.JobID != nil && *t.JobID == jobID && t.FromAddress == fromAddress {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *TransactionRepo) ListTransactionsByAddress(ctx context.Context, fromAddress string) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		if t := m.byID[m.order[i]]; t != nil && t.FromAddress == fromAddress {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *TransactionRepo) UpdateTransaction(ctx context.Context, id int64, upd models.TransactionUpdate) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	t, ok := m.byID[id]
	if !ok {
		return nil
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.TxHash != nil {
		t.TxHash = *upd.TxHash
	}
	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	return nil
}

func overlaps(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[strings.ToLower(s)]; ok {
			return true
		}
	}
	return false
}

type constError string

func (e constError) Error() string { return string(e) }

const errDuplicate = constError("unique constraint violation")
