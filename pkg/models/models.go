package models

// Transaction status values. Transitions are pending -> completed or
// pending -> failed; completed and failed are terminal.
const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

type User struct {
	ID           int64    `json:"id" db:"id"`
	Name         string   `json:"name" db:"name" validate:"required"`
	Email        string   `json:"email" db:"email" validate:"required,email"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Wallet       string   `json:"wallet,omitempty" db:"wallet"`
	Skills       []string `json:"skills" db:"skills"`
	Bio          string   `json:"bio,omitempty" db:"bio"`
	Linkedin     string   `json:"linkedin,omitempty" db:"linkedin"`
	IsAdmin      bool     `json:"is_admin" db:"is_admin"`
	Created      int64    `json:"created" db:"created"`
}

type Job struct {
	ID          int64    `json:"id" db:"id"`
	Title       string   `json:"title" db:"title" validate:"required"`
	Description string   `json:"description" db:"description"`
	Skills      []string `json:"skills" db:"skills"`
	Salary      float64  `json:"salary" db:"salary"`
	Location    string   `json:"location,omitempty" db:"location"`
	PostedBy    int64    `json:"posted_by" db:"posted_by"`
	Created     int64    `json:"created" db:"created"`
}

type Transaction struct {
	ID          int64   `json:"id" db:"id"`
	FromAddress string  `json:"from_address" db:"from_address"`
	ToAddress   string  `json:"to_address" db:"to_address"`
	Amount      float64 `json:"amount" db:"amount"`
	TxHash      string  `json:"tx_hash" db:"tx_hash"`
	JobID       *int64  `json:"job_id,omitempty" db:"job_id"`
	Status      string  `json:"status" db:"status"`
	Created     int64   `json:"created" db:"created"`
}

// JobScore pairs a job with a match or similarity score in [0,100].
type JobScore struct {
	Job   Job     `json:"job"`
	Score float64 `json:"score"`
}

// Update structs carry partial field sets: a nil field leaves the stored
// column untouched, a non-nil field overwrites it (including with the zero
// value). Absence and "set to empty" are distinct states.

type UserUpdate struct {
	Name         *string   `json:"name,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Linkedin     *string   `json:"linkedin,omitempty"`
	Wallet       *string   `json:"wallet,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
	PasswordHash *string   `json:"-"`
}

type JobUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	Salary      *float64  `json:"salary,omitempty"`
	Location    *string   `json:"location,omitempty"`
}

type TransactionUpdate struct {
	Status *string  `json:"status,omitempty"`
	TxHash *string  `json:"tx_hash,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// JobFilter narrows job listings. Skills matches jobs whose skill set
// overlaps any of the given labels (case-insensitive); Location is a
// case-insensitive substring match. Offset/Limit paginate.
type JobFilter struct {
	Skills   []string
	Location string
	Offset   int
	Limit    int
}

// UserFilter narrows profile search. Query is a case-insensitive substring
// match against name and bio; Skills matches overlapping skill sets.
// ExcludeID removes the searching user from their own results.
type UserFilter struct {
	Query     string
	Skills    []string
	ExcludeID int64
	Limit     int
}
