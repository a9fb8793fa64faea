package sqlite

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/devhire/devhire/internal/db"
	"github.com/devhire/devhire/pkg/repository"
)

// SQLiteRepo implements the repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.JobRepo = (*SQLiteRepo)(nil)
var _ repository.TransactionRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// skill sets are stored as JSON arrays in TEXT columns
func marshalSkills(skills []string) string {
	if skills == nil {
		skills = []string{}
	}
	b, _ := json.Marshal(skills)
	return string(b)
}

func unmarshalSkills(s string) []string {
	if s == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(s), &skills); err != nil {
		return []string{}
	}
	return skills
}

// skillOverlapClause builds an EXISTS predicate matching rows whose JSON skill
// array overlaps any of the given labels, case-insensitively. The column must
// be a JSON array of strings.
func skillOverlapClause(column string, skills []string) (string, []any) {
	placeholders := make([]string, 0, len(skills))
	args := make([]any, 0, len(skills))
	for _, s := range skills {
		placeholders = append(placeholders, "?")
		args = append(args, strings.ToLower(strings.TrimSpace(s)))
	}
	clause := fmt.Sprintf(`EXISTS (SELECT 1 FROM json_each(%s) WHERE lower(json_each.value) IN (%s))`,
		column, strings.Join(placeholders, ", "))
	return clause, args
}
