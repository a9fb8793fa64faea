// Package matching implements skill extraction, skill-set scoring, and job
// recommendation. External completion calls are best-effort: every operation
// degrades to a deterministic local computation and never surfaces an
// upstream failure to the caller.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/devhire/devhire/pkg/models"
	"github.com/qri-io/jsonschema"
)

const maxRecommendations = 10

// Completer is the completion call the engine depends on. pkg/llm.Client
// satisfies it; a nil Completer disables external calls entirely.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Engine provides skill extraction and job matching helpers.
type Engine struct {
	client Completer
	model  string
	logger *slog.Logger
}

// NewEngine creates a matching engine. A nil client means fallback-only mode.
func NewEngine(client Completer, model string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Engine{client: client, model: model, logger: logger}
}

// Response schemas the model output must satisfy before we trust it.
var (
	skillArraySchema = mustSchema(`{"type":"array","items":{"type":"string"}}`)
	idArraySchema    = mustSchema(`{"type":"array","items":{"type":"integer"}}`)
)

func mustSchema(s string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(s), rs); err != nil {
		panic(fmt.Sprintf("invalid response schema: %v", err))
	}
	return rs
}

const extractPromptFmt = `Extract technical skills from the following text. Return only a JSON array of skill names. Example: ["JavaScript", "React", "Node.js"]

Text:
%s`

// ExtractSkills pulls skill labels out of free text. It tries the completion
// call first and falls back to the vocabulary scan on any failure. The result
// may be empty but extraction itself never fails.
func (e *Engine) ExtractSkills(ctx context.Context, text string) []string {
	if e.client != nil {
		out, err := e.client.Complete(ctx, e.model, fmt.Sprintf(extractPromptFmt, text))
		if err == nil {
			if skills, perr := ParseSkillArray(ctx, out); perr == nil {
				return skills
			} else {
				e.logger.Warn("skill extraction: unusable model output", slog.Any("err", perr))
			}
		} else {
			e.logger.Warn("skill extraction: completion failed", slog.Any("err", err))
		}
	}

	return FallbackExtract(text)
}

// ParseSkillArray validates and decodes a model response expected to contain a
// JSON array of skill names.
func ParseSkillArray(ctx context.Context, out string) ([]string, error) {
	j := extractJSONArray(out)
	if j == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	if verrs, err := skillArraySchema.ValidateBytes(ctx, []byte(j)); err != nil {
		return nil, fmt.Errorf("schema validate error: %w", err)
	} else if len(verrs) > 0 {
		return nil, fmt.Errorf("response does not match schema: %v", verrs[0])
	}

	var skills []string
	if err := json.Unmarshal([]byte(j), &skills); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return skills, nil
}

// FallbackExtract scans the text for vocabulary entries, case-insensitively.
func FallbackExtract(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}

	return found
}

// MatchScore computes the Jaccard similarity of two skill sets scaled to
// [0,100]. Comparison is case-insensitive. Two empty sets score 0 (the union
// would be empty, so this is special-cased rather than dividing by zero).
func MatchScore(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	union := make(map[string]struct{}, len(setA)+len(setB))
	for s := range setA {
		union[s] = struct{}{}
	}
	for s := range setB {
		union[s] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	return float64(intersection) / float64(len(union)) * 100
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// Recommend ranks jobs for a user. It asks the model to re-rank first and
// falls back to local Jaccard scoring when the call or its output is unusable.
func (e *Engine) Recommend(ctx context.Context, userSkills []string, jobs []models.Job) []models.JobScore {
	if e.client != nil && len(jobs) > 0 {
		out, err := e.client.Complete(ctx, e.model, rankPrompt(userSkills, jobs))
		if err == nil {
			if ids, perr := ParseRankedIDs(ctx, out); perr == nil {
				if recs := MapRanking(jobs, ids, maxRecommendations); len(recs) > 0 {
					return recs
				}
			} else {
				e.logger.Warn("recommendation: unusable model output", slog.Any("err", perr))
			}
		} else {
			e.logger.Warn("recommendation: completion failed", slog.Any("err", err))
		}
	}

	return FallbackRecommend(userSkills, jobs, maxRecommendations)
}

func rankPrompt(userSkills []string, jobs []models.Job) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Given these user skills: %s and these jobs:\n", strings.Join(userSkills, ", "))
	for _, j := range jobs {
		fmt.Fprintf(&sb, "%d: %s: %s\n", j.ID, j.Title, j.Description)
	}
	fmt.Fprintf(&sb, "Rank the jobs by relevance and return only the top %d job ids in order of best match as a JSON array, e.g. [1, 3, 2].", maxRecommendations)
	return sb.String()
}

// ParseRankedIDs validates and decodes a model response expected to contain a
// JSON array of job ids.
func ParseRankedIDs(ctx context.Context, out string) ([]int64, error) {
	j := extractJSONArray(out)
	if j == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	if verrs, err := idArraySchema.ValidateBytes(ctx, []byte(j)); err != nil {
		return nil, fmt.Errorf("schema validate error: %w", err)
	} else if len(verrs) > 0 {
		return nil, fmt.Errorf("response does not match schema: %v", verrs[0])
	}

	var ids []int64
	if err := json.Unmarshal([]byte(j), &ids); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return ids, nil
}

// MapRanking maps model-ranked job ids back to job records, assigning
// descending synthetic scores by rank. Unknown ids are skipped; at most n
// results are returned.
func MapRanking(jobs []models.Job, ids []int64, n int) []models.JobScore {
	byID := make(map[int64]models.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	out := make([]models.JobScore, 0, n)
	for _, id := range ids {
		if len(out) >= n {
			break
		}
		j, ok := byID[id]
		if !ok {
			continue
		}
		score := float64(100 - 10*len(out))
		if score < 0 {
			score = 0
		}
		out = append(out, models.JobScore{Job: j, Score: score})
	}

	return out
}

// FallbackRecommend scores every job against the user's skills locally and
// returns the top n by descending score. The sort is stable so ties keep
// their original input order.
func FallbackRecommend(userSkills []string, jobs []models.Job, n int) []models.JobScore {
	scored := make([]models.JobScore, 0, len(jobs))
	for _, j := range jobs {
		scored = append(scored, models.JobScore{Job: j, Score: MatchScore(userSkills, j.Skills)})
	}

	sort.SliceStable(scored, func(i, k int) bool { return scored[i].Score > scored[k].Score })

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// SimilarJobs ranks jobs by skill-set similarity to the target job, locally.
func SimilarJobs(target models.Job, jobs []models.Job, limit int) []models.JobScore {
	scored := make([]models.JobScore, 0, len(jobs))
	for _, j := range jobs {
		if j.ID == target.ID {
			continue
		}
		scored = append(scored, models.JobScore{Job: j, Score: MatchScore(target.Skills, j.Skills)})
	}

	sort.SliceStable(scored, func(i, k int) bool { return scored[i].Score > scored[k].Score })

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func extractJSONArray(s string) string {
	first := strings.Index(s, "[")
	last := strings.LastIndex(s, "]")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
