// Package assist generates objectives and role lists locally through an LLM
// provider, falling back to deterministic templates.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/llm"
	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

// Minimum filtered item counts below which a generated list is replaced by
// the deterministic one.
const (
	MinDayToDay = 6
	MinKRAs     = 5
)

// Config tunes generation.
type Config struct {
	MaxAttempts int
	RetryWait   time.Duration
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 2,
		RetryWait:   300 * time.Millisecond,
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}

// Service implements objectives.Generator and lists.Generator. It never
// returns an error for provider failures; the deterministic defaults are
// returned with source "default" instead.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      logger.Logger
}

var (
	_ objectives.Generator = (*Service)(nil)
	_ lists.Generator      = (*Service)(nil)
)

// NewService creates a Service. A nil provider always yields the defaults.
func NewService(provider llm.Provider, cfg Config, log logger.Logger) *Service {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

type itemsOutput struct {
	Items []string `json:"items"`
}

// SuggestList generates day-to-day activities or KRAs for key.
func (s *Service) SuggestList(ctx context.Context, kind lists.Kind, key taxonomy.Key) (lists.Suggestion, error) {
	rc := contextFor(key)
	fallback, minItems, purpose := DefaultDayToDay(rc.Role, rc.Department), MinDayToDay, llm.PurposeDayToDay
	if kind == lists.KRAs {
		fallback, minItems, purpose = DefaultKRAs(rc.Role), MinKRAs, llm.PurposeKRAs
	}

	var out itemsOutput
	err := s.generate(llm.WithPurpose(ctx, purpose), llm.Request{
		System:   systemPrompt,
		Messages: llm.UserPrompt(listPrompt(kind, rc)),
		Schema:   ItemsSchema,
	}, &out)
	if err != nil {
		if ctx.Err() != nil {
			return lists.Suggestion{}, ctx.Err()
		}
		s.log.Warn("list generation fell back to defaults", map[string]any{
			"kind":  string(kind),
			"error": err.Error(),
		})
		return lists.Suggestion{Items: fallback, Source: provenance.Default}, nil
	}

	items := filterItems(out.Items, rc.tokens())
	if len(items) < minItems {
		items = fallback
	}
	return lists.Suggestion{Items: items, Source: provenance.AI}, nil
}

// SuggestObjectives generates the three tiers for p. Blank tiers in the
// reply are filled from the defaults.
func (s *Service) SuggestObjectives(ctx context.Context, key taxonomy.Key, p skive.Path) (objectives.Suggestion, error) {
	rc := contextFor(key)
	def := DefaultObjectives(p)

	var out objectives.Levels
	err := s.generate(llm.WithPurpose(ctx, llm.PurposeObjectives), llm.Request{
		System:   systemPrompt,
		Messages: llm.UserPrompt(objectivePrompt(p, rc)),
		Schema:   ObjectiveSchema,
	}, &out)
	if err != nil {
		if ctx.Err() != nil {
			return objectives.Suggestion{}, ctx.Err()
		}
		s.log.Warn("objective generation fell back to defaults", map[string]any{
			"path":  p.String(),
			"error": err.Error(),
		})
		return objectives.Suggestion{Levels: def, Source: provenance.Default}, nil
	}

	levels := objectives.Levels{
		Basic:        orDefault(out.Basic, def.Basic),
		Intermediate: orDefault(out.Intermediate, def.Intermediate),
		Advanced:     orDefault(out.Advanced, def.Advanced),
	}
	return objectives.Suggestion{Levels: levels, Source: provenance.AI}, nil
}

// generate runs req up to MaxAttempts times and decodes the reply into out.
func (s *Service) generate(ctx context.Context, req llm.Request, out any) error {
	if s.provider == nil {
		return fmt.Errorf("no llm provider configured")
	}
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.RetryWait):
			}
		}
		resp, err := s.provider.Generate(ctx, req)
		if err == nil {
			err = json.Unmarshal(resp.Content, out)
			if err == nil {
				return nil
			}
			err = fmt.Errorf("parse %s response: %w", req.Schema.Name, err)
		}
		lastErr = err
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !llm.Classify(err).Transient() {
			break
		}
	}
	return fmt.Errorf("%s generation: %w", req.Schema.Name, lastErr)
}

func contextFor(key taxonomy.Key) roleContext {
	return roleContext{
		Profession: strings.TrimSpace(key.Profession.Name),
		Department: strings.TrimSpace(key.Department.Name),
		Role:       strings.TrimSpace(key.Role.Name),
	}
}

// filterItems trims items and drops blanks and any that mention a role token.
func filterItems(items []string, tokens []string) []string {
	out := make([]string, 0, len(items))
next:
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		lower := strings.ToLower(it)
		for _, t := range tokens {
			if strings.Contains(lower, t) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
