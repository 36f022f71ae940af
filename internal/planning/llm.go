package planning

import (
	"context"
	"encoding/json"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aisimcore/simcore/internal/domain"
)

// llmResponseSchema is the ONLY shape the LLM Planner accepts from its
// transport: plan_id plus a list of
// {act, args} steps. Unrecognized or malformed output degrades to an
// empty plan rather than propagating a parse error past the tick
// boundary.
type llmResponseSchema struct {
	PlanID string `json:"plan_id"`
	Steps  []struct {
		Act  string         `json:"act"`
		Args map[string]any `json:"args"`
	} `json:"steps"`
}

// LLMTransport abstracts the actual network call so LLMPlanner can be
// tested without an API key. The production implementation
// (OpenAITransport) wraps github.com/sashabaranov/go-openai, treating
// the completion endpoint as an external collaborator behind a
// contract-level interface.
type LLMTransport interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAITransport is the production LLMTransport, backed by
// go-openai's chat completion API.
type OpenAITransport struct {
	client *openai.Client
	model  string
}

// NewOpenAITransport creates an OpenAITransport for the given API key
// and chat model.
func NewOpenAITransport(apiKey, model string) *OpenAITransport {
	return &OpenAITransport{client: openai.NewClient(apiKey), model: model}
}

// Complete implements LLMTransport.
func (t *OpenAITransport) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

var errEmptyCompletion = &llmError{"empty completion"}

type llmError struct{ msg string }

func (e *llmError) Error() string { return e.msg }

// LLMPlanner is the optional mode=LLM planner: it
// sanitizes the prompt, checks the Plan Cache, calls out through a
// retrying, circuit-broken LLMTransport under a per-call budget, and
// falls back to an empty plan with plan_id "llm-fallback" on any
// failure or on budget exhaustion.
type LLMPlanner struct {
	transport LLMTransport
	sanitizer *Sanitizer
	cache     *Cache
	telemetry *Telemetry
	breaker   *CircuitBreaker
	policy    RetryPolicy
	model     string
	budget    time.Duration
}

// LLMPlannerOption configures an LLMPlanner at construction.
type LLMPlannerOption func(*LLMPlanner)

// WithBudget overrides the default per-call budget.
func WithBudget(d time.Duration) LLMPlannerOption {
	return func(p *LLMPlanner) { p.budget = d }
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(policy RetryPolicy) LLMPlannerOption {
	return func(p *LLMPlanner) { p.policy = policy }
}

// NewLLMPlanner wires a transport together with the shared Sanitizer,
// Cache and Telemetry instances the rest of the planning pipeline uses.
func NewLLMPlanner(transport LLMTransport, sanitizer *Sanitizer, cache *Cache, telemetry *Telemetry, model string, opts ...LLMPlannerOption) *LLMPlanner {
	p := &LLMPlanner{
		transport: transport,
		sanitizer: sanitizer,
		cache:     cache,
		telemetry: telemetry,
		breaker:   NewCircuitBreaker(DefaultCircuitBreakerConfig()),
		policy:    DefaultRetryPolicy(),
		model:     model,
		budget:    800 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan implements Planner.
func (p *LLMPlanner) Plan(ctx context.Context, snap domain.WorldSnapshot, controller Controller) domain.PlanIntent {
	start := time.Now()
	defer func() { p.telemetry.RecordPlanLatency(time.Since(start).Nanoseconds()) }()
	p.telemetry.RecordRequest()

	prompt := renderCompressedSnapshot(snap)
	sanitized, err := p.sanitizer.Sanitize(prompt)
	if err != nil {
		p.telemetry.RecordError()
		p.telemetry.RecordFallback()
		return fallbackPlan()
	}

	key := NewPromptKey(sanitized, p.model, 0.2, []string{"MoveTo", "Throw", "CoverFire", "Revive"})
	if hit := p.cache.Get(key); hit.Kind != Miss {
		p.telemetry.RecordCacheHit()
		p.telemetry.RecordSuccess()
		return hit.Plan
	}
	p.telemetry.RecordCacheMiss()

	budgetCtx, cancel := context.WithTimeout(ctx, p.budget)
	defer cancel()

	raw, err := Do(budgetCtx, p.policy, p.telemetry.RecordRetry, func(ctx context.Context) (string, error) {
		var out string
		err := p.breaker.Execute(ctx, func(ctx context.Context) error {
			var callErr error
			out, callErr = p.transport.Complete(ctx, llmSystemPrompt, sanitized)
			return callErr
		})
		return out, err
	})
	if err != nil {
		if p.breaker.State() == StateOpen {
			p.telemetry.RecordCircuitOpen()
		}
		p.telemetry.RecordError()
		p.telemetry.RecordFallback()
		return fallbackPlan()
	}

	plan, parseErr := parseLLMResponse(raw)
	if parseErr != nil {
		p.telemetry.RecordError()
		p.telemetry.RecordFallback()
		return fallbackPlan()
	}

	p.telemetry.RecordSuccess()
	p.cache.Put(key, CachedPlan{Plan: plan, CreatedAt: start.UnixNano()})
	return plan
}

const llmSystemPrompt = `Respond with ONLY JSON matching {"plan_id":string,"steps":[{"act":string,"args":object}]}. Recognized acts: MoveTo(x,y), Throw(item,x,y), CoverFire(id,sec), Revive(id).`

func fallbackPlan() domain.PlanIntent {
	return domain.PlanIntent{PlanID: "llm-fallback"}
}

// renderCompressedSnapshot builds the abbreviated snapshot text the
// LLM prompt contract specifies.
func renderCompressedSnapshot(snap domain.WorldSnapshot) string {
	type compact struct {
		Me       domain.CompanionState `json:"me"`
		Plr      domain.PlayerState    `json:"plr"`
		Enemies  []domain.EnemyState   `json:"enemies"`
		POIs     []domain.PointOfInterest `json:"pois"`
		Obs      []domain.Position     `json:"obs"`
		Objective string               `json:"objective"`
	}
	body, _ := json.Marshal(compact{
		Me:        snap.Self,
		Plr:       snap.Player,
		Enemies:   snap.Enemies,
		POIs:      snap.POIs,
		Obs:       snap.Obstacles,
		Objective: snap.Objective,
	})
	return string(body)
}

// parseLLMResponse validates raw against llmResponseSchema and
// renders it into a domain.PlanIntent, recognizing exactly the
// MoveTo/Throw/CoverFire/Revive action vocabulary.
func parseLLMResponse(raw string) (domain.PlanIntent, error) {
	var parsed llmResponseSchema
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return domain.PlanIntent{}, err
	}

	steps := make([]domain.ActionStep, 0, len(parsed.Steps))
	for _, s := range parsed.Steps {
		step, ok := renderLLMStep(s.Act, s.Args)
		if !ok {
			continue
		}
		steps = append(steps, step)
	}
	return domain.PlanIntent{PlanID: parsed.PlanID, Steps: steps}, nil
}

func renderLLMStep(act string, args map[string]any) (domain.ActionStep, bool) {
	f := func(key string) float64 {
		v, _ := args[key].(float64)
		return v
	}
	switch act {
	case "MoveTo":
		return domain.MoveTo(f("x"), f("y"), 0), true
	case "Throw":
		item, _ := args["item"].(string)
		return domain.Throw(item, f("x"), f("y")), true
	case "CoverFire":
		return domain.CoverFire(uint32(f("id")), f("sec")), true
	case "Revive":
		return domain.Revive(uint32(f("id"))), true
	default:
		return domain.ActionStep{}, false
	}
}
