package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/executor"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/intent"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/preflight"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/resolver"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	"github.com/fekuna/omnipos-assistant-service/internal/metrics"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/pkg/apperr"
	"github.com/fekuna/omnipos-assistant-service/pkg/cache"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNotConfigured     = "The AI assistant is not configured. Set LLM_API_KEY before using it."
	msgCatalogDown       = "The catalog is unavailable right now. Please try again."
	msgExtractionFailed  = "I could not interpret that request right now. Please try again."
	msgNoActions         = "I could not map that request to a supported action. Try including product/location/quantity details."
	msgOneWrite          = "Please request only one write action per prompt. I can safely execute one mutating action at a time."
	msgValidationFailed  = "Unable to validate the request right now. Please try again."
	msgReadFailed        = "Unable to load inventory data right now. Please try again."
	msgWritesDisabled    = "AI write execution is disabled. Set ASSISTANT_WRITES_ENABLED=true to enable writes."
	msgAlreadyExecuted   = "This run was already executed."
	msgNoExecutable      = "No executable action found for this run."
	msgInvalidAction     = "Run does not contain a valid mutating action."
	msgRunBusy           = "Run is already being executed."
	msgRunInitFailed     = "Unable to initialize assistant run."
	msgRunRecordFailed   = "Unable to record the assistant run."
	msgRunNotFound       = "Assistant run not found."
	msgClaimAbandoned    = "The previous execution attempt did not finish and its outcome is unknown. Check inventory before retrying with a new prompt."
	unconfiguredModel    = "unconfigured"
	replayExecuteMessage = "Already executed."

	maxConversationIDLength = 128
	transitionAttempts      = 3
)

var transitionBackoff = 100 * time.Millisecond

type Config struct {
	MaxPromptLength int
	RateLimitWindow time.Duration
	RateLimitMax    int
	WritesEnabled   bool
	// ClaimTimeout is how long a claimed run may stay unrecorded before a later
	// execute gives up on it and marks it failed. Zero disables recovery.
	ClaimTimeout time.Duration
}

// Dependencies are the collaborators of the orchestrator. Extractor is nil
// when no model provider is configured; Cache may be nil.
type Dependencies struct {
	Repo      assistant.Repository
	Cache     assistant.RunCache
	Catalog   catalog.Fetcher
	Extractor *intent.Extractor
	Checker   *preflight.Checker
	Mutator   *executor.Mutator
	Reader    *executor.Reader
}

type assistantUseCase struct {
	Dependencies
	cfg    Config
	logger logger.ZapLogger
}

func NewAssistantUseCase(deps Dependencies, cfg Config, log logger.ZapLogger) assistant.UseCase {
	return &assistantUseCase{
		Dependencies: deps,
		cfg:          cfg,
		logger:       log,
	}
}

// normalizedIntent is the audit record stored on a run.
type normalizedIntent struct {
	Raw            *intent.Plan      `json:"raw,omitempty"`
	Actions        []json.RawMessage `json:"actions,omitempty"`
	ResolvedAction json.RawMessage   `json:"resolved_action,omitempty"`
}

// Plan rejects empty, oversized or rate-limited requests with an apperr error
// (InvalidArgument / RateLimited carrying a reason code) instead of a failed
// run: nothing is persisted for them. Every accepted prompt gets a run row and
// ends in a terminal or needs_confirmation status.
func (uc *assistantUseCase) Plan(ctx context.Context, input *dto.PlanInput) (*dto.PlanOutput, error) {
	prompt := strings.TrimSpace(input.Message)
	if prompt == "" {
		metrics.ObservePlan("rejected")
		return nil, apperr.InvalidArgument("Please enter a prompt.").WithCode(dto.CodeEmptyPrompt)
	}
	if utf8.RuneCountInString(prompt) > uc.cfg.MaxPromptLength {
		metrics.ObservePlan("rejected")
		return nil, apperr.InvalidArgument(
			fmt.Sprintf("Prompt is too long. Keep it within %d characters.", uc.cfg.MaxPromptLength),
		).WithCode(dto.CodePromptTooLong)
	}
	if utf8.RuneCountInString(input.ConversationID) > maxConversationIDLength {
		metrics.ObservePlan("rejected")
		return nil, apperr.InvalidArgument(
			fmt.Sprintf("Conversation id is too long. Keep it within %d characters.", maxConversationIDLength),
		).WithCode(dto.CodeConversationTooLong)
	}
	if uc.rateLimited(ctx, input.UserID) {
		metrics.ObservePlan("rejected")
		return nil, apperr.RateLimited(fmt.Sprintf(
			"Rate limit reached. Try again in a few minutes (max %d prompts per %s).",
			uc.cfg.RateLimitMax, describeWindow(uc.cfg.RateLimitWindow),
		)).WithCode(dto.CodeRateLimited)
	}

	now := time.Now().UTC()
	run := &model.CommandRun{
		ID:          uuid.New().String(),
		WorkspaceID: input.WorkspaceID,
		UserID:      input.UserID,
		Prompt:      prompt,
		Model:       unconfiguredModel,
		Status:      model.RunProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.ConversationID != "" {
		conv := input.ConversationID
		run.ConversationID = &conv
	}
	if uc.Extractor != nil {
		run.Model = uc.Extractor.Model()
	}
	if err := uc.Repo.CreateRun(ctx, run); err != nil {
		uc.logger.Error("failed to create command run", zap.String("user_id", input.UserID), zap.Error(err))
		return nil, apperr.Internal(msgRunInitFailed, err).WithCode(dto.CodeRunInitFailed)
	}

	// The run exists from here on and must reach a terminal status.
	ctx = context.WithoutCancel(ctx)
	log := uc.logger.With(
		zap.String("run_id", run.ID),
		zap.String("workspace_id", run.WorkspaceID),
		zap.String("user_id", run.UserID),
	)

	out, t := uc.plan(ctx, log, run)
	out.RunID = run.ID
	t.RunID = run.ID
	t.From = model.RunProcessing
	t.To = out.Status
	t.AssistantMessage = out.AssistantMessage

	if err := uc.persist(ctx, log, t); err != nil {
		log.Error("failed to record plan outcome", zap.String("status", string(out.Status)), zap.Error(err))
		return nil, apperr.Internal(msgRunRecordFailed, err)
	}

	log.Info("assistant plan finished", zap.String("status", string(out.Status)))
	metrics.ObservePlan(string(out.Status))
	return out, nil
}

// plan decides the outcome of a new run. The returned transition carries the
// payload columns and action rows; the caller fills in ids and statuses.
func (uc *assistantUseCase) plan(ctx context.Context, log logger.ZapLogger, run *model.CommandRun) (*dto.PlanOutput, *assistant.Transition) {
	if intent.LooksLikeOrderEdit(run.Prompt) {
		return clarify(intent.OrderImmutable(), &assistant.Transition{})
	}
	if uc.Extractor == nil {
		return fail(msgNotConfigured, msgNotConfigured, &assistant.Transition{})
	}

	snap, err := uc.Catalog.Fetch(ctx, run.WorkspaceID)
	if err != nil {
		log.Error("catalog fetch failed", zap.Error(err))
		return fail(msgCatalogDown, err.Error(), &assistant.Transition{})
	}

	plan, err := uc.Extractor.Extract(ctx, run.Prompt, snap)
	if err != nil {
		log.Warn("intent extraction failed", zap.Error(err))
		return fail(msgExtractionFailed, err.Error(), &assistant.Transition{})
	}

	actions := action.Parse(plan.Actions)
	if len(actions) == 0 {
		msg := strings.TrimSpace(plan.AssistantMessage)
		if msg == "" {
			msg = msgNoActions
		}
		return clarify(&action.Clarification{Message: msg}, &assistant.Transition{
			NormalizedIntent: mustJSON(normalizedIntent{Raw: plan}),
		})
	}

	rows, encoded := uc.actionRows(run, actions)
	audit := normalizedIntent{Actions: encoded}

	if countMutating(actions) > 1 {
		return clarify(&action.Clarification{Message: msgOneWrite}, &assistant.Transition{
			NormalizedIntent: mustJSON(audit),
			Actions:          rows,
		})
	}

	primary := primaryIndex(actions)
	resolved, clarification := resolver.Resolve(actions[primary], snap)
	if clarification != nil {
		return clarify(clarification, &assistant.Transition{
			NormalizedIntent: mustJSON(audit),
			Actions:          rows,
		})
	}

	resolvedJSON, err := action.Encode(resolved)
	if err != nil {
		return fail(msgValidationFailed, err.Error(), &assistant.Transition{Actions: rows})
	}
	audit.ResolvedAction = resolvedJSON
	row := &rows[primary]
	row.ResolvedPayload = model.JSON(resolvedJSON)

	t := &assistant.Transition{NormalizedIntent: mustJSON(audit), Actions: rows}
	log = log.With(zap.String("kind", string(resolved.Kind())))

	violation, err := uc.Checker.Check(ctx, run.WorkspaceID, resolved, snap)
	if err != nil {
		log.Error("preflight failed", zap.Error(err))
		markFailed(row, err.Error())
		return fail(msgValidationFailed, err.Error(), t)
	}
	if violation != "" {
		markFailed(row, violation)
		return fail(violation, violation, t)
	}

	if q, ok := resolved.(*action.ResolvedReadQuery); ok {
		result, err := uc.Reader.Query(ctx, run.WorkspaceID, q)
		if err != nil {
			log.Error("read query failed", zap.Error(err))
			markFailed(row, err.Error())
			return fail(msgReadFailed, err.Error(), t)
		}
		payload := mustJSON(result)
		row.Status = model.ActionExecuted
		row.Result = payload
		t.ExecutionResult = payload
		return &dto.PlanOutput{
			Status:           model.RunReadOnlyResponse,
			AssistantMessage: result.Message,
			ReadResult:       result,
		}, t
	}

	if !uc.cfg.WritesEnabled {
		markFailed(row, msgWritesDisabled)
		return fail(msgWritesDisabled, msgWritesDisabled, t)
	}

	info := resolved.Info()
	msg := strings.TrimSpace(plan.AssistantMessage)
	if msg == "" {
		msg = fmt.Sprintf("Prepared one action: %s. Confirm to execute.", strings.TrimSuffix(info.Summary, "."))
	}
	row.Status = model.ActionValidated
	return &dto.PlanOutput{
		Status:           model.RunNeedsConfirmation,
		AssistantMessage: msg,
		ActionPreview: &dto.ActionPreview{
			Kind:     resolved.Kind(),
			Summary:  info.Summary,
			Warnings: info.Warnings,
		},
	}, t
}

func (uc *assistantUseCase) Execute(ctx context.Context, input *dto.ExecuteInput) (*dto.ExecuteOutput, error) {
	runID := strings.TrimSpace(input.RunID)
	if runID == "" {
		return nil, apperr.InvalidArgument("Missing run id.")
	}
	if !isRunID(runID) {
		return nil, apperr.NotFound(msgRunNotFound)
	}

	if view := uc.cached(ctx, input.WorkspaceID, runID); view != nil && view.Run.Status == model.RunExecuted {
		return uc.replay(view.Run), nil
	}

	run, err := uc.Repo.GetRun(ctx, input.WorkspaceID, runID)
	if err != nil {
		return nil, apperr.Internal("Unable to load the assistant run.", err)
	}
	if run == nil {
		return nil, apperr.NotFound(msgRunNotFound)
	}

	switch run.Status {
	case model.RunExecuted:
		return uc.replay(run), nil
	case model.RunNeedsConfirmation:
	default:
		return nil, apperr.FailedPrecondition(fmt.Sprintf(`Run is not executable in status "%s".`, run.Status))
	}

	ctx = context.WithoutCancel(ctx)
	log := uc.logger.With(
		zap.String("run_id", run.ID),
		zap.String("workspace_id", run.WorkspaceID),
		zap.String("user_id", input.UserID),
	)

	claimed, err := uc.Repo.ClaimRun(ctx, run.ID, time.Now())
	if err != nil {
		return nil, apperr.Internal("Unable to claim the assistant run.", err)
	}
	if !claimed {
		latest, err := uc.Repo.GetRun(ctx, input.WorkspaceID, runID)
		if err != nil {
			return nil, apperr.Internal("Unable to load the assistant run.", err)
		}
		if latest != nil && latest.Status == model.RunExecuted {
			return uc.replay(latest), nil
		}
		if uc.claimAbandoned(latest) {
			return uc.abandon(ctx, log, latest)
		}
		return nil, apperr.FailedPrecondition(msgRunBusy)
	}

	out, t := uc.execute(ctx, log, run)
	t.RunID = run.ID
	t.From = model.RunNeedsConfirmation
	t.To = out.Status
	t.AssistantMessage = out.AssistantMessage

	if err := uc.persist(ctx, log, t); err != nil {
		// The side effect may already be applied; keep it in the log since the
		// run row could not take it.
		log.Error("failed to record execution outcome",
			zap.String("status", string(out.Status)),
			zap.String("assistant_message", out.AssistantMessage),
			zap.ByteString("execution_result", t.ExecutionResult),
			zap.Error(err),
		)
		return nil, apperr.Internal(msgRunRecordFailed, err)
	}

	kind := ""
	if out.Execution != nil {
		kind = string(out.Execution.Kind)
	}
	log.Info("assistant execute finished", zap.String("status", string(out.Status)), zap.String("kind", kind))
	metrics.ObserveExecute(kind, string(out.Status))
	return out, nil
}

func (uc *assistantUseCase) execute(ctx context.Context, log logger.ZapLogger, run *model.CommandRun) (*dto.ExecuteOutput, *assistant.Transition) {
	out := &dto.ExecuteOutput{RunID: run.ID, Status: model.RunFailed}
	failed := func(msg, cause string, update *assistant.ActionUpdate) (*dto.ExecuteOutput, *assistant.Transition) {
		out.AssistantMessage = msg
		if update != nil {
			update.Status = model.ActionFailed
			update.Error = &cause
		}
		return out, &assistant.Transition{Error: &cause, ActionUpdate: update}
	}

	row, err := uc.Repo.ExecutableAction(ctx, run.ID)
	if err != nil {
		log.Error("failed to load action row", zap.Error(err))
		return failed(msgNoExecutable, err.Error(), nil)
	}
	if row == nil {
		return failed(msgNoExecutable, "missing action row", nil)
	}
	update := &assistant.ActionUpdate{ID: row.ID}

	resolved, err := action.DecodeResolved(row.ResolvedPayload)
	if err != nil || !resolved.Kind().Mutating() {
		return failed(msgInvalidAction, "invalid resolved action payload", update)
	}
	kind := resolved.Kind()
	out.Execution = &dto.Execution{Succeeded: false, Kind: kind}
	log = log.With(zap.String("kind", string(kind)))

	if !uc.cfg.WritesEnabled {
		out.Execution = nil
		return failed(msgWritesDisabled, msgWritesDisabled, update)
	}

	snap, err := uc.Catalog.Fetch(ctx, run.WorkspaceID)
	if err != nil {
		log.Error("catalog fetch failed", zap.Error(err))
		out.Execution = nil
		return failed(msgCatalogDown, err.Error(), update)
	}

	violation, err := uc.Checker.Check(ctx, run.WorkspaceID, resolved, snap)
	if err != nil {
		log.Error("preflight failed", zap.Error(err))
		out.Execution = nil
		return failed(msgValidationFailed, err.Error(), update)
	}
	if violation != "" {
		out.Execution = nil
		return failed(violation, violation, update)
	}

	res, err := uc.Mutator.Execute(ctx, run.WorkspaceID, resolved, snap)
	if err != nil {
		log.Warn("action execution failed", zap.Error(err))
		msg := executor.FailureMessage(err)
		out.Execution.Message = msg
		return failed(msg, err.Error(), update)
	}

	executedAt := time.Now().UTC()
	record := mustJSON(dto.ExecutionRecord{Kind: kind, Message: res.Message, Affected: res.Affected})
	update.Status = model.ActionExecuted
	update.Result = mustJSON(res)

	out.Status = model.RunExecuted
	out.AssistantMessage = res.Message
	out.Execution = &dto.Execution{
		Succeeded: true,
		Kind:      kind,
		Message:   res.Message,
		Affected:  res.Affected,
	}
	return out, &assistant.Transition{
		ExecutionResult: record,
		ExecutedAt:      &executedAt,
		ActionUpdate:    update,
	}
}

// persist retries a failed transition a few times. A stale transition means
// another writer already moved the run and is returned at once.
func (uc *assistantUseCase) persist(ctx context.Context, log logger.ZapLogger, t *assistant.Transition) error {
	var err error
	for attempt := 1; attempt <= transitionAttempts; attempt++ {
		err = uc.Repo.Transition(ctx, t)
		if err == nil || errors.Is(err, assistant.ErrStaleTransition) {
			return err
		}
		log.Warn("run transition failed", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < transitionAttempts {
			time.Sleep(transitionBackoff * time.Duration(attempt))
		}
	}
	return err
}

// claimAbandoned reports whether run was claimed long enough ago that its
// executor is presumed gone.
func (uc *assistantUseCase) claimAbandoned(run *model.CommandRun) bool {
	if uc.cfg.ClaimTimeout <= 0 || run == nil || run.Status != model.RunNeedsConfirmation || run.ConfirmedAt == nil {
		return false
	}
	return time.Since(*run.ConfirmedAt) > uc.cfg.ClaimTimeout
}

// abandon fails a run whose claim was never recorded. The action is not
// re-applied: the earlier attempt may have written it already.
func (uc *assistantUseCase) abandon(ctx context.Context, log logger.ZapLogger, run *model.CommandRun) (*dto.ExecuteOutput, error) {
	cause := "execution claim abandoned"
	t := &assistant.Transition{
		RunID:            run.ID,
		From:             model.RunNeedsConfirmation,
		To:               model.RunFailed,
		AssistantMessage: msgClaimAbandoned,
		Error:            &cause,
	}
	if row, err := uc.Repo.ExecutableAction(ctx, run.ID); err == nil && row != nil {
		t.ActionUpdate = &assistant.ActionUpdate{ID: row.ID, Status: model.ActionFailed, Error: &cause}
	}

	if err := uc.persist(ctx, log, t); err != nil {
		if errors.Is(err, assistant.ErrStaleTransition) {
			return nil, apperr.FailedPrecondition(msgRunBusy)
		}
		return nil, apperr.Internal(msgRunRecordFailed, err)
	}

	log.Warn("abandoned stale execution claim", zap.Timep("confirmed_at", run.ConfirmedAt))
	metrics.ObserveExecute("", "abandoned")
	return &dto.ExecuteOutput{
		RunID:            run.ID,
		Status:           model.RunFailed,
		AssistantMessage: msgClaimAbandoned,
	}, nil
}

// replay answers an execute on an executed run from its stored result.
func (uc *assistantUseCase) replay(run *model.CommandRun) *dto.ExecuteOutput {
	var record dto.ExecutionRecord
	if err := run.ExecutionResult.Unmarshal(&record); err != nil {
		uc.logger.Warn("stored execution result is unreadable", zap.String("run_id", run.ID), zap.Error(err))
	}
	if record.Affected == nil {
		record.Affected = map[string]any{}
	}
	metrics.ObserveExecute(string(record.Kind), "replayed")
	return &dto.ExecuteOutput{
		RunID:            run.ID,
		Status:           model.RunExecuted,
		AssistantMessage: msgAlreadyExecuted,
		Execution: &dto.Execution{
			Succeeded: true,
			Kind:      record.Kind,
			Message:   replayExecuteMessage,
			Affected:  record.Affected,
		},
	}
}

func (uc *assistantUseCase) GetRun(ctx context.Context, workspaceID, runID string) (*dto.RunView, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, apperr.InvalidArgument("Missing run id.")
	}
	if !isRunID(runID) {
		return nil, apperr.NotFound(msgRunNotFound)
	}
	if view := uc.cached(ctx, workspaceID, runID); view != nil {
		return view, nil
	}

	run, err := uc.Repo.GetRun(ctx, workspaceID, runID)
	if err != nil {
		return nil, apperr.Internal("Unable to load the assistant run.", err)
	}
	if run == nil {
		return nil, apperr.NotFound(msgRunNotFound)
	}
	actions, err := uc.Repo.ListActions(ctx, run.ID)
	if err != nil {
		return nil, apperr.Internal("Unable to load the assistant run.", err)
	}

	view := &dto.RunView{Run: run, Actions: actions}
	if uc.Cache != nil && run.Status.Terminal() {
		if err := uc.Cache.Set(ctx, view); err != nil {
			uc.logger.Warn("failed to cache run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}
	return view, nil
}

// cached returns the cached view when it belongs to workspaceID.
func (uc *assistantUseCase) cached(ctx context.Context, workspaceID, runID string) *dto.RunView {
	if uc.Cache == nil {
		return nil
	}
	view, err := uc.Cache.Get(ctx, runID)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("run cache read failed", zap.String("run_id", runID), zap.Error(err))
		}
		return nil
	}
	if view.Run == nil || view.Run.WorkspaceID != workspaceID {
		return nil
	}
	return view
}

// rateLimited fails open: a failed count never blocks the user.
func (uc *assistantUseCase) rateLimited(ctx context.Context, userID string) bool {
	if uc.cfg.RateLimitMax <= 0 {
		return false
	}
	n, err := uc.Repo.CountRecentRuns(ctx, userID, time.Now().Add(-uc.cfg.RateLimitWindow))
	if err != nil {
		uc.logger.Warn("rate limit check failed", zap.String("user_id", userID), zap.Error(err))
		return false
	}
	return n >= uc.cfg.RateLimitMax
}

func (uc *assistantUseCase) actionRows(run *model.CommandRun, actions []action.Action) ([]model.CommandAction, []json.RawMessage) {
	rows := make([]model.CommandAction, 0, len(actions))
	encoded := make([]json.RawMessage, 0, len(actions))
	for i, a := range actions {
		payload, err := action.Encode(a)
		if err != nil {
			payload = json.RawMessage(`{}`)
		}
		encoded = append(encoded, payload)
		rows = append(rows, model.CommandAction{
			ID:            uuid.New().String(),
			WorkspaceID:   run.WorkspaceID,
			UserID:        run.UserID,
			ActionIndex:   i,
			Kind:          string(a.Kind()),
			ActionPayload: model.JSON(payload),
			Status:        model.ActionPlanned,
		})
	}
	return rows, encoded
}

func isRunID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func countMutating(actions []action.Action) int {
	n := 0
	for _, a := range actions {
		if a.Kind().Mutating() {
			n++
		}
	}
	return n
}

// primaryIndex picks the mutating action when there is one, else the first.
func primaryIndex(actions []action.Action) int {
	for i, a := range actions {
		if a.Kind().Mutating() {
			return i
		}
	}
	return 0
}

func clarify(c *action.Clarification, t *assistant.Transition) (*dto.PlanOutput, *assistant.Transition) {
	t.Clarification = mustJSON(c)
	return &dto.PlanOutput{
		Status:           model.RunNeedsClarification,
		AssistantMessage: c.Message,
		Clarification:    c,
	}, t
}

func fail(msg, cause string, t *assistant.Transition) (*dto.PlanOutput, *assistant.Transition) {
	t.Error = &cause
	return &dto.PlanOutput{
		Status:           model.RunFailed,
		AssistantMessage: msg,
	}, t
}

func markFailed(row *model.CommandAction, cause string) {
	row.Status = model.ActionFailed
	row.Error = &cause
}

func mustJSON(v any) model.JSON {
	b, err := model.MarshalJSON(v)
	if err != nil {
		return nil
	}
	return b
}

func describeWindow(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}
