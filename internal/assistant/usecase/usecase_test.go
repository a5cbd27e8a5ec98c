package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/executor"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/intent"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/preflight"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/repository"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	invrepo "github.com/fekuna/omnipos-assistant-service/internal/inventory/repository"
	invuc "github.com/fekuna/omnipos-assistant-service/internal/inventory/usecase"
	locrepo "github.com/fekuna/omnipos-assistant-service/internal/location/repository"
	locuc "github.com/fekuna/omnipos-assistant-service/internal/location/usecase"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	orderrepo "github.com/fekuna/omnipos-assistant-service/internal/order/repository"
	orderuc "github.com/fekuna/omnipos-assistant-service/internal/order/usecase"
	prodrepo "github.com/fekuna/omnipos-assistant-service/internal/product/repository"
	produc "github.com/fekuna/omnipos-assistant-service/internal/product/usecase"
	"github.com/fekuna/omnipos-assistant-service/internal/testutil"
	"github.com/fekuna/omnipos-assistant-service/pkg/apperr"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ws   = "ws-1"
	user = "user-1"
)

type scriptedLLM struct {
	text  string
	err   error
	calls int
}

func (s *scriptedLLM) Complete(context.Context, string, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *scriptedLLM) Model() string { return "test-model" }

type harness struct {
	db     *sqlx.DB
	llm    *scriptedLLM
	repo   *repository.PGRepository
	uc     assistant.UseCase
	widget *model.Product
	gadget *model.Product
	wh1    *model.Location
	store2 *model.Location
}

func defaultConfig() Config {
	return Config{
		MaxPromptLength: 1200,
		RateLimitWindow: 5 * time.Minute,
		RateLimitMax:    20,
		WritesEnabled:   true,
		ClaimTimeout:    time.Minute,
	}
}

func newHarness(t *testing.T, configure ...func(*Config)) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	log := logger.NewNop()
	llm := &scriptedLLM{}

	products := produc.NewProductUseCase(prodrepo.NewPGRepository(db), nil, log)
	locations := locuc.NewLocationUseCase(locrepo.NewPGRepository(db), log)
	inventory := invuc.NewInventoryUseCase(invrepo.NewPGRepository(db), log)
	orders := orderuc.NewOrderUseCase(orderrepo.NewPGRepository(db), nil, log)

	cfg := defaultConfig()
	for _, c := range configure {
		c(&cfg)
	}

	repo := repository.NewPGRepository(db)
	h := &harness{
		db:     db,
		llm:    llm,
		repo:   repo,
		widget: testutil.SeedProduct(t, db, ws, "Widget", "WID-1"),
		gadget: testutil.SeedProduct(t, db, ws, "Gadget", "GAD-1"),
		wh1:    testutil.SeedLocation(t, db, ws, "Warehouse 1", "Jakarta", model.LocationWarehouse),
		store2: testutil.SeedLocation(t, db, ws, "Store 2", "Bandung", model.LocationStore),
	}
	h.uc = NewAssistantUseCase(Dependencies{
		Repo:      repo,
		Catalog:   catalog.NewFetcher(products, locations),
		Extractor: intent.NewExtractor(llm, intent.DefaultHintLimit),
		Checker:   preflight.NewChecker(inventory),
		Mutator:   executor.NewMutator(products, locations, inventory, orders, log),
		Reader:    executor.NewReader(inventory),
	}, cfg, log)
	return h
}

// respond scripts the next model reply with the given actions.
func (h *harness) respond(message string, actions ...string) {
	h.llm.text = fmt.Sprintf(`{"assistant_message":%q,"actions":[%s]}`, message, strings.Join(actions, ","))
}

func (h *harness) plan(t *testing.T, prompt string) *dto.PlanOutput {
	t.Helper()
	out, err := h.uc.Plan(context.Background(), &dto.PlanInput{WorkspaceID: ws, UserID: user, Message: prompt})
	require.NoError(t, err)
	return out
}

func (h *harness) execute(t *testing.T, runID string) *dto.ExecuteOutput {
	t.Helper()
	out, err := h.uc.Execute(context.Background(), &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: runID})
	require.NoError(t, err)
	return out
}

func (h *harness) run(t *testing.T, runID string) *model.CommandRun {
	t.Helper()
	run, err := h.repo.GetRun(context.Background(), ws, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	return run
}

func (h *harness) actions(t *testing.T, runID string) []model.CommandAction {
	t.Helper()
	actions, err := h.repo.ListActions(context.Background(), runID)
	require.NoError(t, err)
	return actions
}

func restockAction(qty int) string {
	return fmt.Sprintf(`{"kind":"order.create_restock","product_ref":"Widget","location_ref":"Warehouse 1","quantity":%d}`, qty)
}

func saleAction(product string, qty int) string {
	return fmt.Sprintf(`{"kind":"order.create_sale","product_ref":%q,"location_ref":"Warehouse 1","quantity":%d}`, product, qty)
}

func TestPlanRejectsPromptOverCeiling(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Plan(context.Background(), &dto.PlanInput{WorkspaceID: ws, UserID: user, Message: strings.Repeat("é", 1201)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Equal(t, dto.CodePromptTooLong, apperr.CodeOf(err))
	assert.Zero(t, h.llm.calls)
	assert.Zero(t, testutil.CountRows(t, h.db, "command_runs"))

	h.respond("")
	out := h.plan(t, strings.Repeat("a", 1200))
	assert.Equal(t, model.RunNeedsClarification, out.Status)
}

func TestPlanRejectsEmptyPrompt(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Plan(context.Background(), &dto.PlanInput{WorkspaceID: ws, UserID: user, Message: "   "})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Equal(t, dto.CodeEmptyPrompt, apperr.CodeOf(err))
	assert.Zero(t, testutil.CountRows(t, h.db, "command_runs"))
}

func TestPlanRateLimit(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.RateLimitMax = 2 })

	h.plan(t, "Delete order #1")
	h.plan(t, "Delete order #2")

	_, err := h.uc.Plan(context.Background(), &dto.PlanInput{WorkspaceID: ws, UserID: user, Message: "Delete order #3"})
	assert.Equal(t, apperr.KindRateLimited, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "max 2 prompts per 5 minutes")
	assert.Equal(t, 2, testutil.CountRows(t, h.db, "command_runs"))

	// other users have their own budget
	_, err = h.uc.Plan(context.Background(), &dto.PlanInput{WorkspaceID: ws, UserID: "user-2", Message: "Delete order #4"})
	assert.NoError(t, err)
}

func TestDeleteOrderIsRefused(t *testing.T) {
	h := newHarness(t)

	out := h.plan(t, "Delete order #123")
	assert.Equal(t, model.RunNeedsClarification, out.Status)
	require.NotNil(t, out.Clarification)
	assert.Contains(t, out.AssistantMessage, "Orders are immutable")
	assert.Len(t, out.Clarification.Options, 2)
	assert.Zero(t, h.llm.calls)
	assert.Zero(t, testutil.CountRows(t, h.db, "command_actions"))

	run := h.run(t, out.RunID)
	assert.Equal(t, model.RunNeedsClarification, run.Status)
	assert.Contains(t, string(run.Clarification), "immutable")
}

func TestLowStockScenario(t *testing.T) {
	h := newHarness(t)
	testutil.SeedInventory(t, h.db, ws, h.gadget.ID, h.wh1.ID, 5, 10)
	testutil.SeedInventory(t, h.db, ws, h.widget.ID, h.wh1.ID, 20, 10)
	h.respond("", `{"kind":"read.query","intent":"low_stock"}`)

	out := h.plan(t, "Show low stock items")
	assert.Equal(t, model.RunReadOnlyResponse, out.Status)
	require.NotNil(t, out.ReadResult)
	assert.Equal(t, []executor.StockRow{
		{Location: "Warehouse 1", Product: "Gadget", SKU: "GAD-1", Quantity: 5, Threshold: 10},
	}, out.ReadResult.Rows)
	require.NotNil(t, out.ReadResult.Chart)
	assert.Len(t, out.ReadResult.Chart.Data, 1)

	actions := h.actions(t, out.RunID)
	require.Len(t, actions, 1)
	assert.Equal(t, model.ActionExecuted, actions[0].Status)
	assert.NotEmpty(t, h.run(t, out.RunID).ExecutionResult)
}

func TestRestockScenarioProvisionsRow(t *testing.T) {
	h := newHarness(t)
	h.respond("", restockAction(15))
	require.Equal(t, -1, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID))

	out := h.plan(t, "Create restock order for 15 units of Widget at Warehouse 1")
	assert.Equal(t, model.RunNeedsConfirmation, out.Status)
	require.NotNil(t, out.ActionPreview)
	assert.Equal(t, action.KindOrderCreateRestock, out.ActionPreview.Kind)
	assert.Contains(t, out.ActionPreview.Summary, "15")
	assert.Contains(t, out.ActionPreview.Summary, "Widget")
	assert.Contains(t, out.ActionPreview.Summary, "Warehouse 1")
	assert.Equal(t, -1, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID), "planning never writes")

	exec := h.execute(t, out.RunID)
	assert.Equal(t, model.RunExecuted, exec.Status)
	require.NotNil(t, exec.Execution)
	assert.True(t, exec.Execution.Succeeded)
	assert.Equal(t, "Restock order created successfully.", exec.AssistantMessage)
	assert.Equal(t, 15, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID))

	run := h.run(t, out.RunID)
	assert.Equal(t, model.RunExecuted, run.Status)
	assert.NotNil(t, run.ConfirmedAt)
	assert.NotNil(t, run.ExecutedAt)
	assert.Equal(t, model.ActionExecuted, h.actions(t, out.RunID)[0].Status)
}

func TestExecuteIsIdempotent(t *testing.T) {
	h := newHarness(t)
	testutil.SeedInventory(t, h.db, ws, h.widget.ID, h.wh1.ID, 4, 10)
	h.respond("Restocking now.", restockAction(6))

	out := h.plan(t, "restock 6 widgets at warehouse 1")
	assert.Equal(t, "Restocking now.", out.AssistantMessage)

	first := h.execute(t, out.RunID)
	second := h.execute(t, out.RunID)

	assert.Equal(t, model.RunExecuted, first.Status)
	assert.Equal(t, model.RunExecuted, second.Status)
	assert.Equal(t, "This run was already executed.", second.AssistantMessage)
	assert.Equal(t, "Already executed.", second.Execution.Message)

	a, err := json.Marshal(first.Execution.Affected)
	require.NoError(t, err)
	b, err := json.Marshal(second.Execution.Affected)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	assert.Equal(t, 10, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID))
	assert.Equal(t, 1, testutil.CountRows(t, h.db, "orders"))
}

func TestStockPreflightAtPlanTime(t *testing.T) {
	h := newHarness(t)
	testutil.SeedInventory(t, h.db, ws, h.gadget.ID, h.wh1.ID, 5, 10)
	h.respond("", saleAction("Gadget", 8))

	out := h.plan(t, "sell 8 gadgets at warehouse 1")
	assert.Equal(t, model.RunFailed, out.Status)
	assert.Equal(t, "Current QTY is 5 and order is 8. Sale order can't be created.", out.AssistantMessage)

	actions := h.actions(t, out.RunID)
	require.Len(t, actions, 1)
	assert.Equal(t, model.ActionFailed, actions[0].Status)
	require.NotNil(t, h.run(t, out.RunID).Error)
}

func TestStockPreflightAtExecuteTime(t *testing.T) {
	h := newHarness(t)
	testutil.SeedInventory(t, h.db, ws, h.gadget.ID, h.wh1.ID, 10, 10)
	h.respond("", saleAction("Gadget", 8))

	out := h.plan(t, "sell 8 gadgets at warehouse 1")
	require.Equal(t, model.RunNeedsConfirmation, out.Status)

	// stock drifts between plan and execute
	_, err := h.db.Exec(`UPDATE inventory_items SET quantity = 3 WHERE product_id = ?`, h.gadget.ID)
	require.NoError(t, err)

	exec := h.execute(t, out.RunID)
	assert.Equal(t, model.RunFailed, exec.Status)
	assert.Equal(t, "Current QTY is 3 and order is 8. Sale order can't be created.", exec.AssistantMessage)
	assert.Equal(t, 3, testutil.Quantity(t, h.db, h.gadget.ID, h.wh1.ID))
	assert.Zero(t, testutil.CountRows(t, h.db, "orders"))
	assert.Equal(t, model.ActionFailed, h.actions(t, out.RunID)[0].Status)

	_, err = h.uc.Execute(context.Background(), &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: out.RunID})
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err))
	assert.Contains(t, err.Error(), `Run is not executable in status "failed".`)
}

func TestPlanRejectsMultipleWrites(t *testing.T) {
	h := newHarness(t)
	h.respond("", saleAction("Gadget", 1), restockAction(2))

	out := h.plan(t, "sell a gadget and restock widgets")
	assert.Equal(t, model.RunNeedsClarification, out.Status)
	assert.Equal(t, "Please request only one write action per prompt. I can safely execute one mutating action at a time.", out.AssistantMessage)

	actions := h.actions(t, out.RunID)
	require.Len(t, actions, 2)
	for _, a := range actions {
		assert.Equal(t, model.ActionPlanned, a.Status)
		assert.Empty(t, a.ResolvedPayload)
	}
}

func TestPlanPrefersTheMutatingAction(t *testing.T) {
	h := newHarness(t)
	h.respond("", `{"kind":"read.query","intent":"low_stock"}`, restockAction(3))

	out := h.plan(t, "show low stock and restock 3 widgets")
	assert.Equal(t, model.RunNeedsConfirmation, out.Status)
	assert.Equal(t, action.KindOrderCreateRestock, out.ActionPreview.Kind)

	actions := h.actions(t, out.RunID)
	require.Len(t, actions, 2)
	assert.Equal(t, model.ActionPlanned, actions[0].Status)
	assert.Equal(t, model.ActionValidated, actions[1].Status)
}

func TestPlanWithoutValidActions(t *testing.T) {
	h := newHarness(t)
	h.respond("Which product do you mean?", `{"kind":"order.delete","order_id":"1"}`)

	out := h.plan(t, "fix that")
	assert.Equal(t, model.RunNeedsClarification, out.Status)
	assert.Equal(t, "Which product do you mean?", out.AssistantMessage)

	h.respond("  ")
	out = h.plan(t, "fix that")
	assert.Equal(t, msgNoActions, out.AssistantMessage)
	assert.Zero(t, testutil.CountRows(t, h.db, "command_actions"))
}

func TestPlanAmbiguousReference(t *testing.T) {
	h := newHarness(t)
	h.respond("", saleAction("dge", 1))

	out := h.plan(t, "sell one dge")
	assert.Equal(t, model.RunNeedsClarification, out.Status)
	require.NotNil(t, out.Clarification)
	assert.Len(t, out.Clarification.Options, 2)
	assert.Equal(t, model.ActionPlanned, h.actions(t, out.RunID)[0].Status)
}

func TestPlanExtractionFailure(t *testing.T) {
	h := newHarness(t)
	h.llm.text = "I am not JSON"

	out := h.plan(t, "show low stock")
	assert.Equal(t, model.RunFailed, out.Status)
	assert.Equal(t, msgExtractionFailed, out.AssistantMessage)

	run := h.run(t, out.RunID)
	require.NotNil(t, run.Error)
	assert.Contains(t, *run.Error, "not a JSON object")

	h.llm.err = errors.New("upstream 503")
	out = h.plan(t, "show low stock")
	assert.Equal(t, model.RunFailed, out.Status)
	assert.Contains(t, *h.run(t, out.RunID).Error, "upstream 503")
}

func TestPlanWithoutModel(t *testing.T) {
	h := newHarness(t)
	uc := h.uc.(*assistantUseCase)
	uc.Extractor = nil

	out := h.plan(t, "show low stock")
	assert.Equal(t, model.RunFailed, out.Status)
	assert.Equal(t, msgNotConfigured, out.AssistantMessage)
	assert.Equal(t, unconfiguredModel, h.run(t, out.RunID).Model)
}

func TestWritesDisabled(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.WritesEnabled = false })
	h.respond("", restockAction(5))

	out := h.plan(t, "restock 5 widgets at warehouse 1")
	assert.Equal(t, model.RunFailed, out.Status)
	assert.Equal(t, msgWritesDisabled, out.AssistantMessage)
	assert.Equal(t, model.ActionFailed, h.actions(t, out.RunID)[0].Status)

	// reads still work
	h.respond("", `{"kind":"read.query","intent":"inventory_summary"}`)
	assert.Equal(t, model.RunReadOnlyResponse, h.plan(t, "summary please").Status)
}

func TestExecuteErrors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.uc.Execute(ctx, &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: " "})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = h.uc.Execute(ctx, &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: "missing"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	h.respond("", `{"kind":"read.query","intent":"low_stock"}`)
	read := h.plan(t, "low stock")
	_, err = h.uc.Execute(ctx, &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: read.RunID})
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err))
	assert.Contains(t, err.Error(), `"read_only_response"`)

	// a run from another workspace is invisible
	_, err = h.uc.Execute(ctx, &dto.ExecuteInput{WorkspaceID: "ws-2", UserID: user, RunID: read.RunID})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestExecuteLosesClaim(t *testing.T) {
	h := newHarness(t)
	h.respond("", restockAction(5))
	out := h.plan(t, "restock 5 widgets at warehouse 1")

	claimed, err := h.repo.ClaimRun(context.Background(), out.RunID, time.Now())
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = h.uc.Execute(context.Background(), &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: out.RunID})
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Run is already being executed.")
	assert.Equal(t, -1, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID))
}

func TestExecuteStoreFailureIsRecorded(t *testing.T) {
	h := newHarness(t)
	h.respond("", `{"kind":"inventory.create_entry","product_ref":"Widget","location_ref":"Store 2","quantity":4}`)
	out := h.plan(t, "add 4 widgets to store 2")
	require.Equal(t, model.RunNeedsConfirmation, out.Status)

	// the row appears between plan and execute
	testutil.SeedInventory(t, h.db, ws, h.widget.ID, h.store2.ID, 1, 20)

	exec := h.execute(t, out.RunID)
	assert.Equal(t, model.RunFailed, exec.Status)
	require.NotNil(t, exec.Execution)
	assert.False(t, exec.Execution.Succeeded)
	assert.Equal(t, action.KindInventoryCreateEntry, exec.Execution.Kind)
	assert.Equal(t, exec.AssistantMessage, exec.Execution.Message)

	actions := h.actions(t, out.RunID)
	assert.Equal(t, model.ActionFailed, actions[0].Status)
	require.NotNil(t, actions[0].Error)
}

func TestGetRun(t *testing.T) {
	h := newHarness(t)
	h.respond("", restockAction(2))
	out := h.plan(t, "restock 2 widgets at warehouse 1")
	h.execute(t, out.RunID)

	view, err := h.uc.GetRun(context.Background(), ws, out.RunID)
	require.NoError(t, err)
	assert.Equal(t, model.RunExecuted, view.Run.Status)
	assert.Equal(t, "restock 2 widgets at warehouse 1", view.Run.Prompt)
	require.Len(t, view.Actions, 1)
	assert.Equal(t, model.ActionExecuted, view.Actions[0].Status)

	_, err = h.uc.GetRun(context.Background(), "ws-2", out.RunID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

type memoryCache struct {
	views map[string]*dto.RunView
}

func (m *memoryCache) Get(_ context.Context, runID string) (*dto.RunView, error) {
	if v, ok := m.views[runID]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (m *memoryCache) Set(_ context.Context, view *dto.RunView) error {
	m.views[view.Run.ID] = view
	return nil
}

func TestGetRunCachesTerminalRuns(t *testing.T) {
	h := newHarness(t)
	mem := &memoryCache{views: map[string]*dto.RunView{}}
	h.uc.(*assistantUseCase).Cache = mem

	out := h.plan(t, "Delete order #9")
	_, err := h.uc.GetRun(context.Background(), ws, out.RunID)
	require.NoError(t, err)
	require.Contains(t, mem.views, out.RunID)

	// served from the cache once stored
	_, err = h.db.Exec(`DELETE FROM command_runs`)
	require.NoError(t, err)
	view, err := h.uc.GetRun(context.Background(), ws, out.RunID)
	require.NoError(t, err)
	assert.Equal(t, model.RunNeedsClarification, view.Run.Status)
}

func TestPlanRejectsLongConversationID(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Plan(context.Background(), &dto.PlanInput{
		WorkspaceID:    ws,
		UserID:         user,
		Message:        "Delete order #1",
		ConversationID: strings.Repeat("c", 129),
	})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Equal(t, dto.CodeConversationTooLong, apperr.CodeOf(err))
	assert.Zero(t, testutil.CountRows(t, h.db, "command_runs"))

	out, err := h.uc.Plan(context.Background(), &dto.PlanInput{
		WorkspaceID:    ws,
		UserID:         user,
		Message:        "Delete order #1",
		ConversationID: strings.Repeat("c", 128),
	})
	require.NoError(t, err)
	require.NotNil(t, h.run(t, out.RunID).ConversationID)
}

// uuidOnlyRepo fails lookups the way a uuid column rejects malformed ids.
type uuidOnlyRepo struct {
	assistant.Repository
}

func (uuidOnlyRepo) GetRun(context.Context, string, string) (*model.CommandRun, error) {
	return nil, errors.New(`invalid input syntax for type uuid (SQLSTATE 22P02)`)
}

func TestMalformedRunIDIsNotFound(t *testing.T) {
	h := newHarness(t)
	h.uc.(*assistantUseCase).Repo = uuidOnlyRepo{Repository: h.repo}
	ctx := context.Background()

	_, err := h.uc.Execute(ctx, &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: "abc"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = h.uc.GetRun(ctx, ws, "abc")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// well-formed ids still reach the store
	_, err = h.uc.GetRun(ctx, ws, uuid.New().String())
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

// flakyRepo fails the first n transitions into executed.
type flakyRepo struct {
	assistant.Repository
	n     int
	calls int
}

func (f *flakyRepo) Transition(ctx context.Context, t *assistant.Transition) error {
	if t.To == model.RunExecuted {
		f.calls++
		if f.calls <= f.n {
			return errors.New("connection reset by peer")
		}
	}
	return f.Repository.Transition(ctx, t)
}

func fastRetries(t *testing.T) {
	prev := transitionBackoff
	transitionBackoff = time.Millisecond
	t.Cleanup(func() { transitionBackoff = prev })
}

func TestExecuteRetriesOutcomeWrite(t *testing.T) {
	fastRetries(t)
	h := newHarness(t)
	h.respond("", restockAction(7))
	out := h.plan(t, "restock 7 widgets at warehouse 1")

	flaky := &flakyRepo{Repository: h.repo, n: 2}
	h.uc.(*assistantUseCase).Repo = flaky

	exec := h.execute(t, out.RunID)
	assert.Equal(t, model.RunExecuted, exec.Status)
	assert.Equal(t, 3, flaky.calls)
	assert.Equal(t, 7, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID))
	assert.Equal(t, model.RunExecuted, h.run(t, out.RunID).Status)
}

func TestExecuteRecoversAbandonedClaim(t *testing.T) {
	fastRetries(t)
	h := newHarness(t)
	h.respond("", restockAction(7))
	out := h.plan(t, "restock 7 widgets at warehouse 1")
	ctx := context.Background()
	uc := h.uc.(*assistantUseCase)

	uc.Repo = &flakyRepo{Repository: h.repo, n: transitionAttempts}
	_, err := h.uc.Execute(ctx, &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: out.RunID})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, 7, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID))

	run := h.run(t, out.RunID)
	assert.Equal(t, model.RunNeedsConfirmation, run.Status)
	require.NotNil(t, run.ConfirmedAt)

	uc.Repo = h.repo
	_, err = h.uc.Execute(ctx, &dto.ExecuteInput{WorkspaceID: ws, UserID: user, RunID: out.RunID})
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err), "a fresh claim is still in flight")

	_, err = h.db.Exec(`UPDATE command_runs SET confirmed_at = ? WHERE id = ?`, time.Now().Add(-10*time.Minute).UTC(), out.RunID)
	require.NoError(t, err)

	exec := h.execute(t, out.RunID)
	assert.Equal(t, model.RunFailed, exec.Status)
	assert.Equal(t, msgClaimAbandoned, exec.AssistantMessage)
	assert.Equal(t, 7, testutil.Quantity(t, h.db, h.widget.ID, h.wh1.ID), "the action is never applied twice")
	assert.Equal(t, 1, testutil.CountRows(t, h.db, "orders"))
	assert.Equal(t, model.ActionFailed, h.actions(t, out.RunID)[0].Status)
	assert.Equal(t, model.RunFailed, h.run(t, out.RunID).Status)
}
