package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const runColumns = `id, workspace_id, user_id, conversation_id, prompt, model, status, assistant_message,
    clarification, execution_result, normalized_intent, error, created_at, updated_at, confirmed_at, executed_at`

const actionColumns = `id, run_id, workspace_id, user_id, action_index, kind, action_payload, resolved_payload,
    status, error, result, created_at, updated_at`

// countRecentRunsQuery is served by command_runs_user_created_idx.
const countRecentRunsQuery = `SELECT count(*) FROM command_runs WHERE user_id = ? AND created_at >= ?`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateRun(ctx context.Context, run *model.CommandRun) error {
	query := `
        INSERT INTO command_runs (` + runColumns + `)
        VALUES (
            :id, :workspace_id, :user_id, :conversation_id, :prompt, :model, :status, :assistant_message,
            :clarification, :execution_result, :normalized_intent, :error, :created_at, :updated_at,
            :confirmed_at, :executed_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, run)
	return err
}

func (r *PGRepository) CountRecentRuns(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	query := r.DB.Rebind(countRecentRunsQuery)
	if err := r.DB.GetContext(ctx, &n, query, userID, since.UTC()); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGRepository) Transition(ctx context.Context, t *assistant.Transition) error {
	if !model.CanTransition(t.From, t.To) {
		return fmt.Errorf("invalid run transition %s -> %s", t.From, t.To)
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := tx.Rebind(`
        UPDATE command_runs
        SET status = ?,
            assistant_message = ?,
            clarification = ?,
            execution_result = ?,
            normalized_intent = COALESCE(?, normalized_intent),
            error = ?,
            executed_at = ?,
            updated_at = ?
        WHERE id = ? AND status = ?
    `)
	res, err := tx.ExecContext(ctx, query,
		t.To, t.AssistantMessage, t.Clarification, t.ExecutionResult, t.NormalizedIntent,
		t.Error, t.ExecutedAt, now, t.RunID, t.From,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return assistant.ErrStaleTransition
	}

	for i := range t.Actions {
		a := &t.Actions[i]
		a.RunID = t.RunID
		a.CreatedAt, a.UpdatedAt = now, now
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO command_actions (`+actionColumns+`)
            VALUES (
                :id, :run_id, :workspace_id, :user_id, :action_index, :kind, :action_payload, :resolved_payload,
                :status, :error, :result, :created_at, :updated_at
            )`, a)
		if err != nil {
			return fmt.Errorf("insert action %d: %w", a.ActionIndex, err)
		}
	}

	if u := t.ActionUpdate; u != nil {
		query := tx.Rebind(`
            UPDATE command_actions
            SET status = ?, error = ?, result = ?, updated_at = ?
            WHERE id = ? AND run_id = ?
        `)
		if _, err := tx.ExecContext(ctx, query, u.Status, u.Error, u.Result, now, u.ID, t.RunID); err != nil {
			return fmt.Errorf("update action: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) ClaimRun(ctx context.Context, runID string, at time.Time) (bool, error) {
	query := r.DB.Rebind(`
        UPDATE command_runs
        SET confirmed_at = ?, updated_at = ?
        WHERE id = ? AND status = ? AND confirmed_at IS NULL
    `)
	res, err := r.DB.ExecContext(ctx, query, at.UTC(), at.UTC(), runID, model.RunNeedsConfirmation)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PGRepository) GetRun(ctx context.Context, workspaceID, runID string) (*model.CommandRun, error) {
	var run model.CommandRun
	query := r.DB.Rebind(`SELECT ` + runColumns + ` FROM command_runs WHERE workspace_id = ? AND id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &run, query, workspaceID, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *PGRepository) ListActions(ctx context.Context, runID string) ([]model.CommandAction, error) {
	actions := []model.CommandAction{}
	query := r.DB.Rebind(`SELECT ` + actionColumns + ` FROM command_actions WHERE run_id = ? ORDER BY action_index`)
	if err := r.DB.SelectContext(ctx, &actions, query, runID); err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *PGRepository) ExecutableAction(ctx context.Context, runID string) (*model.CommandAction, error) {
	var a model.CommandAction
	query := r.DB.Rebind(`
        SELECT ` + actionColumns + `
        FROM command_actions
        WHERE run_id = ? AND resolved_payload IS NOT NULL
        ORDER BY action_index
        LIMIT 1
    `)
	err := r.DB.GetContext(ctx, &a, query, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
