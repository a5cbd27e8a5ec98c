package handler

import (
	"context"
	"encoding/json"

	pb "github.com/fekuna/omnipos-assistant-service/api/assistantv1"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/executor"
	"github.com/fekuna/omnipos-assistant-service/internal/auth"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/pkg/apperr"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ pb.AssistantServiceServer = (*AssistantHandler)(nil)

type AssistantHandler struct {
	pb.UnimplementedAssistantServiceServer
	uc     assistant.UseCase
	logger logger.ZapLogger
}

func NewAssistantHandler(uc assistant.UseCase, log logger.ZapLogger) *AssistantHandler {
	return &AssistantHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AssistantHandler) Plan(ctx context.Context, req *pb.PlanRequest) (*pb.PlanResponse, error) {
	id, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing user or workspace context")
	}

	out, err := h.uc.Plan(ctx, &dto.PlanInput{
		WorkspaceID:    id.WorkspaceID,
		UserID:         id.UserID,
		Message:        req.Message,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		h.logger.Warn("plan rejected", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, apperr.ToGRPC(err)
	}

	return &pb.PlanResponse{
		RunID:            out.RunID,
		Status:           string(out.Status),
		AssistantMessage: out.AssistantMessage,
		ActionPreview:    mapPreview(out.ActionPreview),
		Clarification:    mapClarification(out),
		ReadResult:       mapReadResult(out.ReadResult),
	}, nil
}

func (h *AssistantHandler) Execute(ctx context.Context, req *pb.ExecuteRequest) (*pb.ExecuteResponse, error) {
	id, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing user or workspace context")
	}

	out, err := h.uc.Execute(ctx, &dto.ExecuteInput{
		WorkspaceID: id.WorkspaceID,
		UserID:      id.UserID,
		RunID:       req.RunID,
	})
	if err != nil {
		h.logger.Warn("execute rejected", zap.String("run_id", req.RunID), zap.Error(err))
		return nil, apperr.ToGRPC(err)
	}

	resp := &pb.ExecuteResponse{
		RunID:            out.RunID,
		Status:           string(out.Status),
		AssistantMessage: out.AssistantMessage,
	}
	if e := out.Execution; e != nil {
		resp.Execution = &pb.Execution{
			Succeeded: e.Succeeded,
			Kind:      string(e.Kind),
			Message:   e.Message,
			Affected:  e.Affected,
		}
	}
	return resp, nil
}

func (h *AssistantHandler) GetRun(ctx context.Context, req *pb.GetRunRequest) (*pb.GetRunResponse, error) {
	id, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing user or workspace context")
	}

	view, err := h.uc.GetRun(ctx, id.WorkspaceID, req.RunID)
	if err != nil {
		return nil, apperr.ToGRPC(err)
	}

	actions := make([]*pb.Action, 0, len(view.Actions))
	for i := range view.Actions {
		actions = append(actions, mapAction(&view.Actions[i]))
	}
	return &pb.GetRunResponse{
		Run:     mapRun(view.Run),
		Actions: actions,
	}, nil
}

func mapPreview(p *dto.ActionPreview) *pb.ActionPreview {
	if p == nil {
		return nil
	}
	return &pb.ActionPreview{
		Kind:     string(p.Kind),
		Summary:  p.Summary,
		Warnings: p.Warnings,
	}
}

func mapClarification(out *dto.PlanOutput) *pb.Clarification {
	if out.Clarification == nil {
		return nil
	}
	c := &pb.Clarification{Reason: out.Clarification.Message}
	for _, o := range out.Clarification.Options {
		c.Options = append(c.Options, pb.Option{Label: o.Label, Value: o.Value})
	}
	return c
}

func mapReadResult(r *executor.ReadResult) *pb.ReadResult {
	if r == nil {
		return nil
	}
	res := &pb.ReadResult{
		Message: r.Message,
		Rows:    rawJSON(r.Rows),
	}
	if r.Chart != nil {
		res.ChartData = &pb.Chart{
			Type:  r.Chart.Type,
			Label: r.Chart.Label,
			Data:  rawJSON(r.Chart.Data),
		}
	}
	return res
}

func mapRun(r *model.CommandRun) *pb.Run {
	run := &pb.Run{
		ID:               r.ID,
		Prompt:           r.Prompt,
		Model:            r.Model,
		Status:           string(r.Status),
		AssistantMessage: r.AssistantMessage,
		Clarification:    json.RawMessage(r.Clarification),
		ExecutionResult:  json.RawMessage(r.ExecutionResult),
		NormalizedIntent: json.RawMessage(r.NormalizedIntent),
		CreatedAt:        r.CreatedAt,
		ConfirmedAt:      r.ConfirmedAt,
		ExecutedAt:       r.ExecutedAt,
	}
	if r.ConversationID != nil {
		run.ConversationID = *r.ConversationID
	}
	if r.Error != nil {
		run.Error = *r.Error
	}
	return run
}

func mapAction(a *model.CommandAction) *pb.Action {
	act := &pb.Action{
		ID:              a.ID,
		Index:           a.ActionIndex,
		Kind:            a.Kind,
		Status:          string(a.Status),
		ActionPayload:   json.RawMessage(a.ActionPayload),
		ResolvedPayload: json.RawMessage(a.ResolvedPayload),
		Result:          json.RawMessage(a.Result),
	}
	if a.Error != nil {
		act.Error = *a.Error
	}
	return act
}

func rawJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
