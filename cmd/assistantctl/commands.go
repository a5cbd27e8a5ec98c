package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	assistantv1 "github.com/fekuna/omnipos-assistant-service/api/assistantv1"
	"github.com/fekuna/omnipos-assistant-service/internal/auth"
	"github.com/spf13/cobra"
)

var (
	conversationID string
	autoConfirm    bool

	tokenUser      string
	tokenWorkspace string
	tokenTTL       time.Duration
)

var planCmd = &cobra.Command{
	Use:   "plan <prompt>",
	Short: "Plan a natural-language command",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

var executeCmd = &cobra.Command{
	Use:   "execute <run-id>",
	Short: "Confirm and execute a planned run",
	Args:  cobra.ExactArgs(1),
	RunE:  runExecute,
}

var runCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show a run and its actions",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetRun,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development bearer token signed with JWT_SECRET_KEY",
	RunE:  runToken,
}

func init() {
	planCmd.Flags().StringVar(&conversationID, "conversation", "", "conversation id to attach to the run")
	planCmd.Flags().BoolVarP(&autoConfirm, "yes", "y", false, "execute immediately when the plan needs confirmation")

	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id (required)")
	tokenCmd.Flags().StringVar(&tokenWorkspace, "workspace", "", "workspace id (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runPlan(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	return withClient(func(ctx context.Context, client assistantv1.AssistantServiceClient) error {
		plan, err := client.Plan(ctx, &assistantv1.PlanRequest{Message: prompt, ConversationID: conversationID})
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), plan); err != nil {
			return err
		}
		if !autoConfirm || plan.Status != "needs_confirmation" {
			return nil
		}

		res, err := client.Execute(ctx, &assistantv1.ExecuteRequest{RunID: plan.RunID})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	})
}

func runExecute(cmd *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, client assistantv1.AssistantServiceClient) error {
		res, err := client.Execute(ctx, &assistantv1.ExecuteRequest{RunID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	})
}

func runGetRun(cmd *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, client assistantv1.AssistantServiceClient) error {
		res, err := client.GetRun(ctx, &assistantv1.GetRunRequest{RunID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	})
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenUser == "" || tokenWorkspace == "" {
		return fmt.Errorf("--user and --workspace are required")
	}
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	token, err := auth.NewAuthenticator(secret, false).IssueToken(tokenUser, tokenWorkspace, tokenTTL)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
