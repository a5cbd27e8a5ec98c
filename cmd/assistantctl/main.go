// Command assistantctl talks to the assistant gRPC service from a terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	assistantv1 "github.com/fekuna/omnipos-assistant-service/api/assistantv1"
	"github.com/fekuna/omnipos-assistant-service/pkg/apperr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	serverAddr string
	authToken  string
	timeout    time.Duration
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "assistantctl",
	Short:         "Plan and execute inventory commands through the OmniPOS assistant",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", envOr("ASSISTANT_ADDR", "localhost:8085"), "assistant gRPC address")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("ASSISTANT_TOKEN"), "bearer token (see the token command)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "request timeout")

	rootCmd.AddCommand(planCmd, executeCmd, runCmd, tokenCmd)
}

// withClient dials the service and runs fn with an authorized context.
func withClient(fn func(ctx context.Context, client assistantv1.AssistantServiceClient) error) error {
	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", serverAddr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if authToken != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+authToken)
	}
	return describe(fn(ctx, assistantv1.NewAssistantServiceClient(conn)))
}

// describe turns a gRPC status into a readable error, keeping the reason code.
func describe(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if reason := apperr.ReasonOf(err); reason != "" {
		return fmt.Errorf("%s [%s]: %s", st.Code(), reason, st.Message())
	}
	return fmt.Errorf("%s: %s", st.Code(), st.Message())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
