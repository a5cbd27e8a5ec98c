package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-assistant-service/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-secret")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--user", "user-7", "--workspace", "ws-7"})
	require.NoError(t, rootCmd.Execute())

	id, err := auth.NewAuthenticator("cli-secret", false).ParseToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: "user-7", WorkspaceID: "ws-7"}, id)
}

func TestTokenCommandRequiresIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	tokenUser, tokenWorkspace = "", ""

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"token", "--workspace", "ws-7"})
	assert.Error(t, rootCmd.Execute())
}

func TestDescribe(t *testing.T) {
	assert.NoError(t, describe(nil))

	err := describe(status.Error(codes.NotFound, "Assistant run not found."))
	assert.EqualError(t, err, "NotFound: Assistant run not found.")
}
