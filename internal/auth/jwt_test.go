package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestEnrichWithBearerToken(t *testing.T) {
	a := NewAuthenticator("secret", false)
	token, err := a.IssueToken("user-1", "ws-1", time.Hour)
	require.NoError(t, err)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	ctx, err = a.Enrich(ctx)
	require.NoError(t, err)

	id, ok := GetIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, Identity{UserID: "user-1", WorkspaceID: "ws-1"}, id)
}

func TestEnrichRejectsForeignSignature(t *testing.T) {
	token, err := NewAuthenticator("other", false).IssueToken("user-1", "ws-1", time.Hour)
	require.NoError(t, err)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	_, err = NewAuthenticator("secret", false).Enrich(ctx)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestEnrichRejectsExpiredToken(t *testing.T) {
	a := NewAuthenticator("secret", false)
	token, err := a.IssueToken("user-1", "ws-1", -time.Minute)
	require.NoError(t, err)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	_, err = a.Enrich(ctx)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestEnrichMetadataIdentity(t *testing.T) {
	md := metadata.Pairs("x-user-id", "user-2", "x-workspace-id", "ws-2")

	ctx, err := NewAuthenticator("secret", false).Enrich(metadata.NewIncomingContext(context.Background(), md))
	require.NoError(t, err)
	_, ok := GetIdentity(ctx)
	assert.False(t, ok, "gateway headers must be ignored unless trusted")

	ctx, err = NewAuthenticator("secret", true).Enrich(metadata.NewIncomingContext(context.Background(), md))
	require.NoError(t, err)
	id, ok := GetIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, "ws-2", id.WorkspaceID)
}
