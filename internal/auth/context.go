package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

type Identity struct {
	UserID      string
	WorkspaceID string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentity returns the caller identity placed in ctx by the auth interceptor.
// ok is false when either the user or the workspace is unknown.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id, id.UserID != "" && id.WorkspaceID != ""
}

// identityFromMetadata reads gateway-provided headers. Only trusted when the
// service sits behind a gateway that strips them from client requests.
func identityFromMetadata(ctx context.Context) Identity {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return Identity{}
	}
	var id Identity
	if val := md.Get("x-user-id"); len(val) > 0 {
		id.UserID = val[0]
	}
	if val := md.Get("x-workspace-id"); len(val) > 0 {
		id.WorkspaceID = val[0]
	}
	return id
}
