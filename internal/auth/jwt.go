package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type Claims struct {
	WorkspaceID string `json:"workspace_id"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret                []byte
	allowMetadataIdentity bool
}

func NewAuthenticator(secret string, allowMetadataIdentity bool) *Authenticator {
	return &Authenticator{
		secret:                []byte(secret),
		allowMetadataIdentity: allowMetadataIdentity,
	}
}

// IssueToken signs an HS256 token for userID in workspaceID.
func (a *Authenticator) IssueToken(userID, workspaceID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		WorkspaceID: workspaceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) ParseToken(token string) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid {
		return Identity{}, errors.New("invalid token")
	}
	if claims.Subject == "" || claims.WorkspaceID == "" {
		return Identity{}, errors.New("token is missing subject or workspace")
	}
	return Identity{UserID: claims.Subject, WorkspaceID: claims.WorkspaceID}, nil
}

// Enrich is the interceptor hook. Requests without credentials pass through
// without an identity; handlers that need one reject them.
func (a *Authenticator) Enrich(ctx context.Context) (context.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	if vals := md.Get("authorization"); len(vals) > 0 {
		token, found := strings.CutPrefix(vals[0], "Bearer ")
		if !found || token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		id, err := a.ParseToken(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return WithIdentity(ctx, id), nil
	}

	if a.allowMetadataIdentity {
		if id := identityFromMetadata(ctx); id.UserID != "" && id.WorkspaceID != "" {
			return WithIdentity(ctx, id), nil
		}
	}
	return ctx, nil
}
