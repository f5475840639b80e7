package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// BillIDKey is the context key for the bill ID granted by the session token.
const BillIDKey contextKey = "bill_id"

var (
	// ErrWrongBill is returned when a token is used for a bill it was not issued for.
	ErrWrongBill = errors.New("token does not grant access to this bill")
	// ErrUnscopedRequest is returned for a protected procedure whose request
	// does not name a bill.
	ErrUnscopedRequest = errors.New("request does not address a bill")
)

// billScoped is implemented by requests that address a single bill.
type billScoped interface {
	GetBillID() string
}

// GetBillID extracts the authorized bill ID from the context.
// Returns empty string if not found.
func GetBillID(ctx context.Context) string {
	billID, _ := ctx.Value(BillIDKey).(string)
	return billID
}

// RequireBillToken returns an interceptor that validates session tokens.
// It extracts the token from the Authorization header, checks that it was
// issued for the bill the request addresses, and adds the bill ID to the
// context. Procedures listed in public skip the check; every other request
// must implement GetBillID.
func RequireBillToken(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if skip[req.Spec().Procedure] {
				return next(ctx, req)
			}

			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			scoped, ok := req.Any().(billScoped)
			if !ok {
				return nil, connect.NewError(connect.CodePermissionDenied, ErrUnscopedRequest)
			}
			if scoped.GetBillID() != claims.BillID {
				return nil, connect.NewError(connect.CodePermissionDenied, ErrWrongBill)
			}

			ctx = context.WithValue(ctx, BillIDKey, claims.BillID)
			return next(ctx, req)
		}
	}
}
