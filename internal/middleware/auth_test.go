package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

const (
	scopedProcedure   = "/billsplit.test.v1.TestService/Scoped"
	unscopedProcedure = "/billsplit.test.v1.TestService/Unscoped"
)

// newTokenServer serves one procedure whose request names a bill and one
// whose request does not, both behind RequireBillToken.
func newTokenServer(t *testing.T, tokens *auth.JWTManager) string {
	t.Helper()

	interceptors := connect.WithInterceptors(RequireBillToken(tokens))
	codec := connect.WithCodec(apiconnect.Codec{})

	mux := http.NewServeMux()
	mux.Handle(scopedProcedure, connect.NewUnaryHandler(scopedProcedure,
		func(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
			return connect.NewResponse(&api.GetBillResponse{Bill: api.Bill{ID: GetBillID(ctx)}}), nil
		}, codec, interceptors))
	mux.Handle(unscopedProcedure, connect.NewUnaryHandler(unscopedProcedure,
		func(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
			return connect.NewResponse(&api.CalculateResponse{}), nil
		}, codec, interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func bearer[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestRequireBillToken(t *testing.T) {
	tokens := auth.NewJWTManager("test-secret-key-at-least-32-bytes", time.Hour)
	url := newTokenServer(t, tokens)
	codec := connect.WithCodec(apiconnect.Codec{})
	scoped := connect.NewClient[api.GetBillRequest, api.GetBillResponse](http.DefaultClient, url+scopedProcedure, codec)
	unscoped := connect.NewClient[api.CalculateRequest, api.CalculateResponse](http.DefaultClient, url+unscopedProcedure, codec)

	token, err := tokens.Generate("bill-1")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("matching bill", func(t *testing.T) {
		resp, err := scoped.CallUnary(ctx, bearer(&api.GetBillRequest{BillID: "bill-1"}, token))
		require.NoError(t, err)
		assert.Equal(t, "bill-1", resp.Msg.Bill.ID)
	})

	t.Run("other bill", func(t *testing.T) {
		_, err := scoped.CallUnary(ctx, bearer(&api.GetBillRequest{BillID: "bill-2"}, token))
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	})

	t.Run("request without bill id", func(t *testing.T) {
		_, err := unscoped.CallUnary(ctx, bearer(&api.CalculateRequest{}, token))
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	})

	t.Run("no token", func(t *testing.T) {
		_, err := unscoped.CallUnary(ctx, connect.NewRequest(&api.CalculateRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})
}
