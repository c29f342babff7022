package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/internal/service/auth"
	"github.com/heartmarshall/drugverify-backend/internal/service/chat"
	"github.com/heartmarshall/drugverify-backend/internal/service/history"
	"github.com/heartmarshall/drugverify-backend/pkg/ctxutil"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, id uuid.UUID) *http.Request {
	return req.WithContext(ctxutil.WithUserID(req.Context(), id))
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

type fakeAuthService struct {
	register func(ctx context.Context, input auth.NewUserInput) (*auth.AuthResult, error)
	login    func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	refresh  func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	logout   func(ctx context.Context) error
}

func (f *fakeAuthService) Register(ctx context.Context, input auth.NewUserInput) (*auth.AuthResult, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthService) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return f.login(ctx, input)
}

func (f *fakeAuthService) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	return f.refresh(ctx, input)
}

func (f *fakeAuthService) Logout(ctx context.Context) error { return f.logout(ctx) }

type fakeVerifier struct {
	verdict domain.Verdict
	queries []domain.Query
}

func (f *fakeVerifier) Verify(_ context.Context, q domain.Query) domain.Verdict {
	f.queries = append(f.queries, q)
	return f.verdict
}

type fakeHistory struct {
	err  error
	page *history.ScanPage
	last history.ListScansInput
}

func (f *fakeHistory) RecordVerification(_ context.Context, userID uuid.UUID, q domain.Query, v domain.Verdict) (*domain.ScanRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec := domain.NewScanRecord(userID, q, v)
	rec.ID = uuid.New()
	return &rec, nil
}

func (f *fakeHistory) ListMyScans(ctx context.Context, input history.ListScansInput) (*history.ScanPage, error) {
	f.last = input
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return f.page, nil
}

type fakeChat struct {
	reply *chat.Reply
	err   error
	last  chat.Input
}

func (f *fakeChat) Chat(_ context.Context, input chat.Input) (*chat.Reply, error) {
	f.last = input
	return f.reply, f.err
}
