package http

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/allowance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	testSubjectID     = "0190a8f2-3c4d-7e5f-8a9b-0c1d2e3f4a5b"
	testOrgUnitID     = "0190a8f2-0000-7e5f-8a9b-0c1d2e3f4a5b"
	testGrantID       = "0190a8f2-1111-7e5f-8a9b-0c1d2e3f4a5b"
)

// ===== FAKES =====

type fakeReconciliationService struct {
	lastReconcile reconciliation.ReconcileRequest
	lastEvaluate  reconciliation.EvaluateRequest
	err           error
}

func (f *fakeReconciliationService) Reconcile(ctx context.Context, req reconciliation.ReconcileRequest) (reconciliation.ReconcileResponse, error) {
	f.lastReconcile = req
	if f.err != nil {
		return reconciliation.ReconcileResponse{}, f.err
	}
	return reconciliation.ReconcileResponse{SubjectID: req.SubjectID, StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func (f *fakeReconciliationService) Evaluate(ctx context.Context, req reconciliation.EvaluateRequest) (reconciliation.ReconcileResponse, error) {
	f.lastEvaluate = req
	if f.err != nil {
		return reconciliation.ReconcileResponse{}, f.err
	}
	return reconciliation.ReconcileResponse{SubjectID: req.SubjectID}, nil
}

type fakeAllowanceService struct {
	lastBreakdown allowance.BreakdownRequest
	err           error
}

func (f *fakeAllowanceService) MyBreakdown(ctx context.Context, req allowance.BreakdownRequest) (allowance.BreakdownResponse, error) {
	f.lastBreakdown = req
	if f.err != nil {
		return allowance.BreakdownResponse{}, f.err
	}
	return allowance.BreakdownResponse{SubjectID: req.SubjectID, Today: "2024-06-03"}, nil
}

func (f *fakeAllowanceService) EvaluateBreakdown(ctx context.Context, req allowance.EvaluateBreakdownRequest) (allowance.BreakdownResponse, error) {
	if f.err != nil {
		return allowance.BreakdownResponse{}, f.err
	}
	return allowance.BreakdownResponse{Today: req.Today}, nil
}

type fakeLeaveService struct {
	lastDecide leave.DecideRequest
	decideErr  error
	events     chan sse.Event
	subscribed chan string
}

func (f *fakeLeaveService) Decide(ctx context.Context, req leave.DecideRequest) (leave.LeaveGrantResponse, error) {
	f.lastDecide = req
	if f.decideErr != nil {
		return leave.LeaveGrantResponse{}, f.decideErr
	}
	status := "REJECTED"
	if req.Approve {
		status = "APPROVED"
	}
	return leave.LeaveGrantResponse{ID: req.ID, Status: status}, nil
}

func (f *fakeLeaveService) PendingBadge(ctx context.Context) (leave.PendingBadgeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.PendingBadgeResponse{}, err
	}
	return leave.PendingBadgeResponse{OrgUnitID: claims.OrgUnitID, Pending: 4}, nil
}

func (f *fakeLeaveService) Subscribe(ctx context.Context, orgUnitID string) (<-chan sse.Event, func()) {
	if f.subscribed != nil {
		f.subscribed <- orgUnitID
	}
	return f.events, func() {}
}

func (f *fakeLeaveService) Stop() {}

type testServer struct {
	router         *chi.Mux
	jwtService     jwt.Service
	reconciliation *fakeReconciliationService
	allowance      *fakeAllowanceService
	leave          *fakeLeaveService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	ts := &testServer{
		jwtService:     jwtService,
		reconciliation: &fakeReconciliationService{},
		allowance:      &fakeAllowanceService{},
		leave:          &fakeLeaveService{events: make(chan sse.Event, 1), subscribed: make(chan string, 1)},
	}
	ts.router = NewRouter(
		RouterConfig{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			AllowedOrigins: []string{"http://localhost:3000"},
			LogLevel:       slog.LevelInfo,
		},
		jwtService,
		NewReconciliationHandler(ts.reconciliation),
		NewAllowanceHandler(ts.allowance),
		NewLeaveHandler(ts.leave),
		NewEventsHandler(ts.leave, jwtService),
	)
	return ts
}

func (ts *testServer) token(t *testing.T, role jwt.Role) string {
	t.Helper()
	token, _, err := ts.jwtService.GenerateAccessToken(testSubjectID, testOrgUnitID, role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var resp response.Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

// ===== AUTH TESTS =====

func TestRouter_Authentication(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rec, _ := ts.do(t, http.MethodGet, "/api/v1/reconciliation/my?start_date=2024-06-01&end_date=2024-06-07", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := ts.do(t, http.MethodGet, "/api/v1/reconciliation/my", "not-a-jwt", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sse token is not an access token", func(t *testing.T) {
		sseToken, _, err := ts.jwtService.GenerateSSEToken(testSubjectID, testOrgUnitID)
		require.NoError(t, err)

		rec, resp := ts.do(t, http.MethodGet, "/api/v1/reconciliation/my", sseToken, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	})

	t.Run("heartbeat needs no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

// ===== RECONCILIATION TESTS =====

func TestReconciliationHandler_GetMy(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodGet,
		"/api/v1/reconciliation/my?start_date=2024-06-01&end_date=2024-06-07&show_today=true",
		ts.token(t, jwt.RoleEmployee), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, reconciliation.ReconcileRequest{
		SubjectID: testSubjectID,
		StartDate: "2024-06-01",
		EndDate:   "2024-06-07",
		ShowToday: true,
	}, ts.reconciliation.lastReconcile)
}

func TestReconciliationHandler_GetSubject(t *testing.T) {
	ts := newTestServer(t)
	path := "/api/v1/reconciliation/subjects/other-subject?start_date=2024-06-01&end_date=2024-06-07"

	t.Run("employee is forbidden", func(t *testing.T) {
		rec, resp := ts.do(t, http.MethodGet, path, ts.token(t, jwt.RoleEmployee), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	})

	t.Run("admin reads subject from path", func(t *testing.T) {
		rec, _ := ts.do(t, http.MethodGet, path, ts.token(t, jwt.RoleAdmin), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "other-subject", ts.reconciliation.lastReconcile.SubjectID)
		assert.False(t, ts.reconciliation.lastReconcile.ShowToday)
	})
}

func TestReconciliationHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "validation",
			err:      validator.ValidationErrors{{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"}},
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "VALIDATION_ERROR",
		},
		{name: "other org unit", err: orgunit.ErrUnauthorizedAccess, wantCode: http.StatusForbidden, wantErr: "FORBIDDEN"},
		{name: "unknown subject", err: orgunit.ErrSubjectNotFound, wantCode: http.StatusNotFound, wantErr: "NOT_FOUND"},
		{name: "bad zone", err: reconciliation.ErrInvalidTimezone, wantCode: http.StatusUnprocessableEntity, wantErr: "VALIDATION_ERROR"},
		{name: "unexpected", err: io.ErrUnexpectedEOF, wantCode: http.StatusInternalServerError, wantErr: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.reconciliation.err = tt.err

			rec, resp := ts.do(t, http.MethodGet, "/api/v1/reconciliation/my", ts.token(t, jwt.RoleEmployee), "")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

func TestReconciliationHandler_Evaluate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, jwt.RoleEmployee)

	t.Run("malformed body", func(t *testing.T) {
		rec, resp := ts.do(t, http.MethodPost, "/api/v1/reconciliation/evaluate", token, "{")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	})

	t.Run("body reaches service", func(t *testing.T) {
		body := `{"subject_id":"s-1","start_date":"2024-06-03","end_date":"2024-06-03","today":"2024-06-10","timezone":"Asia/Jakarta",
			"calendar":[{"date":"2024-06-03","day_type":"WORKDAY","expected_start":"08:00:00"}]}`

		rec, _ := ts.do(t, http.MethodPost, "/api/v1/reconciliation/evaluate", token, body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "s-1", ts.reconciliation.lastEvaluate.SubjectID)
		require.Len(t, ts.reconciliation.lastEvaluate.Calendar, 1)
		assert.Equal(t, "WORKDAY", ts.reconciliation.lastEvaluate.Calendar[0].DayType)
	})
}

// ===== ALLOWANCE TESTS =====

func TestAllowanceHandler(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, jwt.RoleEmployee)

	t.Run("my breakdown uses caller subject", func(t *testing.T) {
		rec, resp := ts.do(t, http.MethodGet, "/api/v1/allowance/my/breakdown?start_date=2024-06-01&end_date=2024-06-30", token, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, allowance.BreakdownRequest{
			SubjectID: testSubjectID,
			StartDate: "2024-06-01",
			EndDate:   "2024-06-30",
		}, ts.allowance.lastBreakdown)
	})

	t.Run("evaluate", func(t *testing.T) {
		rec, resp := ts.do(t, http.MethodPost, "/api/v1/allowance/breakdown/evaluate", token,
			`{"today":"2024-06-10","days":[{"date":"2024-06-03","note":"WORKDAY","earned_credit":"1","expected_unit":"1"}]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "2024-06-10", data["today"])
	})

	t.Run("evaluate malformed", func(t *testing.T) {
		rec, _ := ts.do(t, http.MethodPost, "/api/v1/allowance/breakdown/evaluate", token, `{"days":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// ===== LEAVE TESTS =====

func TestLeaveHandler_Decide(t *testing.T) {
	t.Run("approve without body", func(t *testing.T) {
		ts := newTestServer(t)

		rec, resp := ts.do(t, http.MethodPost, "/api/v1/leaves/"+testGrantID+"/approve", ts.token(t, jwt.RoleAdmin), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Leave grant approved successfully", resp.Message)
		assert.Equal(t, testGrantID, ts.leave.lastDecide.ID)
		assert.True(t, ts.leave.lastDecide.Approve)
		assert.Nil(t, ts.leave.lastDecide.Note)
	})

	t.Run("reject with note", func(t *testing.T) {
		ts := newTestServer(t)

		rec, resp := ts.do(t, http.MethodPost, "/api/v1/leaves/"+testGrantID+"/reject", ts.token(t, jwt.RoleAdmin), `{"note":"overlaps audit week"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Leave grant rejected successfully", resp.Message)
		assert.False(t, ts.leave.lastDecide.Approve)
		require.NotNil(t, ts.leave.lastDecide.Note)
		assert.Equal(t, "overlaps audit week", *ts.leave.lastDecide.Note)
	})

	t.Run("body cannot override path id", func(t *testing.T) {
		ts := newTestServer(t)

		ts.do(t, http.MethodPost, "/api/v1/leaves/"+testGrantID+"/approve", ts.token(t, jwt.RoleAdmin), `{"id":"other"}`)

		assert.Equal(t, testGrantID, ts.leave.lastDecide.ID)
	})

	t.Run("employee is forbidden", func(t *testing.T) {
		ts := newTestServer(t)

		rec, _ := ts.do(t, http.MethodPost, "/api/v1/leaves/"+testGrantID+"/approve", ts.token(t, jwt.RoleEmployee), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, ts.leave.lastDecide.ID)
	})

	t.Run("already processed", func(t *testing.T) {
		ts := newTestServer(t)
		ts.leave.decideErr = leave.ErrLeaveGrantAlreadyProcessed

		rec, resp := ts.do(t, http.MethodPost, "/api/v1/leaves/"+testGrantID+"/approve", ts.token(t, jwt.RoleAdmin), "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ts := newTestServer(t)
		ts.leave.decideErr = leave.ErrLeaveGrantNotFound

		rec, _ := ts.do(t, http.MethodPost, "/api/v1/leaves/"+testGrantID+"/reject", ts.token(t, jwt.RoleAdmin), `{"note":"x"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLeaveHandler_PendingCount(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/leaves/pending-count", ts.token(t, jwt.RoleAdmin), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, testOrgUnitID, data["org_unit_id"])
	assert.Equal(t, float64(4), data["pending"])
}

// ===== EVENTS TESTS =====

func TestEventsHandler_GetSSEToken(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/events/token", ts.token(t, jwt.RoleEmployee), "")

	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(300), data["expires_in"])

	claims, err := ts.jwtService.ValidateSSEToken(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, testSubjectID, claims.SubjectID)
	assert.Equal(t, testOrgUnitID, claims.OrgUnitID)
}

func TestEventsHandler_Stream(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		ts := newTestServer(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/stream", nil)
		rec := httptest.NewRecorder()

		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		ts := newTestServer(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/stream?token="+ts.token(t, jwt.RoleEmployee), nil)
		rec := httptest.NewRecorder()

		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("streams org unit events", func(t *testing.T) {
		ts := newTestServer(t)
		server := httptest.NewServer(ts.router)
		defer server.Close()

		sseToken, _, err := ts.jwtService.GenerateSSEToken(testSubjectID, testOrgUnitID)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events/stream?token="+sseToken, nil)
		require.NoError(t, err)

		resp, err := server.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
		assert.Equal(t, testOrgUnitID, <-ts.leave.subscribed)

		reader := bufio.NewReader(resp.Body)
		assert.Equal(t, "event: connected\n", readLine(t, reader))
		assert.Contains(t, readLine(t, reader), testOrgUnitID)
		readLine(t, reader)

		ts.leave.events <- sse.Event{
			Topic: testOrgUnitID,
			Event: leave.EventLeaveDecided,
			Data:  leave.DecidedEvent{GrantID: testGrantID, Status: "APPROVED"},
		}

		assert.Equal(t, "event: leave.decided\n", readLine(t, reader))
		data := strings.TrimPrefix(readLine(t, reader), "data: ")
		var ev leave.DecidedEvent
		require.NoError(t, json.Unmarshal([]byte(data), &ev))
		assert.Equal(t, testGrantID, ev.GrantID)
		assert.Equal(t, "APPROVED", ev.Status)

		// Closing the channel ends the stream
		close(ts.leave.events)
		_, err = io.ReadAll(reader)
		assert.NoError(t, err)
	})
}

func readLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	return line
}
