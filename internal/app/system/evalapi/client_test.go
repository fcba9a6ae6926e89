package evalapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/evalapi"
	"github.com/salespulse/salespulse/internal/domain/models"
)

func newClient(t *testing.T, handler http.HandlerFunc) *evalapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return evalapi.New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestAuthenticate_Success(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}

		var body struct {
			LoginID string `json:"login_id"`
			Secret  string `json:"secret"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode login body: %v", err)
		}
		if body.LoginID != "ana@example.com" || body.Secret != "s3cret" {
			t.Errorf("unexpected login payload: %+v", body)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user": map[string]any{
				"id":           "u-1",
				"display_name": "Ana",
				"role":         "salesperson",
			},
		})
	})

	cred, err := client.Authenticate(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if cred.Token != "tok-1" {
		t.Errorf("token: got %q", cred.Token)
	}
	if cred.User.Role != models.RoleSalesperson {
		t.Errorf("role not normalized: got %q", cred.User.Role)
	}
}

func TestAuthenticate_BadCredentialsIsAuthError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	_, err := client.Authenticate(context.Background(), "ana@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !evalapi.IsAuthError(err) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
}

func TestAuthenticate_MissingTokenIsAPIError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": "u-1", "display_name": "Ana", "role": "SALESPERSON"},
		})
	})

	_, err := client.Authenticate(context.Background(), "ana@example.com", "s3cret")
	if err == nil {
		t.Fatal("expected error for token-less response")
	}
	if evalapi.IsAuthError(err) {
		t.Fatal("shape violation should be APIError, not AuthError")
	}
}

func TestFetchOwnEvaluations_Success(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization: got %q", got)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":         "ev-1",
				"visit_date": "2026-08-12",
				"items":      []map[string]any{{"score": 4}, {"score": 6}},
			},
			{
				"id":         "ev-2",
				"visit_date": "2026-07-30",
				"items":      []map[string]any{},
			},
		})
	})

	records, err := client.FetchOwnEvaluations(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("FetchOwnEvaluations failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count: got %d, want 2", len(records))
	}
	if records[0].ID != "ev-1" || len(records[0].Items) != 2 {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if got := records[0].VisitDate.Format("2006-01-02"); got != "2026-08-12" {
		t.Errorf("visit date: got %s", got)
	}
	if len(records[1].Items) != 0 {
		t.Errorf("empty items not preserved: %+v", records[1])
	}
}

func TestFetchOwnEvaluations_MalformedDateIsAPIError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "ev-1", "visit_date": "yesterday", "items": []map[string]any{}},
		})
	})

	_, err := client.FetchOwnEvaluations(context.Background(), "tok-1")
	if err == nil {
		t.Fatal("expected error for malformed visit_date")
	}
	if evalapi.IsAuthError(err) {
		t.Fatal("shape violation should not be an AuthError")
	}
}

func TestFetchOwnEvaluations_ExpiredTokenIsAuthError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FetchOwnEvaluations(context.Background(), "stale-token")
	if !evalapi.IsAuthError(err) {
		t.Fatalf("expected AuthError for 401, got %v", err)
	}
}

func TestFetchDirectorateSummary_PassThroughAndDefaults(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/evaluations/directorate-summary" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		// total_regions intentionally omitted; it must default to 0.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_team_members":    42,
			"average_performance":   87.5,
			"total_evaluations":     310,
			"evaluations_completed": 290,
			"average_score":         4.2,
		})
	})

	m, err := client.FetchDirectorateSummary(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("FetchDirectorateSummary failed: %v", err)
	}
	if m.TotalRegions != 0 {
		t.Errorf("TotalRegions: got %d, want 0 default", m.TotalRegions)
	}
	if m.TotalTeamMembers != 42 || m.AveragePerformance != 87.5 {
		t.Errorf("unexpected summary: %+v", m)
	}
}

func TestFetchEvaluatableUsers(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "u-1", "display_name": "Ana", "role": "salesperson"},
			{"id": "u-2", "display_name": "Luis", "role": "SALES_LEAD"},
		})
	})

	users, err := client.FetchEvaluatableUsers(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("FetchEvaluatableUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("user count: got %d, want 2", len(users))
	}
	if users[0].Role != models.RoleSalesperson || users[1].Role != models.RoleSalesLead {
		t.Errorf("roles not normalized: %+v", users)
	}
}

func TestServerErrorIsAPIErrorWithStatus(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchOwnEvaluations(context.Background(), "tok-1")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *evalapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status: got %d, want %d", apiErr.Status, http.StatusBadGateway)
	}
}
