// internal/app/system/evalapi/client.go
//
// Typed HTTP client for the remote evaluation service. Everything this app
// knows about users and evaluations comes through here: login, the
// directorate roll-up, the caller's own evaluations, and the evaluatable-user
// listing used by the debug panel.
//
// Payloads are decoded into explicit wire structs and validated at this
// boundary; a response that does not match the contract becomes an APIError
// rather than leaking a half-typed value inward.
package evalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// maxResponseBytes caps how much of an upstream body we will read.
const maxResponseBytes = 4 << 20

// Client talks to the evaluation API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New builds a Client for the given base URL ("https://api.example.com").
// The HTTP client carries a transport-level timeout; callers add their own
// context timeouts per operation.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Wire types                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type wireUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type authenticateRequest struct {
	LoginID string `json:"login_id"`
	Secret  string `json:"secret"`
}

type authenticateResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

type wireEvaluationItem struct {
	Score float64 `json:"score"`
}

type wireEvaluationRecord struct {
	ID        string               `json:"id"`
	VisitDate string               `json:"visit_date"` // YYYY-MM-DD
	Items     []wireEvaluationItem `json:"items"`
}

type directorateSummaryResponse struct {
	TotalRegions         int     `json:"total_regions"`
	TotalTeamMembers     int     `json:"total_team_members"`
	AveragePerformance   float64 `json:"average_performance"`
	TotalEvaluations     int     `json:"total_evaluations"`
	EvaluationsCompleted int     `json:"evaluations_completed"`
	AverageScore         float64 `json:"average_score"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| Operations                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Authenticate submits credentials and returns the bearer token plus user
// snapshot. Bad credentials yield an AuthError; anything else an APIError.
func (c *Client) Authenticate(ctx context.Context, loginID, secret string) (models.Credential, error) {
	body, err := json.Marshal(authenticateRequest{LoginID: loginID, Secret: secret})
	if err != nil {
		return models.Credential{}, &APIError{Message: "serialize login request", Err: err}
	}

	var resp authenticateResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", bytes.NewReader(body), &resp); err != nil {
		return models.Credential{}, err
	}

	cred := models.Credential{
		Token: resp.Token,
		User: models.User{
			ID:          resp.User.ID,
			DisplayName: resp.User.DisplayName,
			Role:        models.NormalizeRole(resp.User.Role),
		},
	}
	if !cred.Valid() {
		return models.Credential{}, &APIError{Message: "login response missing token or user"}
	}
	return cred, nil
}

// FetchDirectorateSummary returns the pre-aggregated organization roll-up for
// sales directors. The payload passes through untouched; missing numeric
// fields decode to zero and display as zero.
func (c *Client) FetchDirectorateSummary(ctx context.Context, token string) (models.DirectorateMetrics, error) {
	var resp directorateSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/api/evaluations/directorate-summary", token, nil, &resp); err != nil {
		return models.DirectorateMetrics{}, err
	}
	return models.DirectorateMetrics(resp), nil
}

// FetchOwnEvaluations returns the caller's evaluation records in the order
// the server sends them.
func (c *Client) FetchOwnEvaluations(ctx context.Context, token string) ([]models.EvaluationRecord, error) {
	var resp []wireEvaluationRecord
	if err := c.do(ctx, http.MethodGet, "/api/evaluations/mine", token, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]models.EvaluationRecord, 0, len(resp))
	for _, wr := range resp {
		if wr.ID == "" {
			return nil, &APIError{Message: "evaluation record missing id"}
		}
		visit, err := time.Parse("2006-01-02", wr.VisitDate)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("evaluation %s has malformed visit_date %q", wr.ID, wr.VisitDate), Err: err}
		}
		items := make([]models.EvaluationItem, 0, len(wr.Items))
		for _, wi := range wr.Items {
			items = append(items, models.EvaluationItem{Score: wi.Score})
		}
		records = append(records, models.EvaluationRecord{
			ID:        wr.ID,
			VisitDate: visit,
			Items:     items,
		})
	}
	return records, nil
}

// FetchEvaluatableUsers lists the users the caller may evaluate. Only the
// read-only debug surface consumes this.
func (c *Client) FetchEvaluatableUsers(ctx context.Context, token string) ([]models.User, error) {
	var resp []wireUser
	if err := c.do(ctx, http.MethodGet, "/api/users/evaluatable", token, nil, &resp); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(resp))
	for _, wu := range resp {
		if wu.ID == "" {
			return nil, &APIError{Message: "user listing entry missing id"}
		}
		users = append(users, models.User{
			ID:          wu.ID,
			DisplayName: wu.DisplayName,
			Role:        models.NormalizeRole(wu.Role),
		})
	}
	return users, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Transport                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// do executes one request and decodes the 2xx response body into out.
// 401/403 become AuthError; other failures become APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Message: "build request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("evaluation API unreachable",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &APIError{Message: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: "read response body", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Message: upstreamMessage(raw, "authorization rejected")}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Warn("evaluation API returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID))
		return &APIError{Status: resp.StatusCode, Message: upstreamMessage(raw, method+" "+path)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "response did not match contract", Err: err}
	}
	return nil
}

// upstreamMessage pulls the server's error string out of an error payload,
// falling back to a generic message when the body isn't the expected shape.
func upstreamMessage(raw []byte, fallback string) string {
	var er apiErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return er.Error
	}
	return fallback
}
