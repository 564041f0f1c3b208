package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utamahr/claims-backend-go/internal/config"
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/employee"
	"github.com/utamahr/claims-backend-go/internal/domain/user"
	"github.com/utamahr/claims-backend-go/internal/pkg/jwt"
)

type fakeClaimService struct {
	submit         func(ctx context.Context, req claim.SubmitClaimRequest) (claim.ClaimResponse, error)
	resolveActions func(ctx context.Context, userID, claimID string) (claim.ActionSet, error)
	approve        func(ctx context.Context, claimID, userID string) (claim.ClaimResponse, error)
	reject         func(ctx context.Context, claimID, userID, reason string) (claim.ClaimResponse, error)
	list           func(ctx context.Context, claimType claim.Type, tab claim.Tab, criteria claim.FilterCriteria, userID string) ([]claim.ClaimResponse, error)
	summarize      func(ctx context.Context, claimType claim.Type, criteria claim.FilterCriteria) ([]claim.SummaryRow, error)
	getPolicy      func(ctx context.Context, claimType claim.Type) (claim.PolicyResponse, error)
}

func (f *fakeClaimService) Submit(ctx context.Context, req claim.SubmitClaimRequest) (claim.ClaimResponse, error) {
	return f.submit(ctx, req)
}

func (f *fakeClaimService) ResolveActions(ctx context.Context, userID string, claimID string) (claim.ActionSet, error) {
	return f.resolveActions(ctx, userID, claimID)
}

func (f *fakeClaimService) Approve(ctx context.Context, claimID string, userID string) (claim.ClaimResponse, error) {
	return f.approve(ctx, claimID, userID)
}

func (f *fakeClaimService) Reject(ctx context.Context, claimID string, userID string, reason string) (claim.ClaimResponse, error) {
	return f.reject(ctx, claimID, userID, reason)
}

func (f *fakeClaimService) List(ctx context.Context, claimType claim.Type, tab claim.Tab, criteria claim.FilterCriteria, userID string) ([]claim.ClaimResponse, error) {
	return f.list(ctx, claimType, tab, criteria, userID)
}

func (f *fakeClaimService) Summarize(ctx context.Context, claimType claim.Type, criteria claim.FilterCriteria) ([]claim.SummaryRow, error) {
	return f.summarize(ctx, claimType, criteria)
}

func (f *fakeClaimService) GetPolicy(ctx context.Context, claimType claim.Type) (claim.PolicyResponse, error) {
	return f.getPolicy(ctx, claimType)
}

type fakeEmployeeService struct {
	list func(ctx context.Context) ([]employee.EmployeeResponse, error)
	get  func(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.list(ctx)
}

func (f *fakeEmployeeService) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.get(ctx, id)
}

func testRouter(t *testing.T, claimSvc claim.ClaimService) (http.Handler, jwt.Service) {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")

	employeeSvc := &fakeEmployeeService{
		list: func(context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{{ID: "emp-1", FullName: "Aina Rahman", Status: "active"}}, nil
		},
		get: func(_ context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		},
	}

	return NewRouter(cfg, jwtService, NewClaimHandler(claimSvc), NewEmployeeHandler(employeeSvc)), jwtService
}

func accessToken(t *testing.T, jwtService jwt.Service, userID string, employeeID string, role user.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(userID, &employeeID, role)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestClaimRoutes_RequireAuthentication(t *testing.T) {
	router, _ := testRouter(t, &fakeClaimService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/claims/financial", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/v1/claims/claim-1/approve", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClaimRoutes_RefreshTokenRejected(t *testing.T) {
	router, jwtService := testRouter(t, &fakeClaimService{})

	refresh, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	rec := doRequest(router, http.MethodGet, "/api/v1/claims/financial", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListClaims_Success(t *testing.T) {
	svc := &fakeClaimService{
		list: func(_ context.Context, claimType claim.Type, tab claim.Tab, criteria claim.FilterCriteria, userID string) ([]claim.ClaimResponse, error) {
			assert.Equal(t, claim.TypeFinancial, claimType)
			assert.Equal(t, claim.TabApproval, tab)
			assert.Equal(t, "Engineering", criteria.Department)
			assert.Equal(t, "user-1", userID)
			return []claim.ClaimResponse{{ID: "claim-1", Status: "pending", AmountLabel: "RM 15.00"}}, nil
		},
	}
	router, jwtService := testRouter(t, svc)
	token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

	rec := doRequest(router, http.MethodGet, "/api/v1/claims/financial?tab=approval&department=Engineering", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                  `json:"success"`
		Data    []claim.ClaimResponse `json:"data"`
		Meta    struct {
			TotalItems int `json:"total_items"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "RM 15.00", body.Data[0].AmountLabel)
	assert.Equal(t, 1, body.Meta.TotalItems)
}

func TestListClaims_MalformedDateFilter(t *testing.T) {
	router, jwtService := testRouter(t, &fakeClaimService{})
	token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

	rec := doRequest(router, http.MethodGet, "/api/v1/claims/financial?date_from=10-03-2026", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListClaims_UnknownType(t *testing.T) {
	router, jwtService := testRouter(t, &fakeClaimService{})
	token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

	// An unrecognized type segment does not match the listing route; it
	// falls through to the per-claim routes, none of which serve a bare GET.
	rec := doRequest(router, http.MethodGet, "/api/v1/claims/travel", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// The listing routes and the per-claim routes live at the same path level,
// so both must resolve on a single router.
func TestClaimRoutes_ListingAndClaimRoutesCoexist(t *testing.T) {
	svc := &fakeClaimService{
		list: func(_ context.Context, _ claim.Type, _ claim.Tab, _ claim.FilterCriteria, _ string) ([]claim.ClaimResponse, error) {
			return []claim.ClaimResponse{}, nil
		},
		resolveActions: func(_ context.Context, _, _ string) (claim.ActionSet, error) {
			return claim.ActionSet{CanApprove: true}, nil
		},
	}
	router, jwtService := testRouter(t, svc)
	token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

	rec := doRequest(router, http.MethodGet, "/api/v1/claims/overtime", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/claims/claim-1/actions", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListClaims_ReportTabRequiresPrivilegedRole(t *testing.T) {
	svc := &fakeClaimService{
		list: func(_ context.Context, _ claim.Type, tab claim.Tab, _ claim.FilterCriteria, _ string) ([]claim.ClaimResponse, error) {
			assert.Equal(t, claim.TabReport, tab)
			return []claim.ClaimResponse{}, nil
		},
	}
	router, jwtService := testRouter(t, svc)

	staffToken := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)
	rec := doRequest(router, http.MethodGet, "/api/v1/claims/financial?tab=report", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	picToken := accessToken(t, jwtService, "user-2", "emp-2", user.RolePIC)
	rec = doRequest(router, http.MethodGet, "/api/v1/claims/financial?tab=report", picToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApproveClaim_Success(t *testing.T) {
	svc := &fakeClaimService{
		approve: func(_ context.Context, claimID, userID string) (claim.ClaimResponse, error) {
			assert.Equal(t, "claim-1", claimID)
			assert.Equal(t, "user-1", userID)
			return claim.ClaimResponse{ID: claimID, Status: "firstLevelApproved"}, nil
		},
	}
	router, jwtService := testRouter(t, svc)
	token := accessToken(t, jwtService, "user-1", "emp-first", user.RoleStaff)

	rec := doRequest(router, http.MethodPost, "/api/v1/claims/claim-1/approve", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "firstLevelApproved")
}

func TestApproveClaim_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthorized action", claim.ErrUnauthorizedAction, http.StatusForbidden},
		{"terminal claim", claim.ErrInvalidTransition, http.StatusConflict},
		{"stale state", claim.ErrStaleState, http.StatusConflict},
		{"missing claim", claim.ErrClaimNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeClaimService{
				approve: func(context.Context, string, string) (claim.ClaimResponse, error) {
					return claim.ClaimResponse{}, tc.err
				},
			}
			router, jwtService := testRouter(t, svc)
			token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

			rec := doRequest(router, http.MethodPost, "/api/v1/claims/claim-1/approve", token, nil)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestRejectClaim_MissingReason(t *testing.T) {
	router, jwtService := testRouter(t, &fakeClaimService{})
	token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

	rec := doRequest(router, http.MethodPost, "/api/v1/claims/claim-1/reject", token, map[string]string{"reason": " "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRejectClaim_Success(t *testing.T) {
	svc := &fakeClaimService{
		reject: func(_ context.Context, claimID, userID, reason string) (claim.ClaimResponse, error) {
			assert.Equal(t, "duplicate submission", reason)
			return claim.ClaimResponse{ID: claimID, Status: "rejected"}, nil
		},
	}
	router, jwtService := testRouter(t, svc)
	token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

	rec := doRequest(router, http.MethodPost, "/api/v1/claims/claim-1/reject", token, map[string]string{"reason": "duplicate submission"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitClaim_EmployeeIDFromToken(t *testing.T) {
	svc := &fakeClaimService{
		submit: func(_ context.Context, req claim.SubmitClaimRequest) (claim.ClaimResponse, error) {
			// The body cannot choose the claim owner.
			assert.Equal(t, "emp-7", req.EmployeeID)
			return claim.ClaimResponse{ID: "claim-new", Status: "pending"}, nil
		},
	}
	router, jwtService := testRouter(t, svc)
	token := accessToken(t, jwtService, "user-7", "emp-7", user.RoleStaff)

	body := map[string]interface{}{
		"claim_type":  "financial",
		"claim_date":  "2026-03-10",
		"particulars": "Parking",
		"amount":      "15.00",
		"employee_id": "emp-spoofed",
	}
	rec := doRequest(router, http.MethodPost, "/api/v1/claims", token, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSummary_RequiresReportsPermission(t *testing.T) {
	svc := &fakeClaimService{
		summarize: func(context.Context, claim.Type, claim.FilterCriteria) ([]claim.SummaryRow, error) {
			return []claim.SummaryRow{{EmployeeID: "emp-1", Name: "Aina Rahman", TotalAmountClaim: "RM 150.00"}}, nil
		},
	}
	router, jwtService := testRouter(t, svc)

	staffToken := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)
	rec := doRequest(router, http.MethodGet, "/api/v1/claims/financial/summary", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := accessToken(t, jwtService, "user-2", "emp-2", user.RoleAdmin)
	rec = doRequest(router, http.MethodGet, "/api/v1/claims/financial/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "RM 150.00")
}

func TestActions_Endpoint(t *testing.T) {
	svc := &fakeClaimService{
		resolveActions: func(_ context.Context, userID, claimID string) (claim.ActionSet, error) {
			return claim.ActionSet{CanApprove: true, CanReject: true}, nil
		},
	}
	router, jwtService := testRouter(t, svc)
	token := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)

	rec := doRequest(router, http.MethodGet, "/api/v1/claims/claim-1/actions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data claim.ActionSet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.CanApprove)
	assert.True(t, body.Data.CanReject)
}

func TestGetPolicy_RequiresPolicyPermission(t *testing.T) {
	svc := &fakeClaimService{
		getPolicy: func(_ context.Context, claimType claim.Type) (claim.PolicyResponse, error) {
			return claim.PolicyResponse{ClaimType: string(claimType), FirstLevelApproverID: "emp-first"}, nil
		},
	}
	router, jwtService := testRouter(t, svc)

	picToken := accessToken(t, jwtService, "user-1", "emp-1", user.RolePIC)
	rec := doRequest(router, http.MethodGet, "/api/v1/approval-policies/overtime", picToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	hrToken := accessToken(t, jwtService, "user-2", "emp-2", user.RoleHRManager)
	rec = doRequest(router, http.MethodGet, "/api/v1/approval-policies/overtime", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emp-first")
}

func TestEmployees_RequiresDirectoryPermission(t *testing.T) {
	router, jwtService := testRouter(t, &fakeClaimService{})

	staffToken := accessToken(t, jwtService, "user-1", "emp-1", user.RoleStaff)
	rec := doRequest(router, http.MethodGet, "/api/v1/employees", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := accessToken(t, jwtService, "user-2", "emp-2", user.RoleAdmin)
	rec = doRequest(router, http.MethodGet, "/api/v1/employees", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Aina Rahman")
}
