package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/utamahr/claims-backend-go/internal/domain/claim"
	"github.com/utamahr/claims-backend-go/internal/domain/user"
	"github.com/utamahr/claims-backend-go/internal/handler/http/response"
	"github.com/utamahr/claims-backend-go/internal/pkg/validator"
)

type ClaimHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Actions(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetPolicy(w http.ResponseWriter, r *http.Request)
}

type ClaimHandlerImpl struct {
	claimService claim.ClaimService
}

func NewClaimHandler(claimService claim.ClaimService) ClaimHandler {
	return &ClaimHandlerImpl{claimService: claimService}
}

// Submit implements ClaimHandler.
func (h *ClaimHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req claim.SubmitClaimRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Get employee_id from JWT claims
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims", "error", err)
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		slog.Error("employee_id not found in JWT claims")
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	// Set employee_id from JWT (override any value from request for security)
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.claimService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Claim submitted successfully", created)
}

// List implements ClaimHandler.
func (h *ClaimHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claimType, err := claim.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	tab, err := claim.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		response.BadRequest(w, "tab must be approval, report or summary", nil)
		return
	}

	criteria, err := parseFilterCriteria(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	// The report tab exposes every employee's claims, so it is
	// reserved for privileged roles.
	if tab == claim.TabReport {
		role, ok := roleFromContext(r)
		if !ok || !user.HasPrivilegedAccess(role) {
			response.Forbidden(w, "Report listings require privileged access")
			return
		}
	}

	claims, err := h.claimService.List(r.Context(), claimType, tab, criteria, userID)
	if err != nil {
		slog.Error("List service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, claims, &response.Meta{TotalItems: len(claims)})
}

// Summary implements ClaimHandler.
func (h *ClaimHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	claimType, err := claim.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	criteria, err := parseFilterCriteria(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.claimService.Summarize(r.Context(), claimType, criteria)
	if err != nil {
		slog.Error("Summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, rows, &response.Meta{TotalItems: len(rows)})
}

// Actions implements ClaimHandler.
func (h *ClaimHandlerImpl) Actions(w http.ResponseWriter, r *http.Request) {
	claimID := chi.URLParam(r, "id")
	if claimID == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	actions, err := h.claimService.ResolveActions(r.Context(), userID, claimID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, actions)
}

// Approve implements ClaimHandler.
func (h *ClaimHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	claimID := chi.URLParam(r, "id")
	if claimID == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	updated, err := h.claimService.Approve(r.Context(), claimID, userID)
	if err != nil {
		slog.Error("Approve service error", "error", err, "claim_id", claimID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim approved successfully", updated)
}

// Reject implements ClaimHandler.
func (h *ClaimHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	claimID := chi.URLParam(r, "id")
	if claimID == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	var req claim.RejectClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	updated, err := h.claimService.Reject(r.Context(), claimID, userID, req.Reason)
	if err != nil {
		slog.Error("Reject service error", "error", err, "claim_id", claimID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim rejected successfully", updated)
}

// GetPolicy implements ClaimHandler.
func (h *ClaimHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	claimType, err := claim.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	policy, err := h.claimService.GetPolicy(r.Context(), claimType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy)
}

// userIDFromContext pulls the authenticated user id out of the verified
// token.
func userIDFromContext(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func roleFromContext(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", false
	}
	return user.Role(role), true
}

// parseFilterCriteria builds filter criteria from list query parameters.
// Malformed dates are rejected here rather than silently ignored.
func parseFilterCriteria(r *http.Request) (claim.FilterCriteria, error) {
	q := r.URL.Query()

	criteria := claim.FilterCriteria{
		Department: q.Get("department"),
		EmployeeID: q.Get("employee_id"),
		Category:   q.Get("category"),
		Search:     q.Get("search"),
	}

	var errs validator.ValidationErrors

	if raw := q.Get("date_from"); raw != "" {
		if t, ok := validator.IsValidDate(raw); ok {
			criteria.DateFrom = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}

	if raw := q.Get("date_to"); raw != "" {
		if t, ok := validator.IsValidDate(raw); ok {
			criteria.DateTo = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return claim.FilterCriteria{}, errs
	}
	return criteria, nil
}
