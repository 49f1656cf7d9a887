package http

import (
	"encoding/json"
	"net/http"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/payroll"
	"github.com/kerjaflow/attendance-backend-go/internal/handler/http/response"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/jwt"
)

type PayrollHandler interface {
	Lock(w http.ResponseWriter, r *http.Request)
	ListLocks(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	jwtService     jwt.Service
}

func NewPayrollHandler(payrollService payroll.PayrollService, jwtService jwt.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		jwtService:     jwtService,
	}
}

// Lock implements PayrollHandler.
func (h *payrollHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	actor, err := h.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing actor identity")
		return
	}

	var req payroll.LockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.LockPayroll(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period locked", result)
}

// ListLocks implements PayrollHandler.
func (h *payrollHandlerImpl) ListLocks(w http.ResponseWriter, r *http.Request) {
	locks, err := h.payrollService.ListLocks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, locks)
}
