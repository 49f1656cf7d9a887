package http

import (
	"encoding/json"
	"net/http"

	"github.com/kerjaflow/attendance-backend-go/internal/handler/http/response"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/jwt"
	"github.com/kerjaflow/attendance-backend-go/internal/service/enrollment"
)

type EnrollmentHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
}

type enrollmentHandlerImpl struct {
	enrollmentService enrollment.Service
	jwtService        jwt.Service
}

func NewEnrollmentHandler(enrollmentService enrollment.Service, jwtService jwt.Service) EnrollmentHandler {
	return &enrollmentHandlerImpl{
		enrollmentService: enrollmentService,
		jwtService:        jwtService,
	}
}

// Enroll implements EnrollmentHandler.
func (h *enrollmentHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	actor, err := h.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing actor identity")
		return
	}

	var req enrollment.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.enrollmentService.Enroll(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Descriptor enrolled", result)
}
