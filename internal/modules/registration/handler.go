package registration

import (
	"errors"
	"net/http"

	"ecotrack/internal/modules/company"
	"ecotrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages the HTTP surface of onboarding
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
	}
}

// Register runs the whole onboarding saga for one request. Every failure
// comes back as HTTP 400 with a machine-readable code; the dashboard only
// shows the message.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, phone, password and role are required; password must be at least 6 characters")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		code, message := classify(err)
		response.Error(c, http.StatusBadRequest, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Registration successful",
		"user": RegisteredUser{
			ID:    result.User.ID,
			Name:  result.User.Name,
			Phone: result.User.Phone,
			Role:  string(result.User.Role),
		},
		"companyCode": result.CompanyCode,
		"companyName": result.CompanyName,
	})
}

func classify(err error) (code string, message string) {
	switch {
	case errors.Is(err, ErrInvalidRole):
		return "VALIDATION_ERROR", "Role must be one of client, driver, manager, company_admin"
	case errors.Is(err, ErrPasswordTooShort):
		return "VALIDATION_ERROR", "Password must be at least 6 characters"
	case errors.Is(err, ErrMasterCodeRequired):
		return "VALIDATION_ERROR", "A master code is required to register a company"
	case errors.Is(err, ErrPhoneAlreadyRegistered):
		return "PHONE_EXISTS", "This phone number is already registered"
	case errors.Is(err, company.ErrNotFound):
		return "COMPANY_NOT_FOUND", "Company with this code was not found"
	case errors.Is(err, company.ErrInvalidMasterCode):
		return "INVALID_MASTER_CODE", "Master code is invalid or already used"
	case errors.Is(err, company.ErrNoRegionAvailable):
		return "NO_REGION_AVAILABLE", "Company has no region configured, contact support"
	case errors.Is(err, ErrIdentityProvisioning):
		return "REGISTRATION_FAILED", "Failed to create account, please try again"
	default:
		return "REGISTRATION_FAILED", "Failed to create user profile"
	}
}
