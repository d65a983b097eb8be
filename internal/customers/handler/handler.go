package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"beacon_backend/internal/customers/repository"
	"beacon_backend/internal/customers/service"
	"beacon_backend/internal/customers/transport"
	"beacon_backend/platform/httpkit"
	"beacon_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/stakeholders", h.ListStakeholders)
	rg.POST("/:id/stakeholders", h.AddStakeholder)
	rg.DELETE("/:id/stakeholders/:stakeholderID", h.RemoveStakeholder)
}

func tenantScope(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, false
	}
	tenantPtr := identity.TenantID()
	if tenantPtr == nil {
		httpkit.Error(c, http.StatusForbidden, "organization required", nil)
		return uuid.Nil, false
	}
	return *tenantPtr, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	params := repository.ListCustomersParams{
		HealthStatus: req.HealthStatus,
		Limit:        req.Limit,
		Offset:       req.Offset,
	}
	if req.OwnerID != "" {
		owner, err := uuid.Parse(req.OwnerID)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "owner_id must be a UUID")
			return
		}
		params.OwnerID = &owner
	}

	customers, total, err := h.svc.List(c.Request.Context(), tenantID, params)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.CustomerResponse, len(customers))
	for i, customer := range customers {
		items[i] = transport.FromCustomer(customer)
	}
	httpkit.OK(c, transport.CustomerListResponse{Items: items, Total: total})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	customer, err := h.svc.Get(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCustomer(customer))
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), tenantID, repository.CreateCustomerParams{
		Name:         req.Name,
		Domain:       req.Domain,
		Description:  req.Description,
		HealthStatus: req.HealthStatus,
		MRRCents:     req.MRRCents,
		OwnerID:      req.OwnerID,
		RenewalDate:  req.RenewalDate,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromCustomer(customer))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), tenantID, repository.UpdateCustomerParams{
		ID:           id,
		Name:         req.Name,
		Domain:       req.Domain,
		Description:  req.Description,
		HealthStatus: req.HealthStatus,
		MRRCents:     req.MRRCents,
		OwnerID:      req.OwnerID,
		RenewalDate:  req.RenewalDate,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCustomer(customer))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), tenantID, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) ListStakeholders(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	stakeholders, err := h.svc.ListStakeholders(c.Request.Context(), tenantID, customerID)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.StakeholderResponse, len(stakeholders))
	for i, s := range stakeholders {
		items[i] = transport.FromStakeholder(s)
	}
	httpkit.OK(c, transport.StakeholderListResponse{Items: items})
}

func (h *Handler) AddStakeholder(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.CreateStakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	stakeholder, err := h.svc.AddStakeholder(c.Request.Context(), tenantID, repository.CreateStakeholderParams{
		CustomerID: customerID,
		Name:       req.Name,
		Email:      req.Email,
		Title:      req.Title,
		OwnerID:    req.OwnerID,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromStakeholder(stakeholder))
}

func (h *Handler) RemoveStakeholder(c *gin.Context) {
	id, ok := pathID(c, "stakeholderID")
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveStakeholder(c.Request.Context(), tenantID, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}
