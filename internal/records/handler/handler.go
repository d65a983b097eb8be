package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"beacon_backend/internal/records/repository"
	"beacon_backend/internal/records/service"
	"beacon_backend/internal/records/transport"
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
	rg.POST("/emails", h.CreateEmail)
	rg.GET("/emails", h.ListEmails)
	rg.POST("/meetings", h.CreateMeeting)
	rg.GET("/meetings", h.ListMeetings)
	rg.POST("/documents", h.CreateDocument)
	rg.GET("/documents", h.ListDocuments)
	rg.POST("/playbooks", h.CreatePlaybook)
	rg.GET("/playbooks", h.ListPlaybooks)
	rg.POST("/tasks", h.CreateTask)
	rg.GET("/tasks", h.ListTasks)
	rg.POST("/notes", h.CreateNote)
	rg.GET("/notes", h.ListNotes)
	rg.POST("/activities", h.CreateActivity)
	rg.GET("/activities", h.ListActivities)
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

// bindList parses the shared customer_id/limit query for record listings.
func (h *Handler) bindList(c *gin.Context) (transport.ListRequest, bool) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

// requiredCustomer resolves customer_id for record types that always belong
// to one customer.
func requiredCustomer(c *gin.Context, req transport.ListRequest) (uuid.UUID, bool) {
	if req.CustomerID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "customer_id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.CustomerID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "customer_id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalCustomer resolves customer_id for record types that may be
// tenant-wide (documents, tasks).
func optionalCustomer(c *gin.Context, req transport.ListRequest) (*uuid.UUID, bool) {
	if req.CustomerID == "" {
		return nil, true
	}
	id, err := uuid.Parse(req.CustomerID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "customer_id must be a UUID")
		return nil, false
	}
	return &id, true
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (h *Handler) CreateEmail(c *gin.Context) {
	var req transport.CreateEmailRequest
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

	created, err := h.svc.CreateEmail(c.Request.Context(), tenantID, repository.Email{
		CustomerID:  req.CustomerID,
		Subject:     req.Subject,
		Body:        req.Body,
		FromAddress: req.FromAddress,
		OwnerID:     req.OwnerID,
		SentAt:      timeOrZero(req.SentAt),
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.FromEmail(created))
}

func (h *Handler) ListEmails(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	customerID, ok := requiredCustomer(c, req)
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	emails, err := h.svc.ListEmails(c.Request.Context(), tenantID, customerID, req.Limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromEmails(emails))
}

func (h *Handler) CreateMeeting(c *gin.Context) {
	var req transport.CreateMeetingRequest
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

	created, err := h.svc.CreateMeeting(c.Request.Context(), tenantID, repository.Meeting{
		CustomerID:    req.CustomerID,
		Title:         req.Title,
		Notes:         req.Notes,
		AttendeeCount: req.AttendeeCount,
		OwnerID:       req.OwnerID,
		ScheduledAt:   timeOrZero(req.ScheduledAt),
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.FromMeeting(created))
}

func (h *Handler) ListMeetings(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	customerID, ok := requiredCustomer(c, req)
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	meetings, err := h.svc.ListMeetings(c.Request.Context(), tenantID, customerID, req.Limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromMeetings(meetings))
}

func (h *Handler) CreateDocument(c *gin.Context) {
	var req transport.CreateDocumentRequest
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

	created, err := h.svc.CreateDocument(c.Request.Context(), tenantID, repository.Document{
		CustomerID: req.CustomerID,
		Title:      req.Title,
		Content:    req.Content,
		OwnerID:    req.OwnerID,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.FromDocument(created))
}

func (h *Handler) ListDocuments(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	customerID, ok := optionalCustomer(c, req)
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	docs, err := h.svc.ListDocuments(c.Request.Context(), tenantID, customerID, req.Limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromDocuments(docs))
}

func (h *Handler) CreatePlaybook(c *gin.Context) {
	var req transport.CreatePlaybookRequest
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

	created, err := h.svc.CreatePlaybook(c.Request.Context(), tenantID, repository.Playbook{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.FromPlaybook(created))
}

func (h *Handler) ListPlaybooks(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	playbooks, err := h.svc.ListPlaybooks(c.Request.Context(), tenantID, req.Limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromPlaybooks(playbooks))
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req transport.CreateTaskRequest
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

	created, err := h.svc.CreateTask(c.Request.Context(), tenantID, repository.Task{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		OwnerID:     req.OwnerID,
		DueAt:       req.DueAt,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.FromTask(created))
}

func (h *Handler) ListTasks(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	customerID, ok := optionalCustomer(c, req)
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	tasks, err := h.svc.ListTasks(c.Request.Context(), tenantID, customerID, req.Limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromTasks(tasks))
}

func (h *Handler) CreateNote(c *gin.Context) {
	var req transport.CreateNoteRequest
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

	created, err := h.svc.CreateNote(c.Request.Context(), tenantID, repository.Note{
		CustomerID: req.CustomerID,
		Title:      req.Title,
		Body:       req.Body,
		OwnerID:    req.OwnerID,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.FromNote(created))
}

func (h *Handler) ListNotes(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	customerID, ok := requiredCustomer(c, req)
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	notes, err := h.svc.ListNotes(c.Request.Context(), tenantID, customerID, req.Limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromNotes(notes))
}

func (h *Handler) CreateActivity(c *gin.Context) {
	var req transport.CreateActivityRequest
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

	created, err := h.svc.CreateActivity(c.Request.Context(), tenantID, repository.Activity{
		CustomerID: req.CustomerID,
		Kind:       req.Kind,
		Summary:    req.Summary,
		OwnerID:    req.OwnerID,
		OccurredAt: timeOrZero(req.OccurredAt),
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.FromActivity(created))
}

func (h *Handler) ListActivities(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	customerID, ok := requiredCustomer(c, req)
	if !ok {
		return
	}
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	activities, err := h.svc.ListActivities(c.Request.Context(), tenantID, customerID, req.Limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromActivities(activities))
}
