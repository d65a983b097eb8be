package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainevents "beacon_backend/internal/events"
	"beacon_backend/internal/search/history"
	"beacon_backend/internal/search/service"
	"beacon_backend/internal/search/suggest"
	"beacon_backend/internal/search/transport"
	"beacon_backend/platform/events"
	"beacon_backend/platform/httpkit"
	"beacon_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// allowedSearchParams guards against typoed or unsupported filter keys;
// an unknown query parameter is a client error, not something to ignore.
var allowedSearchParams = map[string]bool{
	"q": true, "types": true, "owner_id": true,
	"date_from": true, "date_to": true, "cursor": true, "limit": true,
}

type Handler struct {
	svc     *service.Service
	suggest *suggest.Engine
	history *history.Store
	bus     events.Bus
	val     *validator.Validator
}

func New(svc *service.Service, sug *suggest.Engine, hist *history.Store, bus events.Bus, val *validator.Validator) *Handler {
	return &Handler{svc: svc, suggest: sug, history: hist, bus: bus, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Search)
	rg.GET("/suggest", h.Suggest)
	rg.GET("/history/recent", h.ListRecent)
	rg.POST("/history/recent", h.RecordRecent)
	rg.DELETE("/history/recent", h.ClearRecent)
	rg.GET("/history/saved", h.ListSaved)
	rg.POST("/history/saved", h.SaveSearch)
	rg.DELETE("/history/saved/:id", h.DeleteSaved)
}

// scope pulls the authenticated tenant and user out of the request.
func scope(c *gin.Context) (tenantID, userID uuid.UUID, ok bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, uuid.Nil, false
	}
	tenantPtr := identity.TenantID()
	if tenantPtr == nil {
		httpkit.Error(c, http.StatusForbidden, "organization required", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return *tenantPtr, identity.UserID(), true
}

func (h *Handler) Search(c *gin.Context) {
	for key := range c.Request.URL.Query() {
		if !allowedSearchParams[key] {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "unknown parameter: "+key)
			return
		}
	}

	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	filters, err := req.Filters()
	if httpkit.HandleError(c, err) {
		return
	}

	tenantID, _, ok := scope(c)
	if !ok {
		return
	}

	page, err := h.svc.Search(c.Request.Context(), tenantID, service.Input{
		Query:   req.Query,
		Filters: filters,
		Cursor:  req.Cursor,
		Limit:   req.Limit,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromPage(page, time.Now()))
}

func (h *Handler) Suggest(c *gin.Context) {
	var req transport.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	suggestions, err := h.suggest.Suggest(c.Request.Context(), tenantID, userID, req.Query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SuggestResponse{Suggestions: suggestions})
}

func (h *Handler) ListRecent(c *gin.Context) {
	var req transport.RecentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	items, err := h.history.ListRecent(c.Request.Context(), tenantID, userID, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.RecentResponse{Items: items})
}

// RecordRecent registers a committed search. The write itself happens in the
// history module's event subscriber; publishing keeps commit semantics in one
// place whether the commit came from submit or from result selection.
func (h *Handler) RecordRecent(c *gin.Context) {
	var req transport.RecordRecentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	err := h.bus.PublishSync(c.Request.Context(), domainevents.SearchCommitted{
		BaseEvent: domainevents.NewBaseEvent(),
		UserID:    userID,
		TenantID:  tenantID,
		Query:     req.Query,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) ClearRecent(c *gin.Context) {
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	if err := h.history.ClearRecent(c.Request.Context(), tenantID, userID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) ListSaved(c *gin.Context) {
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	items, err := h.history.ListSaved(c.Request.Context(), tenantID, userID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SavedResponse{Items: items})
}

func (h *Handler) SaveSearch(c *gin.Context) {
	var req transport.SaveSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	saved, err := h.history.SaveSearch(c.Request.Context(), tenantID, userID, req.Name, req.Query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, saved)
}

func (h *Handler) DeleteSaved(c *gin.Context) {
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	if err := h.history.DeleteSaved(c.Request.Context(), tenantID, userID, c.Param("id")); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}
