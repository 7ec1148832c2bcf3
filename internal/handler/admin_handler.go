package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal/internal/dto"
	"github.com/noah-isme/campus-portal/internal/models"
	"github.com/noah-isme/campus-portal/internal/service"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
	"github.com/noah-isme/campus-portal/pkg/response"
)

type adminConsole interface {
	Init(ctx context.Context) bool
	Login(ctx context.Context, req models.LoginRequest) (*models.AdminUser, error)
	Logout(ctx context.Context)
	LoadAllData(ctx context.Context) error
	SelectTab(tab string) error
	OpenCreate() error
	OpenEdit(id int64) error
	UpdateForm(fields map[string]interface{}) error
	CancelForm()
	Submit(ctx context.Context) error
	Delete(ctx context.Context, t models.ResourceType, id int64, confirmed bool) error
	Table(t models.ResourceType) (dto.TableView, error)
	CurrentUser() *models.AdminUser
	Snapshot() dto.AdminState
	Alerts() *service.AlertQueue
}

type tokenIssuer interface {
	Issue(user *models.AdminUser) (string, time.Time, error)
}

type activityLister interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, error)
}

type tableExporter interface {
	Render(view dto.TableView, format string) (*service.ExportFile, error)
}

// AdminHandler exposes the console controller over HTTP. Every mutating endpoint answers
// with the refreshed console state so the front end can re-render in one round trip.
type AdminHandler struct {
	console  adminConsole
	tokens   tokenIssuer
	activity activityLister
	exporter tableExporter
}

// NewAdminHandler constructs the handler. activity may be nil when the activity log is disabled.
func NewAdminHandler(console adminConsole, tokens tokenIssuer, activity activityLister, exporter tableExporter) *AdminHandler {
	return &AdminHandler{console: console, tokens: tokens, activity: activity, exporter: exporter}
}

// Session godoc
// @Summary Probe the content API session
// @Description Restores the console session when the content API still recognises it. No token is issued; operators obtain one through login.
// @Tags Console
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/session [get]
func (h *AdminHandler) Session(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.SessionResponse{Authenticated: h.console.Init(c.Request.Context())})
}

// Login godoc
// @Summary Operator login
// @Description Forwards credentials to the content API, loads every collection and issues a console token.
// @Tags Console
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	user, err := h.console.Login(c.Request.Context(), req)
	if err != nil {
		response.ErrorWithData(c, err, h.console.Snapshot())
		return
	}
	token, expires, err := h.tokens.Issue(user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expires.Unix(),
		User:      user,
		State:     h.console.Snapshot(),
	})
}

// Logout godoc
// @Summary Operator logout
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	h.console.Logout(c.Request.Context())
	response.JSON(c, http.StatusOK, h.console.Snapshot())
}

// State godoc
// @Summary Console state
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/state [get]
func (h *AdminHandler) State(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.console.Snapshot())
}

// Reload godoc
// @Summary Reload every collection
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/reload [post]
func (h *AdminHandler) Reload(c *gin.Context) {
	h.respond(c, h.console.LoadAllData(c.Request.Context()))
}

// SelectTab godoc
// @Summary Switch the active tab
// @Tags Console
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SelectTabRequest true "Tab"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/tab [put]
func (h *AdminHandler) SelectTab(c *gin.Context) {
	var req dto.SelectTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "tab is required"))
		return
	}
	h.respond(c, h.console.SelectTab(req.Tab))
}

// OpenCreate godoc
// @Summary Open an empty form on the active tab
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/form [post]
func (h *AdminHandler) OpenCreate(c *gin.Context) {
	h.respond(c, h.console.OpenCreate())
}

// OpenEdit godoc
// @Summary Open the form pre-filled with a record of the active tab
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/form/edit/{id} [post]
func (h *AdminHandler) OpenEdit(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, h.console.OpenEdit(id))
}

// UpdateForm godoc
// @Summary Merge field values into the open form
// @Tags Console
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.FormFieldsRequest true "Fields"
// @Success 200 {object} response.Envelope
// @Router /admin/form [patch]
func (h *AdminHandler) UpdateForm(c *gin.Context) {
	var req dto.FormFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "fields are required"))
		return
	}
	h.respond(c, h.console.UpdateForm(req.Fields))
}

// CancelForm godoc
// @Summary Close the form without saving
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/form [delete]
func (h *AdminHandler) CancelForm(c *gin.Context) {
	h.console.CancelForm()
	response.JSON(c, http.StatusOK, h.console.Snapshot())
}

// Submit godoc
// @Summary Save the open form
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/form/submit [post]
func (h *AdminHandler) Submit(c *gin.Context) {
	h.respond(c, h.console.Submit(c.Request.Context()))
}

// Delete godoc
// @Summary Delete a record
// @Description Without confirm=true nothing is sent and 428 carries the confirmation prompt.
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Param type path string true "Resource type"
// @Param id path int true "Record ID"
// @Param confirm query bool false "Operator confirmed"
// @Success 200 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /admin/resources/{type}/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	h.respond(c, h.console.Delete(c.Request.Context(), models.ResourceType(c.Param("type")), id, confirmed))
}

// Resources godoc
// @Summary Render the cached records of one type
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Param type path string true "Resource type"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/resources/{type} [get]
func (h *AdminHandler) Resources(c *gin.Context) {
	view, err := h.console.Table(models.ResourceType(c.Param("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, map[string]interface{}{"total": len(view.Rows)})
}

// Export godoc
// @Summary Download the cached records of one type
// @Tags Console
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param type path string true "Resource type"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/resources/{type}/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	view, err := h.console.Table(models.ResourceType(c.Param("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Render(view, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}

// Alerts godoc
// @Summary Live operator alerts
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/alerts [get]
func (h *AdminHandler) Alerts(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.console.Alerts().List())
}

// DismissAlert godoc
// @Summary Dismiss one alert
// @Tags Console
// @Security BearerAuth
// @Param id path int true "Alert ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/alerts/{id} [delete]
func (h *AdminHandler) DismissAlert(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid alert id"))
		return
	}
	if !h.console.Alerts().Dismiss(id) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "alert not found"))
		return
	}
	response.NoContent(c)
}

// ClearAlerts godoc
// @Summary Dismiss every alert
// @Tags Console
// @Security BearerAuth
// @Success 204
// @Router /admin/alerts [delete]
func (h *AdminHandler) ClearAlerts(c *gin.Context) {
	h.console.Alerts().Clear()
	response.NoContent(c)
}

// Activity godoc
// @Summary Recent console activity
// @Tags Console
// @Produce json
// @Security BearerAuth
// @Param resource query string false "Resource type"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /admin/activity [get]
func (h *AdminHandler) Activity(c *gin.Context) {
	var query dto.ActivityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activity query"))
		return
	}
	if h.activity == nil {
		response.JSON(c, http.StatusOK, []models.ActivityLog{}, map[string]interface{}{"enabled": false})
		return
	}
	entries, err := h.activity.List(c.Request.Context(), models.ActivityFilter{
		Resource: strings.TrimSpace(query.Resource),
		Limit:    query.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"enabled": true, "total": len(entries)})
}

// respond writes the console state, attaching err when the operation failed.
func (h *AdminHandler) respond(c *gin.Context, err error) {
	state := h.console.Snapshot()
	if err != nil {
		response.ErrorWithData(c, err, state)
		return
	}
	response.JSON(c, http.StatusOK, state)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}
