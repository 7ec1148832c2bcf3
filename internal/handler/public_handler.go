package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal/internal/dto"
	"github.com/noah-isme/campus-portal/internal/middleware"
	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
	"github.com/noah-isme/campus-portal/pkg/response"
)

type newsService interface {
	Page(ctx context.Context, month string) (models.NewsPage, error)
	Detail(ctx context.Context, kind string, id int64) (models.DetailView, error)
}

type admissionsService interface {
	Page(ctx context.Context, category string) (models.AdmissionsPage, error)
}

// PublicHandler serves the public news and admissions pages.
type PublicHandler struct {
	news       newsService
	admissions admissionsService
}

// NewPublicHandler constructs the handler.
func NewPublicHandler(news newsService, admissions admissionsService) *PublicHandler {
	return &PublicHandler{news: news, admissions: admissions}
}

// News godoc
// @Summary News & events page
// @Description Month calendar with the announcement and achievement lists. A failed section reports its own error.
// @Tags Public
// @Produce json
// @Param month query string false "YYYY-MM, defaults to the current month"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /public/news [get]
func (h *PublicHandler) News(c *gin.Context) {
	var query dto.NewsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	page, err := h.news.Page(c.Request.Context(), query.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "month", page.Calendar.Cursor)
	response.JSON(c, http.StatusOK, page, middleware.ExtractMeta(c))
}

// NewsDetail godoc
// @Summary Detail view of one public item
// @Tags Public
// @Produce json
// @Param kind path string true "events, announcements or achievements"
// @Param id path int true "Item ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /public/news/{kind}/{id} [get]
func (h *PublicHandler) NewsDetail(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.news.Detail(c.Request.Context(), c.Param("kind"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// Admissions godoc
// @Summary Admissions page
// @Tags Public
// @Produce json
// @Param category query string false "Requirement category, defaults to new-scholar"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /public/admissions [get]
func (h *PublicHandler) Admissions(c *gin.Context) {
	page, err := h.admissions.Page(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "source", page.Source)
	response.JSON(c, http.StatusOK, page, middleware.ExtractMeta(c))
}
