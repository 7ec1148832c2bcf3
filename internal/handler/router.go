package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal/internal/middleware"
)

// Routes bundles the handlers and guards mounted under the API prefix.
type Routes struct {
	Admin        *AdminHandler
	Public       *PublicHandler
	ConsoleAuth  gin.HandlerFunc
	RequireLogin gin.HandlerFunc
}

// Register mounts the console and public routes on group.
func (r Routes) Register(group gin.IRouter) {
	admin := group.Group("/admin")
	admin.GET("/session", r.Admin.Session)
	admin.POST("/login", r.Admin.Login)

	// Logout only needs a console token so an expired session can still be closed.
	admin.POST("/logout", append(guards(r.ConsoleAuth), r.Admin.Logout)...)

	secured := admin.Group("", guards(r.ConsoleAuth, r.RequireLogin)...)
	secured.GET("/state", r.Admin.State)
	secured.POST("/reload", r.Admin.Reload)
	secured.PUT("/tab", r.Admin.SelectTab)
	secured.POST("/form", r.Admin.OpenCreate)
	secured.POST("/form/edit/:id", r.Admin.OpenEdit)
	secured.PATCH("/form", r.Admin.UpdateForm)
	secured.DELETE("/form", r.Admin.CancelForm)
	secured.POST("/form/submit", r.Admin.Submit)
	secured.GET("/resources/:type", r.Admin.Resources)
	secured.GET("/resources/:type/export", r.Admin.Export)
	secured.DELETE("/resources/:type/:id", r.Admin.Delete)
	secured.GET("/alerts", r.Admin.Alerts)
	secured.DELETE("/alerts", r.Admin.ClearAlerts)
	secured.DELETE("/alerts/:id", r.Admin.DismissAlert)
	secured.GET("/activity", r.Admin.Activity)

	public := group.Group("/public", middleware.WithResponseMeta())
	public.GET("/news", r.Public.News)
	public.GET("/news/:kind/:id", r.Public.NewsDetail)
	public.GET("/admissions", r.Public.Admissions)
}

func guards(candidates ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(candidates))
	for _, guard := range candidates {
		if guard != nil {
			out = append(out, guard)
		}
	}
	return out
}
