package routes

import (
	"github.com/julienschmidt/httprouter"

	"worklane/applications"
	"worklane/auth"
	"worklane/jobs"
	"worklane/middleware"
	"worklane/notifications"
	"worklane/projects"
	"worklane/proposals"
	"worklane/ratelim"
	"worklane/users"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.GET("/api/auth/me", mw.Authenticate(h.Me))
}

func AddUserRoutes(router *httprouter.Router, h *users.Handler, mw *middleware.Auth) {
	router.GET("/api/users/:id", h.GetUser)
	router.PUT("/api/users/:id", mw.Authenticate(h.UpdateUser))
}

func AddJobRoutes(router *httprouter.Router, h *jobs.Handler, mw *middleware.Auth) {
	router.GET("/api/jobs", h.ListJobs)
	router.GET("/api/jobs/:id", h.GetJob)
	router.POST("/api/jobs", mw.Authenticate(h.CreateJob))
	router.PUT("/api/jobs/:id", mw.Authenticate(h.UpdateJob))
	router.DELETE("/api/jobs/:id", mw.Authenticate(h.DeleteJob))
}

func AddProjectRoutes(router *httprouter.Router, h *projects.Handler, mw *middleware.Auth) {
	router.GET("/api/projects", h.ListProjects)
	router.GET("/api/projects/:id", h.GetProject)
	router.POST("/api/projects", mw.Authenticate(h.CreateProject))
	router.PUT("/api/projects/:id", mw.Authenticate(h.UpdateProject))
	router.DELETE("/api/projects/:id", mw.Authenticate(h.DeleteProject))
}

func AddApplicationRoutes(router *httprouter.Router, h *applications.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/applications", rl.Limit(mw.Authenticate(h.Submit)))
	router.GET("/api/applications/my", mw.Authenticate(h.Mine))
	router.GET("/api/applications/job/:id", mw.Authenticate(h.ForJob))
}

func AddProposalRoutes(router *httprouter.Router, h *proposals.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/proposals", rl.Limit(mw.Authenticate(h.Submit)))
	router.GET("/api/proposals/my", mw.Authenticate(h.Mine))
	router.GET("/api/proposals/project/:id", mw.Authenticate(h.ForProject))
}

func AddNotificationRoutes(router *httprouter.Router, h *notifications.Handler, hub *notifications.Hub, mw *middleware.Auth) {
	router.GET("/api/notifications", mw.Authenticate(h.List))
	router.PUT("/api/notifications/:id/read", mw.Authenticate(h.MarkRead))
	router.GET("/ws/notifications", mw.Authenticate(notifications.StreamHandler(hub)))
}
