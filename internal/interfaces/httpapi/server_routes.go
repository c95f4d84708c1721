package httpapi

import "net/http"

type routeGuard func(http.Handler) http.Handler

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/announcements", handler.ListAnnouncements)
	mux.HandleFunc("GET /v1/signups/open", handler.ListOpenSignups)
	mux.HandleFunc("POST /v1/signups/contact-check", handler.CheckSignupContact)
	mux.HandleFunc("GET /v1/signups/{settingID}/form", handler.GetSignupForm)
	mux.HandleFunc("POST /v1/signups/{settingID}/quote", handler.QuoteSignup)
	mux.HandleFunc("POST /v1/signups/{settingID}", handler.SubmitSignup)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, guard routeGuard) {
	mux.Handle("GET /v1/admin/me", guard(http.HandlerFunc(handler.GetAdminMe)))

	registerAdminContentRoutes(mux, handler, guard)
	registerAdminLeagueRoutes(mux, handler, guard)
	registerAdminSignupRoutes(mux, handler, guard)
}

func registerAdminContentRoutes(mux *http.ServeMux, handler *Handler, guard routeGuard) {
	mux.Handle("GET /v1/admin/announcements", guard(http.HandlerFunc(handler.ListAnnouncementRows)))
	mux.Handle("POST /v1/admin/announcements/{id}/pages/{page}", guard(http.HandlerFunc(handler.ToggleAnnouncementPage)))
	mux.Handle("POST /v1/admin/announcements/{id}/preview", guard(http.HandlerFunc(handler.PreviewAnnouncement)))
	newEditTabRoutes("announcement", handler.announcementService.EditTab, handler.logger).
		register(mux, "/v1/admin/announcements", guard)

	mux.Handle("GET /v1/admin/events", guard(http.HandlerFunc(handler.ListEventRows)))
	mux.Handle("GET /v1/admin/events/locations", guard(http.HandlerFunc(handler.ListEventLocations)))
	newEditTabRoutes("event", handler.eventService.EditTab, handler.logger).
		register(mux, "/v1/admin/events", guard)

	mux.Handle("GET /v1/admin/locations", guard(http.HandlerFunc(handler.ListLocationRows)))
	newEditTabRoutes("location", handler.locationService.EditTab, handler.logger).
		register(mux, "/v1/admin/locations", guard)
}

func registerAdminLeagueRoutes(mux *http.ServeMux, handler *Handler, guard routeGuard) {
	mux.Handle("GET /v1/admin/leagues", guard(http.HandlerFunc(handler.GetLeagueTree)))
	mux.Handle("POST /v1/admin/leagues/reload", guard(http.HandlerFunc(handler.ReloadLeagueTree)))
	mux.Handle("POST /v1/admin/leagues/{settingID}/divisions", guard(http.HandlerFunc(handler.AddDivision)))
	mux.Handle("PUT /v1/admin/leagues/{settingID}/selected-division", guard(http.HandlerFunc(handler.SelectDivision)))
	newEditTabRoutes("league setting", handler.leagueService.EditTab, handler.logger).
		register(mux, "/v1/admin/league-settings", guard)

	mux.Handle("PATCH /v1/admin/divisions/{id}", guard(http.HandlerFunc(handler.ChangeDivision)))
	mux.Handle("POST /v1/admin/divisions/{id}/save", guard(http.HandlerFunc(handler.SaveDivision)))
	mux.Handle("POST /v1/admin/divisions/{id}/cancel", guard(http.HandlerFunc(handler.CancelDivision)))
	mux.Handle("DELETE /v1/admin/divisions/{id}", guard(http.HandlerFunc(handler.DeleteDivision)))
	mux.Handle("POST /v1/admin/divisions/{divisionID}/flights", guard(http.HandlerFunc(handler.AddFlight)))
	mux.Handle("PUT /v1/admin/divisions/{divisionID}/selected-flight", guard(http.HandlerFunc(handler.SelectFlight)))

	mux.Handle("PATCH /v1/admin/flights/{id}", guard(http.HandlerFunc(handler.ChangeFlight)))
	mux.Handle("POST /v1/admin/flights/{id}/save", guard(http.HandlerFunc(handler.SaveFlight)))
	mux.Handle("POST /v1/admin/flights/{id}/cancel", guard(http.HandlerFunc(handler.CancelFlight)))
	mux.Handle("DELETE /v1/admin/flights/{id}", guard(http.HandlerFunc(handler.DeleteFlight)))
}

func registerAdminSignupRoutes(mux *http.ServeMux, handler *Handler, guard routeGuard) {
	mux.Handle("GET /v1/admin/signups/settings", guard(http.HandlerFunc(handler.ListReviewSettings)))
	mux.Handle("GET /v1/admin/signups/{settingID}", guard(http.HandlerFunc(handler.ListSignups)))
	mux.Handle("POST /v1/admin/signups/{settingID}/reload", guard(http.HandlerFunc(handler.ReloadSignups)))
	mux.Handle("GET /v1/admin/signups/{settingID}/export.csv", guard(http.HandlerFunc(handler.ExportSignups)))
	mux.Handle("POST /v1/admin/signups/{settingID}/{id}/paid", guard(http.HandlerFunc(handler.ToggleSignupPaid)))
	mux.Handle("POST /v1/admin/signups/{settingID}/{id}/expand", guard(http.HandlerFunc(handler.ToggleSignupExpanded)))
	mux.Handle("DELETE /v1/admin/signups/{settingID}/{id}", guard(http.HandlerFunc(handler.DeleteSignup)))
}
