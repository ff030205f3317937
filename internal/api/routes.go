package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pawscout-api/internal/api/middleware"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
)

// Handlers groups the handlers mounted under /api.
type Handlers struct {
	Auth      *AuthHandler
	Animals   *AnimalHandler
	Adoptions *AdoptionHandler
	Volunteer *VolunteerHandler
	Inbox     *InboxHandler
	Settings  *SettingsHandler
	Media     *MediaHandler
	Admin     *AdminHandler
}

// RegisterRoutes mounts every API route on r. Routes that act on an account
// declare the protected effect so the guard can refuse self-modification.
func RegisterRoutes(r chi.Router, h Handlers, authMW *middleware.AuthMiddleware) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(authMW.Authenticated).Get("/me", h.Auth.Me)
	})

	r.Get("/animals", h.Animals.ListAnimals)
	r.Get("/animals/{id}", h.Animals.GetAnimal)

	// POST takes an animal ID, GET an application ID.
	r.Post("/adopt/{id}", h.Adoptions.Submit)
	r.Get("/adopt/{id}", h.Adoptions.Get)

	r.Post("/volunteers", h.Volunteer.Register)
	r.Post("/contact", h.Inbox.SendMessage)
	r.Post("/subs", h.Inbox.Subscribe)
	r.Get("/settings", h.Settings.Get)

	r.Route("/admin", func(r chi.Router) {
		// Self-protected account routes resolve the caller once, with the
		// target taken from the path.
		r.With(authMW.Require(auth.TierAdministrator, auth.EffectDemote)).
			Patch("/users/{id}/demote", h.Admin.DemoteUser)
		r.With(authMW.Require(auth.TierAdministrator, auth.EffectDelete)).
			Delete("/users/{id}", h.Admin.DeleteUser)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Admin)

			r.Get("/dashboard", h.Admin.Dashboard)
			r.Get("/users", h.Admin.ListUsers)
			r.Get("/users/{id}", h.Admin.GetUser)
			r.Patch("/users/{id}/promote", h.Admin.PromoteUser)

			r.Post("/animals", h.Animals.CreateAnimal)
			r.Put("/animals/{id}", h.Animals.UpdateAnimal)
			r.Patch("/animals/{id}/status", h.Animals.UpdateAnimalStatus)
			r.Delete("/animals/{id}", h.Animals.DeleteAnimal)
			r.Post("/animals/{id}/media", h.Animals.AttachMedia)
			// Public IDs contain slashes, so the rest of the path is the ID.
			r.Delete("/animals/{id}/media/*", h.Animals.RemoveMedia)

			r.Get("/adoptions", h.Adoptions.List)
			r.Delete("/adoptions/{id}", h.Adoptions.Delete)

			r.Get("/volunteers", h.Volunteer.List)
			r.Get("/volunteers/{id}", h.Volunteer.Get)
			r.Put("/volunteers/{id}", h.Volunteer.Update)
			r.Patch("/volunteers/{id}/status", h.Volunteer.UpdateStatus)
			r.Delete("/volunteers/{id}", h.Volunteer.Delete)

			r.Get("/contact", h.Inbox.ListMessages)
			r.Delete("/contact/{id}", h.Inbox.DeleteMessage)
			r.Get("/subs", h.Inbox.ListSubscriptions)
			r.Delete("/subs/{id}", h.Inbox.DeleteSubscription)

			r.Put("/settings", h.Settings.Update)
			r.Post("/settings/logo", h.Settings.ReplaceLogo)

			r.Post("/media/upload", h.Media.Upload)
			r.Post("/media/upload-multiple", h.Media.UploadMultiple)
			r.Delete("/media", h.Media.Delete)
		})
	})
}

// NewRouter returns a router serving only the API routes. The server mounts it
// under /api.
func NewRouter(h Handlers, authMW *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, h, authMW)
	return r
}
