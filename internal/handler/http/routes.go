package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Post("/user/create", h.createUser)
	router.Post("/user/auth", h.authUser)
	router.Get("/user/{username}", h.getUser)
	router.Get("/user/{username}/handles", h.getUserHandles)
	router.Post("/user/handle/create", h.createHandle)
	router.Post("/user/handle/delete", h.deleteHandle)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
