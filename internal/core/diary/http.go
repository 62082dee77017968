// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hearth/internal/platform/middleware"
	requestutil "github.com/taibuivan/hearth/internal/platform/request"
	"github.com/taibuivan/hearth/internal/platform/respond"
	"github.com/taibuivan/hearth/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the authenticated diary router.
//
// # Endpoints
//   - GET  / : Up to 20 entries, newest first.
//   - POST / : Appends one immutable entry.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
		r.Post("/", handler.create)
	})

	return router
}

type createEntryRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Mood    string     `json:"mood"`
	Date    *time.Time `json:"date"`
	Tags    []string   `json:"tags"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entry, err := handler.service.Append(request.Context(), userID, AppendInput{
		Title:   input.Title,
		Content: input.Content,
		Mood:    input.Mood,
		Date:    input.Date,
		Tags:    input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}
