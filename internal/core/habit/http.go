// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"net/http"

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

// Routes returns the authenticated habits router.
//
// # Endpoints
//   - GET  /?date= : Entry for the day, or the zero-valued default.
//   - POST /       : Atomic create-or-merge for the day. Returns 200 for
//     both create and merge; the caller cannot tell which happened.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.get)
		r.Post("/", handler.upsert)
	})

	return router
}

type upsertRequest struct {
	Date     string   `json:"date"`
	Water    *int     `json:"water"`
	Meals    *int     `json:"meals"`
	Exercise *bool    `json:"exercise"`
	Sleep    *float64 `json:"sleep"`
	Mood     *string  `json:"mood"`
	Notes    *string  `json:"notes"`
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Get(request.Context(), userID, request.URL.Query().Get("date"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

func (handler *Handler) upsert(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input upsertRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entry, err := handler.service.Upsert(request.Context(), userID, input.Date, UpsertInput{
		Water:    input.Water,
		Meals:    input.Meals,
		Exercise: input.Exercise,
		Sleep:    input.Sleep,
		Mood:     input.Mood,
		Notes:    input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}
