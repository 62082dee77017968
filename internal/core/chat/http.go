// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chat

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

// Routes returns the authenticated chat router.
//
// # Endpoints
//   - GET  /{persona} : Full conversation log (possibly empty).
//   - POST /{persona} : One request/reply turn; returns only the reply.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/{persona}", handler.getMessages)
		r.Post("/{persona}", handler.postMessage)
	})

	return router
}

type postMessageRequest struct {
	Message string `json:"message"`
}

func (handler *Handler) getMessages(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	messages, err := handler.service.Messages(request.Context(), userID, requestutil.Param(request, "persona"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messages)
}

func (handler *Handler) postMessage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postMessageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	reply, err := handler.service.Post(request.Context(), userID, requestutil.Param(request, "persona"), input.Message)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reply)
}
