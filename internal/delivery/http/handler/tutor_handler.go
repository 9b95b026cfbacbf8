package handler

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/domain"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/entity"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/middleware"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/usecase"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/response"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	TutorHandler interface {
		Dispatch(ctx *fiber.Ctx) error
		ListInteractions(ctx *fiber.Ctx) error
		Health(ctx *fiber.Ctx) error
	}

	tutorHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TutorUsecase
	}
)

func NewTutorHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TutorUsecase) TutorHandler {
	return &tutorHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /ai-tutor
// Every failure, validation included, is a 500 {"error": "..."}; callers treat
// any 500 as "try again".
func (h *tutorHandler) Dispatch(ctx *fiber.Ctx) error {
	requestID := middleware.RequestID(ctx)
	log := h.logger.WithField("request_id", requestID)

	var req entity.TutorRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		if errors.Is(err, validate.ErrInvalidBody) {
			err = errors.New(domain.TUTOR_INVALID_REQUEST)
		}
		return response.NewFailed(err, log).Send(ctx)
	}

	log = log.WithFields(logrus.Fields{
		"action":     req.Action,
		"session_id": req.SessionID,
	})

	// not tied to the fasthttp request, the stream writer outlives this handler
	dispatchCtx, cancel := context.WithCancel(ctx.UserContext())

	res, err := h.usecase.Dispatch(dispatchCtx, requestID, req)
	if err != nil {
		cancel()
		return response.NewFailed(err, log).Send(ctx)
	}

	if res.Stream == nil {
		cancel()
		return response.NewSuccess(res.Body).Send(ctx)
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	stream := res.Stream
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer stream.Close()

		if err := pipeStream(w, stream); err != nil {
			log.WithError(err).Warn("chat stream ended early")
		}
	})

	return nil
}

// GET /ai-tutor/sessions/:session_id/interactions
func (h *tutorHandler) ListInteractions(ctx *fiber.Ctx) error {
	sessionID := strings.TrimSpace(ctx.Params("session_id"))
	if sessionID == "" {
		return response.NewFailed(fiber.NewError(fiber.StatusBadRequest, domain.TUTOR_SESSION_ID_REQUIRED), nil).Send(ctx)
	}

	logs, err := h.usecase.ListInteractions(ctx.UserContext(), sessionID)
	if err != nil {
		return response.NewFailed(err, h.logger.WithField("request_id", middleware.RequestID(ctx))).Send(ctx)
	}

	return response.NewSuccess(entity.InteractionList{Interactions: logs}).Send(ctx)
}

// GET /health
func (h *tutorHandler) Health(ctx *fiber.Ctx) error {
	return response.NewSuccess(fiber.Map{"status": "ok"}).Send(ctx)
}
