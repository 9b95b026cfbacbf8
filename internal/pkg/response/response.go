package response

import (
	"errors"

	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/entity"
	"github.com/gofiber/fiber/v2"

	"github.com/sirupsen/logrus"
)

// Response is a JSON reply whose body is sent as-is, without an envelope;
// tutor callers read the payload fields at the top level.
type Response struct {
	StatusCode int
	Body       any
}

func NewInternalServerError() *Response {
	return &Response{
		StatusCode: fiber.StatusInternalServerError,
		Body:       entity.ErrorBody{Error: "Internal Server Error"},
	}
}

// NewFailed renders err as {"error": message}. fiber errors keep their status
// code; everything else is a 500.
func NewFailed(err error, logger *logrus.Entry) *Response {
	res := &Response{
		StatusCode: fiber.StatusInternalServerError,
		Body:       entity.ErrorBody{Error: err.Error()},
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		res.StatusCode = fe.Code
		res.Body = entity.ErrorBody{Error: fe.Message}
	}

	if logger != nil && res.StatusCode >= fiber.StatusInternalServerError {
		logger.Error(err)
	}

	return res
}

func NewSuccess(data any) *Response {
	return &Response{
		StatusCode: fiber.StatusOK,
		Body:       data,
	}
}

func (r *Response) Send(ctx *fiber.Ctx) error {
	return ctx.Status(r.StatusCode).JSON(r.Body)
}
