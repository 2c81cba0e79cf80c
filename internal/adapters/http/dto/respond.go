package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/recharge-proxy/internal/app"
	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
)

// Request fields whose validation failures have their own message.
const (
	FieldActivationCode = "activation_code"
	FieldJSONToken      = "json_token"
)

// GetTraceID returns the trace ID of the active span, or "".
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// Localizer returns the localizer negotiated for the request.
func Localizer(c *gin.Context) *i18n.Localizer {
	return i18n.FromContext(c.Request.Context())
}

// MapError maps err to a failure envelope with a localized message.
func MapError(err error, loc *i18n.Localizer) *FailureResponse {
	var (
		stepErr       *app.StepError
		validationErr *domain.ValidationError
	)

	switch {
	case errors.Is(err, ErrBinding):
		return NewFailure(ErrorCodeBadRequest, loc.Message(i18n.MsgRequestMalformed))

	case errors.Is(err, ErrValidation):
		fields := ValidationErrors(err)

		return NewFailure(ErrorCodeValidation, loc.Message(fieldMessage(fields))).WithDetails(fields)

	case errors.As(err, &validationErr):
		id := i18n.MsgCodeInvalid

		switch {
		case validationErr.Field == FieldJSONToken:
			id = i18n.MsgTokenRequired
		case validationErr.Message == "required":
			id = i18n.MsgCodeRequired
		}

		return NewFailure(ErrorCodeValidation, loc.Message(id)).
			WithDetails(map[string]string{validationErr.Field: validationErr.Message})

	case domain.IsSessionExpired(err):
		return NewFailure(ErrorCodeSessionExpired, loc.Message(i18n.MsgSessionExpired))

	case domain.IsUnavailable(err):
		return NewFailure(ErrorCodeUnavailable, loc.Message(i18n.MsgSessionUnavailable))

	case errors.As(err, &stepErr):
		return NewFailure(ErrorCodeUpstream, stepErr.Message)

	default:
		return NewFailure(ErrorCodeInternal, loc.Format(i18n.MsgServerError, map[string]any{"Detail": err.Error()}))
	}
}

// fieldMessage picks the message for the first field that failed.
func fieldMessage(fields map[string]string) string {
	if _, ok := fields[FieldActivationCode]; ok {
		return i18n.MsgCodeRequired
	}

	if _, ok := fields[FieldJSONToken]; ok {
		return i18n.MsgTokenRequired
	}

	return i18n.MsgRequestMalformed
}

// HandleError writes the failure envelope for err with status 200.
// Unexpected errors are logged and their text is shown to the caller.
func HandleError(c *gin.Context, err error) {
	resp := MapError(err, Localizer(c)).WithTraceID(GetTraceID(c))

	if resp.Code == ErrorCodeInternal {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(http.StatusOK, resp)
}

// Fail writes a failure envelope with a localized catalog message.
func Fail(c *gin.Context, code, messageID string) {
	resp := NewFailure(code, Localizer(c).Message(messageID)).WithTraceID(GetTraceID(c))

	c.JSON(HTTPStatusFromCode(code), resp)
}

// AbortWithFailure is Fail for middleware: it stops the handler chain.
func AbortWithFailure(c *gin.Context, code, messageID string) {
	resp := NewFailure(code, Localizer(c).Message(messageID)).WithTraceID(GetTraceID(c))

	if c.Writer.Written() {
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}
