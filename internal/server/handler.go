package server

import (
	"errors"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/validation"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

// ValidateResponse reports the rule-table outcome for a set of raw field values.
type ValidateResponse struct {
	Valid        bool              `json:"valid"`
	CanCalculate bool              `json:"can_calculate"`
	Errors       validation.Errors `json:"errors"`
}

// Handler serves the projection API.
type Handler struct {
	Logger        calculation.Logger
	AllowedOrigin string
}

// NewHandler creates a handler that logs through l (nil means no logging).
func NewHandler(l calculation.Logger, allowedOrigin string) *Handler {
	if l == nil {
		l = calculation.NopLogger{}
	}
	return &Handler{Logger: l, AllowedOrigin: allowedOrigin}
}

// ServeHTTP routes a request.
func (h *Handler) ServeHTTP(ctx *fasthttp.RequestCtx) {
	if h.AllowedOrigin != "" {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", h.AllowedOrigin)
	}
	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	case "/api/projection":
		h.only(ctx, fasthttp.MethodPost, h.handleProjection)
	case "/api/validate":
		h.only(ctx, fasthttp.MethodPost, h.handleValidate)
	case "/api/autofill":
		h.only(ctx, fasthttp.MethodGet, h.handleAutofill)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found", nil)
	}
	h.Logger.Debugf("%s %s -> %d", ctx.Method(), ctx.Path(), ctx.Response.StatusCode())
}

func (h *Handler) only(ctx *fasthttp.RequestCtx, method string, next fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}
	next(ctx)
}

func (h *Handler) handleProjection(ctx *fasthttp.RequestCtx) {
	values, err := decodeValues(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	in, err := validation.FormFromValues(values).Submit()
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			writeError(ctx, fasthttp.StatusUnprocessableEntity, "Invalid input", verr.Fields)
			return
		}
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	result, err := calculation.Project(in)
	if err != nil {
		h.Logger.Warnf("projection rejected validated input: %v", err)
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (h *Handler) handleValidate(ctx *fasthttp.RequestCtx) {
	values, err := decodeValues(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	form := validation.FormFromValues(values)
	errs := form.Errors()
	writeJSON(ctx, fasthttp.StatusOK, ValidateResponse{
		Valid:        len(errs) == 0,
		CanCalculate: form.CanCalculate(),
		Errors:       errs,
	})
}

func (h *Handler) handleAutofill(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, validation.Autofill().Values())
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error(), nil)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string, fields validation.Errors) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message, Errors: fields})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
