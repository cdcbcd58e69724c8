package handler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"MultiplierSentinel/internal/httpserver"
	"MultiplierSentinel/internal/model"
	"MultiplierSentinel/internal/predict"
	"MultiplierSentinel/internal/strategy"
	"MultiplierSentinel/internal/validator"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PredictRequest is the body of a form submission or API call.
// Values and Length are checked by predict.Service so every rejection is recorded
// with its domain kind. Only the request size is bounded here.
type PredictRequest struct {
	Values string `json:"values" form:"values" validate:"max=4096"`
	Length int    `json:"length" form:"length"`
}

// ProfileEntry pairs a category with its display metadata.
type ProfileEntry struct {
	Category model.Category        `json:"category"`
	Profile  model.CategoryProfile `json:"profile"`
}

type pageData struct {
	AllowedLengths []int
	Length         int
	Values         string
	Category       model.Category
	Profile        model.CategoryProfile
	Error          string
}

// PredictHandler serves the form page and the JSON API.
type PredictHandler struct {
	svc *predict.Service
}

func NewPredictHandler(svc *predict.Service) *PredictHandler {
	return &PredictHandler{svc: svc}
}

func (h *PredictHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.POST("/", h.Submit)

	g := e.Group("/api")
	g.POST("/predict", h.Predict)
	g.GET("/profiles", h.Profiles)
}

// Page renders the empty form.
func (h *PredictHandler) Page(c echo.Context) error {
	return h.render(c, h.newPage())
}

// Submit handles the form post and renders the result or the validation message.
func (h *PredictHandler) Submit(c echo.Context) error {
	page := h.newPage()
	req := &PredictRequest{}
	if errs := httpserver.BindAndValidate(c, req); errs != nil {
		page.Values = c.FormValue("values")
		page.Error = errs[0].Message
		return h.render(c, page)
	}
	if req.Length != 0 {
		page.Length = req.Length
	}
	page.Values = req.Values

	res, err := h.svc.Predict(c.Request().Context(), "web", req.Values, page.Length)
	if err != nil {
		if msg, ok := userMessage(err); ok {
			page.Error = msg
			return h.render(c, page)
		}
		return err
	}
	page.Category = res.Category
	page.Profile = res.Profile
	return h.render(c, page)
}

// Predict is the JSON counterpart of Submit.
func (h *PredictHandler) Predict(c echo.Context) error {
	req := &PredictRequest{}
	if errs := httpserver.BindAndValidate(c, req); errs != nil {
		return httpserver.BadRequestResponse(c, errs)
	}
	length := req.Length
	if length == 0 {
		length = h.svc.DefaultLength()
	}

	res, err := h.svc.Predict(c.Request().Context(), "api", req.Values, length)
	if err != nil {
		if verr := apiError(err, h.svc.AllowedLengths()); verr != nil {
			return httpserver.BadRequestResponse(c, []httpserver.ValidationError{*verr})
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return httpserver.DataResponse(c, http.StatusServiceUnavailable, "request cancelled")
		}
		log.Error().Err(err).Msg("predict failed")
		return httpserver.InternalServerErrorResponse(c)
	}
	return httpserver.SuccessResponse(c, res)
}

// Profiles lists every category with its display metadata.
func (h *PredictHandler) Profiles(c echo.Context) error {
	cats := strategy.Categories()
	entries := make([]ProfileEntry, 0, len(cats))
	for _, cat := range cats {
		entries = append(entries, ProfileEntry{Category: cat, Profile: strategy.Profile(cat)})
	}
	return httpserver.SuccessResponse(c, map[string]interface{}{
		"allowed_lengths": h.svc.AllowedLengths(),
		"default_length":  h.svc.DefaultLength(),
		"profiles":        entries,
	})
}

func (h *PredictHandler) newPage() *pageData {
	return &pageData{
		AllowedLengths: h.svc.AllowedLengths(),
		Length:         h.svc.DefaultLength(),
		Category:       model.CategoryNone,
		Profile:        strategy.Profile(model.CategoryNone),
	}
}

func (h *PredictHandler) render(c echo.Context, page *pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func userMessage(err error) (string, bool) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return verr.Message(), true
	}
	if errors.Is(err, predict.ErrLengthNotAllowed) {
		return "Please pick one of the offered history lengths.", true
	}
	return "", false
}

func apiError(err error, allowed []int) *httpserver.ValidationError {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		out := &httpserver.ValidationError{
			Code:    "ERR_" + string(verr.Kind),
			Field:   "values",
			Message: verr.Message(),
		}
		if verr.Kind == validator.KindWrongCount {
			out.Params = map[string]interface{}{"want": verr.Want, "got": verr.Got}
		}
		return out
	}
	if errors.Is(err, predict.ErrLengthNotAllowed) {
		return &httpserver.ValidationError{
			Code:    "ERR_LENGTH_NOT_ALLOWED",
			Field:   "length",
			Message: fmt.Sprintf("length must be one of %v", allowed),
			Params:  map[string]interface{}{"options": allowed},
		}
	}
	return nil
}
