package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/mystixxx/altersport/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Handler carries the services behind the HTTP surface. One instance serves
// all routes.
type Handler struct {
	catalog    *usecase.CatalogService
	pages      *usecase.PageService
	onboarding *usecase.OnboardingService
	logger     *slog.Logger
	validator  *validator.Validate
}

func NewHandler(
	catalog *usecase.CatalogService,
	pages *usecase.PageService,
	onboarding *usecase.OnboardingService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalog:    catalog,
		pages:      pages,
		onboarding: onboarding,
		logger:     logger,
		validator:  validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body into dst and runs the struct validation
// tags. Unknown fields are rejected so client typos surface as 400s.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, req any) error {
	if err := h.validator.StructCtx(ctx, req); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
