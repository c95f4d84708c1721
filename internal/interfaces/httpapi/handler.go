package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

// HandlerDeps are the services behind the HTTP API.
type HandlerDeps struct {
	Admin         *usecase.AdminService
	Announcements *usecase.AnnouncementAdminService
	Feed          *usecase.AnnouncementFeedService
	Events        *usecase.EventAdminService
	Locations     *usecase.LocationAdminService
	Leagues       *usecase.LeagueAdminService
	Review        *usecase.SignupReviewService
	Signups       *usecase.SignupService
	Logger        *logging.Logger
}

type Handler struct {
	adminService        *usecase.AdminService
	announcementService *usecase.AnnouncementAdminService
	feedService         *usecase.AnnouncementFeedService
	eventService        *usecase.EventAdminService
	locationService     *usecase.LocationAdminService
	leagueService       *usecase.LeagueAdminService
	reviewService       *usecase.SignupReviewService
	signupService       *usecase.SignupService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		adminService:        deps.Admin,
		announcementService: deps.Announcements,
		feedService:         deps.Feed,
		eventService:        deps.Events,
		locationService:     deps.Locations,
		leagueService:       deps.Leagues,
		reviewService:       deps.Review,
		signupService:       deps.Signups,
		logger:              logger.Named("httpapi"),
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetAdminMe returns the signed-in admin account.
func (h *Handler) GetAdminMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdminMe")
	defer span.End()

	admin, ok := requireAdmin(ctx, w)
	if !ok {
		return
	}

	writeSuccess(ctx, w, http.StatusOK, adminDTO{
		ID:          admin.ID,
		Name:        admin.Name,
		Permissions: append([]string(nil), admin.Permissions...),
	})
}

func requireAdmin(ctx context.Context, w http.ResponseWriter) (user.AuthorizedUser, bool) {
	admin, ok := adminFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: admin is missing from request context", usecase.ErrUnauthorized))
		return user.AuthorizedUser{}, false
	}
	return admin, true
}

// decodeJSON reads a strict JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

type adminDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type deletedDTO struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
