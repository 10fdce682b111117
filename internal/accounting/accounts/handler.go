package accounts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minibooks/minibooks/internal/platform/httpx"
	"github.com/minibooks/minibooks/internal/shared"
)

// Handler exposes the account command set as a JSON API.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	redactDetail bool
}

// NewHandler wires the account handler. redactDetail strips storage driver
// messages from responses in production.
func NewHandler(logger *slog.Logger, service *Service, redactDetail bool) *Handler {
	return &Handler{logger: logger, service: service, redactDetail: redactDetail}
}

// Routes mounts the account endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/accounts", h.List)
	r.Post("/accounts", h.Create)
	r.Get("/accounts/roots", h.Roots)
	r.Get("/accounts/lookup", h.Lookup)
	r.Get("/accounts/{id}", h.Get)
	r.Put("/accounts/{id}", h.Update)
	r.Delete("/accounts/{id}", h.Delete)
	r.Post("/accounts/{id}/toggle", h.ToggleStatus)
	r.Post("/accounts/{id}/balance", h.AdjustBalance)
	r.Get("/accounts/{id}/children", h.Children)
	r.Get("/account-types/{type}/categories", h.Categories)
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err, h.redactDetail)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list accounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get account", err)
		return
	}
	if view == nil {
		httpx.RespondError(w, shared.NotFoundError("Account"), h.redactDetail)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetByCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.fail(w, "lookup account", err)
		return
	}
	if view == nil {
		httpx.RespondError(w, shared.NotFoundError("Account"), h.redactDetail)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ValidationError("Invalid request body: "+err.Error()), h.redactDetail)
		return
	}
	view, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, "create account", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, view)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ValidationError("Invalid request body: "+err.Error()), h.redactDetail)
		return
	}
	view, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "update account", err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "toggle account status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

type adjustBalanceRequest struct {
	Amount string `json:"amount"`
}

func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req adjustBalanceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ValidationError("Invalid request body: "+err.Error()), h.redactDetail)
		return
	}
	view, err := h.service.AdjustBalance(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		h.fail(w, "adjust account balance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) Roots(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.Roots(r.Context())
	if err != nil {
		h.fail(w, "list root accounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) Children(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.Children(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "list child accounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.service.CategoryOptions(chi.URLParam(r, "type"))
	if err != nil {
		h.fail(w, "list categories", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tokens)
}
