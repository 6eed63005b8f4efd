package handler

import (
	"net/http"

	"github.com/Stewz00/doc-analysis-api/internal/logging"
	"github.com/Stewz00/doc-analysis-api/internal/middleware"
)

// Resource describes a placeholder collection. Its endpoints answer with
// fixed messages until the real workflow exists.
type Resource struct {
	Name          string
	ListMessage   string
	CreateMessage string
}

// Resources are the placeholder collections served next to /auth.
var Resources = []Resource{
	{Name: "orders", ListMessage: "List of orders", CreateMessage: "Order created"},
	{Name: "documents", ListMessage: "List of documents", CreateMessage: "Document created"},
	{Name: "analyses", ListMessage: "List of analyses", CreateMessage: "Analysis created"},
	{Name: "payments", ListMessage: "List of payments", CreateMessage: "Payment created"},
}

type ResourceHandler struct {
	resource Resource
	logger   logging.Logger
}

func NewResourceHandler(res Resource, logger logging.Logger) *ResourceHandler {
	return &ResourceHandler{resource: res, logger: logger.With("resource", res.Name)}
}

func (h *ResourceHandler) Path() string { return "/" + h.resource.Name }

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	h.trace(r, "list")
	writeJSON(w, http.StatusOK, MessageResponse{Message: h.resource.ListMessage})
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.trace(r, "create")
	writeJSON(w, http.StatusCreated, MessageResponse{Message: h.resource.CreateMessage})
}

func (h *ResourceHandler) trace(r *http.Request, op string) {
	args := []any{"op", op}
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		args = append(args, "user_id", id)
	}
	h.logger.Debug(r.Context(), "placeholder resource called", args...)
}
