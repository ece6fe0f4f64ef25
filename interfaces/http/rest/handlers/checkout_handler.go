package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"novamarket/application/ports"
	"novamarket/pkg/common"
)

// CheckoutHandler creates hosted checkout sessions
type CheckoutHandler struct {
	provider ports.CheckoutProvider
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(provider ports.CheckoutProvider, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		provider: provider,
		logger:   logger,
	}
}

// CheckoutSessionResponse carries the hosted checkout URL
type CheckoutSessionResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession handles POST /api/create-checkout-session
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if !h.provider.Enabled() {
		common.RespondError(w, http.StatusServiceUnavailable, common.LabelUnavailable,
			"Stripe is not configured. Please add STRIPE_SECRET_KEY to your environment.")
		return
	}

	var req ports.CheckoutSessionRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, "Invalid request body")
		return
	}

	if len(req.Items) == 0 {
		common.RespondError(w, http.StatusBadRequest, "No items in cart", "The cart must contain at least one item")
		return
	}

	url, err := h.provider.CreateSession(r.Context(), req)
	if err != nil {
		h.logger.Error("Checkout session creation failed", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "Payment processing failed",
			"Could not create a checkout session. Please try again.")
		return
	}

	common.RespondJSON(w, http.StatusOK, CheckoutSessionResponse{URL: url})
}
