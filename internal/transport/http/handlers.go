package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"agegate/internal/audit"
	"agegate/internal/catalog"
	"agegate/internal/intake"
	"agegate/internal/platform/middleware"
	"agegate/internal/verification"
	id "agegate/pkg/domain"
	dErrors "agegate/pkg/domain-errors"
	"agegate/pkg/platform/httputil"
	"agegate/pkg/secrets"
)

// Handler is the thin HTTP layer. It delegates to the verification service
// without embedding business logic so transport concerns remain isolated.
type Handler struct {
	service  *verification.Service
	products intake.ProductSource
	auditLog audit.Store
	pinHash  string
	logger   *slog.Logger
}

// NewHandler creates the transport handler. pinHash may be empty, in which
// case overrides are not PIN-gated.
func NewHandler(service *verification.Service, products intake.ProductSource, auditLog audit.Store, pinHash string, logger *slog.Logger) *Handler {
	if service == nil {
		panic("httptransport: verification service is required")
	}
	if auditLog == nil {
		panic("httptransport: audit store is required")
	}
	return &Handler{
		service:  service,
		products: products,
		auditLog: auditLog,
		pinHash:  pinHash,
		logger:   logger,
	}
}

// productEventRequest reports a line item. The register can send the full
// product inline or just the barcode for the sidecar to resolve.
type productEventRequest struct {
	Code    string `json:"code,omitempty"`
	Product *struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Group       any    `json:"group"`
		Description string `json:"description"`
	} `json:"product,omitempty"`
}

func (h *Handler) handleProductEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[productEventRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	var product *catalog.Product
	switch {
	case req.Product != nil:
		product = &catalog.Product{
			Code:        req.Product.Code,
			Name:        req.Product.Name,
			Group:       catalog.NormalizeGroup(req.Product.Group),
			Description: req.Product.Description,
		}
	case req.Code != "":
		if h.products == nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "no product source configured"))
			return
		}
		resolved, err := h.products.LookupProduct(ctx, req.Code)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		product = resolved
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "either code or product is required"))
		return
	}

	h.service.ObserveProduct(ctx, *product)
	httputil.WriteJSON(w, http.StatusAccepted, h.service.Snapshot())
}

type credentialEventRequest struct {
	Payload string `json:"payload"`
}

func (h *Handler) handleCredentialEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[credentialEventRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	if req.Payload == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "payload is required"))
		return
	}

	result, err := h.service.ReceiveCredential(ctx, req.Payload)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

type manualEntryRequest struct {
	BirthDate string `json:"birth_date"`
}

func (h *Handler) handleManualEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[manualEntryRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	result, err := h.service.ManualEntry(ctx, req.BirthDate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

type overrideRequest struct {
	Approved bool   `json:"approved"`
	PIN      string `json:"pin,omitempty"`
}

func (h *Handler) handleOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[overrideRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	if err := h.checkPIN(ctx, req.PIN); err != nil {
		httputil.WriteError(w, err)
		return
	}

	snapshot := h.service.ManualOverride(ctx, req.Approved)
	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

type transactionEventRequest struct {
	TransactionID string `json:"transaction_id"`
	ItemCount     *int   `json:"item_count,omitempty"`
}

func (h *Handler) handleTransactionEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[transactionEventRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	txnID, err := id.ParseTransactionID(req.TransactionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if req.TransactionID != "" {
		h.service.StartTransaction(ctx, txnID)
	}
	if req.ItemCount != nil {
		h.service.ObserveItemCount(ctx, *req.ItemCount)
	}
	httputil.WriteJSON(w, http.StatusAccepted, h.service.Snapshot())
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		events []audit.Event
		err    error
	)
	if txn := r.URL.Query().Get("transaction_id"); txn != "" {
		txnID, parseErr := id.ParseTransactionID(txn)
		if parseErr != nil {
			httputil.WriteError(w, parseErr)
			return
		}
		events, err = h.auditLog.ListByTransaction(ctx, txnID)
	} else {
		events, err = h.auditLog.ListAll(ctx)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// checkPIN enforces the operator override PIN when one is configured.
func (h *Handler) checkPIN(ctx context.Context, pin string) error {
	if h.pinHash == "" {
		return nil
	}
	if pin == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "override requires the operator PIN")
	}
	if err := secrets.Verify(pin, h.pinHash); err != nil {
		h.logger.WarnContext(ctx, "override PIN rejected",
			"request_id", middleware.GetRequestID(ctx),
		)
		return dErrors.New(dErrors.CodeUnauthorized, "invalid operator PIN")
	}
	return nil
}
