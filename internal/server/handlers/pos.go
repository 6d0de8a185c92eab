package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// POSHandler обрабатывает счета и продажи: списки и rpc мутации
type POSHandler struct {
	logger   *slog.Logger
	bars     storage.BarStorage
	tickets  storage.TicketStorage
	sales    storage.SaleStorage
	mappings storage.MappingStorage
	feed     changeFeed
	now      func() time.Time
}

// NewPOSHandler creates the tickets and sales handler. notifier may be nil.
func NewPOSHandler(
	logger *slog.Logger,
	bars storage.BarStorage,
	tickets storage.TicketStorage,
	sales storage.SaleStorage,
	mappings storage.MappingStorage,
	notifier Notifier,
) *POSHandler {
	return &POSHandler{
		logger:   logger,
		bars:     bars,
		tickets:  tickets,
		sales:    sales,
		mappings: mappings,
		feed:     changeFeed{logger: logger, bars: bars, notifier: notifier, now: time.Now},
		now:      time.Now,
	}
}

// ListTickets обрабатывает GET /rest/v1/tickets?bar_id=
func (h *POSHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	barID, ok := h.memberBar(w, r)
	if !ok {
		return
	}

	tickets, err := h.tickets.ListTickets(r.Context(), barID)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	resp := make([]api.Ticket, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, ticketToAPI(t))
	}
	SendJSON(h.logger, w, resp, http.StatusOK)
}

// ListSales обрабатывает GET /rest/v1/sales?bar_id=
func (h *POSHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	barID, ok := h.memberBar(w, r)
	if !ok {
		return
	}

	sales, err := h.sales.ListSales(r.Context(), barID)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	resp := make([]api.Sale, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, saleToAPI(s))
	}
	SendJSON(h.logger, w, resp, http.StatusOK)
}

// CreateTicket обрабатывает POST /rpc/v1/create_ticket
// Номер счёта выдаёт сервер
func (h *POSHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	var req api.CreateTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}
	if req.BarID == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "bar_id is required")
		return
	}
	if strings.TrimSpace(req.ServerName) != "" {
		if err := validation.ValidateServerName(req.ServerName); err != nil {
			SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
			return
		}
	}

	if _, err := authorize(ctx, h.bars, req.BarID, userID); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	ticket := &models.Ticket{
		ID:         uuid.New().String(),
		BarID:      req.BarID,
		TableLabel: strings.TrimSpace(req.TableLabel),
		ServerName: strings.TrimSpace(req.ServerName),
		Notes:      req.Notes,
		CreatedBy:  userID,
		CreatedAt:  h.now(),
	}
	if err := h.tickets.CreateTicket(ctx, ticket); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "ticket created",
		slog.String("ticket_id", ticket.ID),
		slog.Int64("number", ticket.Number))
	h.feed.notify(ctx, api.TableTickets, ActionInsert, ticket.BarID, ticket.ID)
	SendJSON(h.logger, w, ticketToAPI(*ticket), http.StatusCreated)
}

// PayTicket обрабатывает POST /rpc/v1/pay_ticket
// Повторная оплата отвергается с 409
func (h *POSHandler) PayTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	var req api.PayTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}
	if req.TicketID == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "ticket_id is required")
		return
	}
	if err := validation.ValidatePaymentMethod(req.PaymentMethod); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}

	ticket, err := h.tickets.GetTicket(ctx, req.TicketID)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}
	if _, err := authorize(ctx, h.bars, ticket.BarID, userID); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = h.now()
	}

	paid, err := h.tickets.PayTicket(ctx, req.TicketID, req.PaymentMethod, paidAt)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "ticket paid", slog.String("ticket_id", paid.ID))
	h.feed.notify(ctx, api.TableTickets, ActionUpdate, paid.BarID, paid.ID)
	SendJSON(h.logger, w, ticketToAPI(*paid), http.StatusOK)
}

// CreateSale обрабатывает POST /rpc/v1/create_sale
// Сумма пересчитывается на сервере. Если sold_by не передан, он берётся из привязки server_name
// или из текущего пользователя.
func (h *POSHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	var req api.CreateSaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}

	in := models.NewSale{
		BarID:         req.BarID,
		TicketID:      req.TicketID,
		PaymentMethod: req.PaymentMethod,
		ServerName:    strings.TrimSpace(req.ServerName),
		Items:         saleItemsFromAPI(req.Items),
	}
	if err := in.Validate(); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}
	if err := validation.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}

	if _, err := authorize(ctx, h.bars, in.BarID, userID); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	if in.TicketID != "" {
		ticket, err := h.tickets.GetTicket(ctx, in.TicketID)
		if errors.Is(err, storage.ErrTicketNotFound) || (err == nil && ticket.BarID != in.BarID) {
			SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "ticket_id does not belong to the bar")
			return
		}
		if err != nil {
			sendStorageError(h.logger, r, w, err)
			return
		}
	}

	soldBy, err := h.resolveSoldBy(r, in, req.SoldBy, userID)
	if err != nil {
		if errors.Is(err, storage.ErrMappingNotFound) {
			SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
			return
		}
		sendStorageError(h.logger, r, w, err)
		return
	}

	sale := &models.Sale{
		ID:            uuid.New().String(),
		BarID:         in.BarID,
		TicketID:      in.TicketID,
		PaymentMethod: in.PaymentMethod,
		ServerName:    in.ServerName,
		SoldBy:        soldBy,
		CreatedBy:     userID,
		Items:         in.Items,
		TotalCents:    in.TotalCents(),
		CreatedAt:     h.now(),
	}
	if err := h.sales.CreateSale(ctx, sale); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "sale created",
		slog.String("sale_id", sale.ID),
		slog.Int64("total_cents", sale.TotalCents))
	h.feed.notify(ctx, api.TableSales, ActionInsert, sale.BarID, sale.ID)
	SendJSON(h.logger, w, saleToAPI(*sale), http.StatusCreated)
}

func (h *POSHandler) resolveSoldBy(r *http.Request, in models.NewSale, soldBy, userID string) (string, error) {
	if soldBy = strings.TrimSpace(soldBy); soldBy != "" {
		return soldBy, nil
	}
	if in.ServerName == "" {
		return userID, nil
	}

	resolved, err := h.mappings.ResolveServerName(r.Context(), in.BarID, in.ServerName)
	if err != nil {
		if errors.Is(err, storage.ErrMappingNotFound) {
			return "", fmt.Errorf("%w: server name %q", err, in.ServerName)
		}
		return "", err
	}
	return resolved, nil
}

// memberBar читает bar_id из query и проверяет членство
func (h *POSHandler) memberBar(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return "", false
	}

	barID := r.URL.Query().Get("bar_id")
	if barID == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "bar_id is required")
		return "", false
	}
	if _, err := authorize(r.Context(), h.bars, barID, userID); err != nil {
		sendStorageError(h.logger, r, w, err)
		return "", false
	}
	return barID, true
}
