package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/barkeeper/pkg/api"
)

type posFixture struct {
	h      *POSHandler
	s      *sqlite.Storage
	n      *fakeNotifier
	owner  *models.User
	waiter *models.User
	bar    *models.Bar
}

func newPOSFixture(t *testing.T) *posFixture {
	t.Helper()
	s := setupTestStorage(t)
	n := &fakeNotifier{}
	owner := createTestUser(t, s, "owner@example.com")
	waiter := createTestUser(t, s, "anna@example.com")
	bar := createTestBar(t, s, owner.ID, "The Anchor")

	ctx := context.Background()
	require.NoError(t, s.AddMember(ctx, bar.ID, waiter.ID, models.RoleServer))
	require.NoError(t, s.UpsertMapping(ctx, &models.ServerMapping{
		ID:         uuid.New().String(),
		BarID:      bar.ID,
		ServerName: "Anna",
		UserID:     waiter.ID,
		CreatedAt:  time.Now(),
	}))

	return &posFixture{
		h:      NewPOSHandler(testLogger(), s, s, s, s, n),
		s:      s,
		n:      n,
		owner:  owner,
		waiter: waiter,
		bar:    bar,
	}
}

func (f *posFixture) createTicket(t *testing.T, userID string) api.Ticket {
	t.Helper()
	w := serve(f.h.CreateTicket, newRequest(t, http.MethodPost, "/rpc/v1/create_ticket", userID, api.CreateTicketRequest{
		BarID:      f.bar.ID,
		TableLabel: "T1",
		ServerName: "Anna",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[api.Ticket](t, w)
}

func TestPOSHandler_CreateTicket(t *testing.T) {
	f := newPOSFixture(t)

	first := f.createTicket(t, f.owner.ID)
	second := f.createTicket(t, f.waiter.ID)

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number, "numbers are assigned by the server per bar")
	assert.Equal(t, string(models.TicketStatusOpen), first.Status)
	assert.Equal(t, f.waiter.ID, second.CreatedBy)

	ev, recipients := f.n.last(t)
	assert.Equal(t, api.TableTickets, ev.Table)
	assert.Equal(t, second.ID, ev.RecordID)
	assert.ElementsMatch(t, []string{f.owner.ID, f.waiter.ID}, recipients)

	t.Run("non member", func(t *testing.T) {
		stranger := createTestUser(t, f.s, "stranger@example.com")
		w := serve(f.h.CreateTicket, newRequest(t, http.MethodPost, "/rpc/v1/create_ticket", stranger.ID, api.CreateTicketRequest{
			BarID: f.bar.ID,
		}))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing bar", func(t *testing.T) {
		w := serve(f.h.CreateTicket, newRequest(t, http.MethodPost, "/rpc/v1/create_ticket", f.owner.ID, api.CreateTicketRequest{}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := serve(f.h.ListTickets, newRequest(t, http.MethodGet, "/rest/v1/tickets?bar_id="+f.bar.ID, f.waiter.ID, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody[[]api.Ticket](t, w), 2)
	})
}

func TestPOSHandler_PayTicket(t *testing.T) {
	f := newPOSFixture(t)
	ticket := f.createTicket(t, f.owner.ID)
	paidAt := time.Now().Add(-time.Minute).UTC().Truncate(time.Second)

	w := serve(f.h.PayTicket, newRequest(t, http.MethodPost, "/rpc/v1/pay_ticket", f.waiter.ID, api.PayTicketRequest{
		TicketID:      ticket.ID,
		PaymentMethod: "card",
		PaidAt:        paidAt,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	paid := decodeBody[api.Ticket](t, w)
	assert.Equal(t, string(models.TicketStatusPaid), paid.Status)
	assert.Equal(t, "card", paid.PaymentMethod)
	require.NotNil(t, paid.PaidAt)
	assert.True(t, paidAt.Equal(*paid.PaidAt), "client paid_at is kept")

	t.Run("second payment conflicts", func(t *testing.T) {
		w := serve(f.h.PayTicket, newRequest(t, http.MethodPost, "/rpc/v1/pay_ticket", f.owner.ID, api.PayTicketRequest{
			TicketID:      ticket.ID,
			PaymentMethod: "cash",
		}))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, api.CodeConflict, errorCode(t, w))
	})

	t.Run("unknown payment method", func(t *testing.T) {
		w := serve(f.h.PayTicket, newRequest(t, http.MethodPost, "/rpc/v1/pay_ticket", f.owner.ID, api.PayTicketRequest{
			TicketID:      ticket.ID,
			PaymentMethod: "barter",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		w := serve(f.h.PayTicket, newRequest(t, http.MethodPost, "/rpc/v1/pay_ticket", f.owner.ID, api.PayTicketRequest{
			TicketID:      "missing",
			PaymentMethod: "cash",
		}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPOSHandler_CreateSale(t *testing.T) {
	f := newPOSFixture(t)
	items := []api.SaleItem{
		{ProductID: "lager", Name: "Lager", Quantity: 2, UnitPriceCents: 550},
		{ProductID: "fries", Name: "Fries", Quantity: 1, UnitPriceCents: 400},
	}

	createSale := func(t *testing.T, userID string, req api.CreateSaleRequest) (int, api.Sale) {
		t.Helper()
		w := serve(f.h.CreateSale, newRequest(t, http.MethodPost, "/rpc/v1/create_sale", userID, req))
		if w.Code != http.StatusCreated {
			return w.Code, api.Sale{}
		}
		return w.Code, decodeBody[api.Sale](t, w)
	}

	t.Run("total is computed and sold_by defaults to caller", func(t *testing.T) {
		code, sale := createSale(t, f.owner.ID, api.CreateSaleRequest{
			BarID:         f.bar.ID,
			PaymentMethod: "cash",
			Items:         items,
		})
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, int64(1500), sale.TotalCents)
		assert.Equal(t, f.owner.ID, sale.SoldBy)
		assert.Len(t, sale.Items, 2)
	})

	t.Run("server name resolves through the mapping", func(t *testing.T) {
		ticket := f.createTicket(t, f.owner.ID)
		code, sale := createSale(t, f.owner.ID, api.CreateSaleRequest{
			BarID:         f.bar.ID,
			TicketID:      ticket.ID,
			PaymentMethod: "card",
			ServerName:    "anna",
			Items:         items,
		})
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, f.waiter.ID, sale.SoldBy)
		assert.Equal(t, ticket.ID, sale.TicketID)
	})

	t.Run("explicit sold_by wins", func(t *testing.T) {
		code, sale := createSale(t, f.owner.ID, api.CreateSaleRequest{
			BarID:         f.bar.ID,
			PaymentMethod: "cash",
			ServerName:    "Anna",
			SoldBy:        f.owner.ID,
			Items:         items,
		})
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, f.owner.ID, sale.SoldBy)
	})

	t.Run("unmapped server name", func(t *testing.T) {
		code, _ := createSale(t, f.owner.ID, api.CreateSaleRequest{
			BarID:         f.bar.ID,
			PaymentMethod: "cash",
			ServerName:    "Nobody",
			Items:         items,
		})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("ticket of another bar", func(t *testing.T) {
		otherBar := createTestBar(t, f.s, f.owner.ID, "Other")
		w := serve(f.h.CreateTicket, newRequest(t, http.MethodPost, "/rpc/v1/create_ticket", f.owner.ID, api.CreateTicketRequest{
			BarID: otherBar.ID,
		}))
		require.Equal(t, http.StatusCreated, w.Code)
		foreign := decodeBody[api.Ticket](t, w)

		code, _ := createSale(t, f.owner.ID, api.CreateSaleRequest{
			BarID:         f.bar.ID,
			TicketID:      foreign.ID,
			PaymentMethod: "cash",
			Items:         items,
		})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("no items", func(t *testing.T) {
		code, _ := createSale(t, f.owner.ID, api.CreateSaleRequest{BarID: f.bar.ID, PaymentMethod: "cash"})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("list", func(t *testing.T) {
		w := serve(f.h.ListSales, newRequest(t, http.MethodGet, "/rest/v1/sales?bar_id="+f.bar.ID, f.waiter.ID, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody[[]api.Sale](t, w), 3)

		stranger := createTestUser(t, f.s, "stranger@example.com")
		w = serve(f.h.ListSales, newRequest(t, http.MethodGet, "/rest/v1/sales?bar_id="+f.bar.ID, stranger.ID, nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
