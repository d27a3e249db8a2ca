package session

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gstinvoice/invoice"
	"github.com/noah-isme/gstinvoice/store"
)

// fakeAPI backs the store with canned responses.
type fakeAPI struct {
	err        error
	lastCreate invoice.CreateInvoiceData
	lastUpdate invoice.UpdateInvoiceData
}

func (f *fakeAPI) List(context.Context, invoice.Filters) ([]invoice.Invoice, error) {
	return nil, f.err
}

func (f *fakeAPI) ListPaginated(context.Context, int, int, invoice.Filters) (invoice.Page, error) {
	return invoice.Page{}, f.err
}

func (f *fakeAPI) Get(context.Context, int64) (invoice.Invoice, error) {
	return invoice.Invoice{}, f.err
}

func (f *fakeAPI) Create(_ context.Context, data invoice.CreateInvoiceData) (invoice.Invoice, error) {
	if f.err != nil {
		return invoice.Invoice{}, f.err
	}
	f.lastCreate = data
	number := data.InvoiceNumber
	if number == "" {
		number = "INV-0100"
	}
	return invoice.Invoice{ID: 100, InvoiceNumber: number, Status: invoice.StatusDraft}, nil
}

func (f *fakeAPI) Update(_ context.Context, id int64, data invoice.UpdateInvoiceData) (invoice.Invoice, error) {
	if f.err != nil {
		return invoice.Invoice{}, f.err
	}
	f.lastUpdate = data
	return invoice.Invoice{ID: id, InvoiceNumber: data.InvoiceNumber, Status: data.Status}, nil
}

func (f *fakeAPI) Delete(context.Context, int64) error { return f.err }

func (f *fakeAPI) Search(context.Context, string) ([]invoice.Invoice, error) { return nil, f.err }

func (f *fakeAPI) Stats(context.Context) (invoice.Stats, error) { return invoice.Stats{}, f.err }

func (f *fakeAPI) Send(context.Context, int64, string) error { return f.err }

func (f *fakeAPI) GenerateNumber(context.Context) (string, error) { return "INV-0100", f.err }

func newEditor(t *testing.T) (*Editor, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	return NewEditor(store.New(api), "Maharashtra"), api
}

func validItem(t *testing.T) invoice.LineItem {
	t.Helper()
	item := invoice.DefaultLineItem()
	item.ProductName = "Steel Rod"
	item.Quantity = decimal.NewFromInt(2)
	item.UnitPrice = decimal.NewFromInt(100)
	item.Discount = decimal.NewFromInt(10)
	return item
}

func TestNewEditorDefaults(t *testing.T) {
	t.Parallel()

	e, _ := newEditor(t)
	data := e.Data()

	require.True(t, e.IsNew())
	require.False(t, e.IsDirty())
	require.Equal(t, invoice.TermsNet30, data.PaymentTerms)
	require.True(t, data.InvoiceDate.Equal(invoice.Today()))
	require.True(t, data.DueDate.Equal(invoice.Today().AddDays(30)))
	require.Len(t, data.LineItems, 1)
	require.Equal(t, "1", data.LineItems[0].Quantity.String())
	require.Equal(t, "18", data.LineItems[0].TaxRate.String())
}

func TestUpdateLineItemRecomputesTotals(t *testing.T) {
	t.Parallel()

	e, _ := newEditor(t)
	e.SetPlaceOfSupply("Maharashtra")
	e.UpdateLineItem(0, validItem(t))

	totals := e.Totals()
	require.Equal(t, "200", totals.Subtotal.String())
	require.Equal(t, "16.2", totals.CGST.String())
	require.Equal(t, "16.2", totals.SGST.String())
	require.Equal(t, "0", totals.IGST.String())
	require.Equal(t, "212.4", totals.TotalAmount.String())
	require.Equal(t, "212.4", e.LineItems()[0].Amount.String())
	require.True(t, e.IsDirty())
}

func TestPlaceOfSupplyFlipsTaxSplit(t *testing.T) {
	t.Parallel()

	e, _ := newEditor(t)
	e.UpdateLineItem(0, validItem(t))

	e.SetPlaceOfSupply("Karnataka")
	require.True(t, e.IsInterState())
	totals := e.Totals()
	require.Equal(t, "0", totals.CGST.String())
	require.Equal(t, "32.4", totals.IGST.String())

	e.SetPlaceOfSupply("Maharashtra")
	require.False(t, e.IsInterState())
	totals = e.Totals()
	require.Equal(t, "16.2", totals.CGST.String())
	require.Equal(t, "0", totals.IGST.String())
}

func TestAddAndRemoveLineItems(t *testing.T) {
	t.Parallel()

	e, _ := newEditor(t)
	e.AddLineItem()
	require.Len(t, e.LineItems(), 2)

	e.RemoveLineItem(1)
	require.Len(t, e.LineItems(), 1)

	// The last row cannot be removed.
	e.RemoveLineItem(0)
	require.Len(t, e.LineItems(), 1)

	// Out-of-range indexes are ignored.
	e.RemoveLineItem(5)
	e.UpdateLineItem(5, validItem(t))
	require.Len(t, e.LineItems(), 1)
}

func TestSetInvoiceDateRollsDueDate(t *testing.T) {
	t.Parallel()

	e, _ := newEditor(t)
	date := invoice.NewDate(2026, 4, 1)

	e.SetInvoiceDate(date)
	require.True(t, e.Data().DueDate.Equal(invoice.NewDate(2026, 5, 1)))

	e.SetPaymentTerms(invoice.TermsNet15)
	require.True(t, e.Data().DueDate.Equal(invoice.NewDate(2026, 4, 16)))

	e.SetPaymentTerms(invoice.TermsDueOnReceipt)
	require.True(t, e.Data().DueDate.Equal(date))
}

func TestSetCustomerDefaultsPlaceOfSupply(t *testing.T) {
	t.Parallel()

	e, _ := newEditor(t)
	e.SetCustomer(invoice.Customer{
		ID:    7,
		Name:  "Acme Traders",
		Email: "billing@acme.example",
		GSTIN: "27AAAAA0000A1Z5",
		Addresses: []invoice.CustomerAddress{
			{AddressType: invoice.AddressShipping, State: "Karnataka", IsDefault: true},
			{AddressType: invoice.AddressBilling, State: "Gujarat", IsDefault: true},
		},
	})

	data := e.Data()
	require.Equal(t, int64(7), data.CustomerID)
	require.Equal(t, "Acme Traders", data.CustomerName)
	require.Equal(t, "Gujarat", data.PlaceOfSupply)
	require.True(t, e.IsInterState())

	// An explicit place of supply is never overwritten.
	e.SetPlaceOfSupply("Maharashtra")
	e.SetCustomer(invoice.Customer{ID: 8, Name: "Other", Addresses: []invoice.CustomerAddress{
		{AddressType: invoice.AddressBilling, State: "Kerala", IsDefault: true},
	}})
	require.Equal(t, "Maharashtra", e.Data().PlaceOfSupply)
}

func TestValidateAndFieldErrors(t *testing.T) {
	t.Parallel()

	e, _ := newEditor(t)
	require.False(t, e.Validate())
	require.NotEmpty(t, e.FieldError("customerName"))
	require.NotEmpty(t, e.FieldError("placeOfSupply"))
	require.NotEmpty(t, e.ItemError(0, "productName"))
	require.Empty(t, e.ItemError(5, "productName"))
	require.False(t, e.CanSubmit())
}

func TestCommitRejectsInvalidForm(t *testing.T) {
	t.Parallel()

	e, api := newEditor(t)
	_, err := e.Commit(context.Background())
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Empty(t, api.lastCreate.CustomerName)
}

func TestCommitCreatesNewInvoice(t *testing.T) {
	t.Parallel()

	e, api := newEditor(t)
	e.SetCustomer(invoice.Customer{ID: 7, Name: "Acme Traders"})
	e.SetPlaceOfSupply("Maharashtra")
	e.UpdateLineItem(0, validItem(t))

	inv, err := e.Commit(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(100), inv.ID)
	require.Equal(t, "Acme Traders", api.lastCreate.CustomerName)
	require.False(t, e.IsNew())
	require.False(t, e.IsDirty())
	require.Equal(t, "INV-0100", e.Data().InvoiceNumber)
}

func TestCommitUpdatesExistingInvoice(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	st := store.New(api)
	existing := invoice.Invoice{
		ID:            5,
		InvoiceNumber: "INV-0005",
		InvoiceDate:   invoice.NewDate(2026, 3, 1),
		DueDate:       invoice.NewDate(2026, 3, 31),
		CustomerID:    7,
		CustomerName:  "Acme Traders",
		Status:        invoice.StatusSent,
		PaymentTerms:  invoice.TermsNet30,
		PlaceOfSupply: "Maharashtra",
		LineItems:     []invoice.LineItem{validItem(t)},
	}

	e := EditorFor(st, "Maharashtra", existing)
	require.False(t, e.IsNew())
	require.False(t, e.IsDirty())

	e.SetStatus(invoice.StatusPaid)
	_, err := e.Commit(context.Background())
	require.NoError(t, err)
	require.Equal(t, invoice.StatusPaid, api.lastUpdate.Status)
	require.Equal(t, "INV-0005", api.lastUpdate.InvoiceNumber)
}

func TestCommitSurfacesStoreFailure(t *testing.T) {
	t.Parallel()

	e, api := newEditor(t)
	e.SetCustomer(invoice.Customer{ID: 7, Name: "Acme Traders"})
	e.SetPlaceOfSupply("Maharashtra")
	e.UpdateLineItem(0, validItem(t))

	api.err = errors.New("server down")
	_, err := e.Commit(context.Background())
	require.Error(t, err)
	require.True(t, e.IsNew())
	require.True(t, e.IsDirty())
}
