// Package session glues the editing surface to the domain engines. An Editor
// holds one invoice working copy, recomputes totals on every field change and
// gates submission behind validation. It is not safe for concurrent use; each
// editing session owns its Editor.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gstinvoice/invoice"
	"github.com/noah-isme/gstinvoice/store"
)

// ErrValidationFailed is returned by Commit when the working copy does not
// pass form validation.
var ErrValidationFailed = errors.New("session: invoice validation failed")

// Editor is a working copy of one invoice under edit.
type Editor struct {
	store     *store.Store
	log       zerolog.Logger
	homeState string

	id         int64
	status     invoice.Status
	data       invoice.CreateInvoiceData
	totals     invoice.TaxCalculation
	errors     invoice.FormErrors
	itemErrors []invoice.LineItemErrors
	dirty      bool
}

// Option customises an Editor.
type Option func(*Editor)

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// NewEditor opens an editor for a fresh draft invoice. homeState is the
// company's registered state, used to classify supplies as inter-state.
func NewEditor(st *store.Store, homeState string, opts ...Option) *Editor {
	today := invoice.Today()
	e := &Editor{
		store:     st,
		log:       zerolog.Nop(),
		homeState: homeState,
		status:    invoice.StatusDraft,
		data: invoice.CreateInvoiceData{
			InvoiceDate:  today,
			DueDate:      invoice.DueDateForTerms(today, invoice.TermsNet30),
			PaymentTerms: invoice.TermsNet30,
			LineItems:    []invoice.LineItem{invoice.DefaultLineItem()},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.recompute()
	return e
}

// EditorFor opens an editor pre-filled from an existing invoice.
func EditorFor(st *store.Store, homeState string, inv invoice.Invoice, opts ...Option) *Editor {
	e := NewEditor(st, homeState, opts...)
	items := make([]invoice.LineItem, len(inv.LineItems))
	copy(items, inv.LineItems)
	e.id = inv.ID
	e.status = inv.Status
	e.data = invoice.CreateInvoiceData{
		InvoiceNumber:      inv.InvoiceNumber,
		InvoiceDate:        inv.InvoiceDate,
		DueDate:            inv.DueDate,
		CustomerID:         inv.CustomerID,
		CustomerName:       inv.CustomerName,
		CustomerEmail:      inv.CustomerEmail,
		CustomerPhone:      inv.CustomerPhone,
		CustomerGSTIN:      inv.CustomerGSTIN,
		CustomerAddress:    inv.CustomerAddress,
		BillingAddress:     inv.BillingAddress,
		ShippingAddress:    inv.ShippingAddress,
		PaymentTerms:       inv.PaymentTerms,
		PlaceOfSupply:      inv.PlaceOfSupply,
		LineItems:          items,
		Notes:              inv.Notes,
		TermsAndConditions: inv.TermsAndConditions,
	}
	e.dirty = false
	e.recompute()
	return e
}

// IsNew reports whether the editor holds an unsaved draft.
func (e *Editor) IsNew() bool { return e.id == 0 }

// IsDirty reports whether the working copy has unsaved changes.
func (e *Editor) IsDirty() bool { return e.dirty }

// Data returns the current working copy.
func (e *Editor) Data() invoice.CreateInvoiceData { return e.data }

// Totals returns the monetary projection of the working copy.
func (e *Editor) Totals() invoice.TaxCalculation { return e.totals }

// IsInterState reports whether the working copy is an inter-state supply.
func (e *Editor) IsInterState() bool {
	return invoice.IsInterState(e.data.PlaceOfSupply, e.homeState)
}

// recompute refreshes every row amount and the invoice aggregates. Called
// after each mutation so the displayed totals never go stale.
func (e *Editor) recompute() {
	for i, item := range e.data.LineItems {
		e.data.LineItems[i] = invoice.UpdateLineItemAmount(item)
	}
	e.totals = invoice.CalculateInvoiceTotals(e.data.LineItems, e.IsInterState())
}

func (e *Editor) touch() {
	e.dirty = true
	e.recompute()
}

// AddLineItem appends a blank row with default values.
func (e *Editor) AddLineItem() {
	e.data.LineItems = append(e.data.LineItems, invoice.DefaultLineItem())
	e.touch()
}

// RemoveLineItem deletes the row at index. The last remaining row cannot be
// removed; an invoice always keeps at least one.
func (e *Editor) RemoveLineItem(index int) {
	if index < 0 || index >= len(e.data.LineItems) || len(e.data.LineItems) == 1 {
		return
	}
	e.data.LineItems = append(e.data.LineItems[:index], e.data.LineItems[index+1:]...)
	if index < len(e.itemErrors) {
		e.itemErrors = append(e.itemErrors[:index], e.itemErrors[index+1:]...)
	}
	e.touch()
}

// UpdateLineItem replaces the row at index and recomputes totals.
func (e *Editor) UpdateLineItem(index int, item invoice.LineItem) {
	if index < 0 || index >= len(e.data.LineItems) {
		return
	}
	e.data.LineItems[index] = item
	e.touch()
}

// LineItems returns the working copy's rows.
func (e *Editor) LineItems() []invoice.LineItem { return e.data.LineItems }

// SetInvoiceNumber sets the invoice number.
func (e *Editor) SetInvoiceNumber(number string) {
	e.data.InvoiceNumber = strings.TrimSpace(number)
	e.dirty = true
}

// SetInvoiceDate moves the invoice date and rolls the due date forward to
// match the current payment terms.
func (e *Editor) SetInvoiceDate(d invoice.Date) {
	e.data.InvoiceDate = d
	e.data.DueDate = invoice.DueDateForTerms(d, e.data.PaymentTerms)
	e.touch()
}

// SetDueDate overrides the due date directly.
func (e *Editor) SetDueDate(d invoice.Date) {
	e.data.DueDate = d
	e.touch()
}

// SetPaymentTerms changes the payment terms and recomputes the due date from
// the invoice date.
func (e *Editor) SetPaymentTerms(terms invoice.PaymentTerms) {
	e.data.PaymentTerms = terms
	e.data.DueDate = invoice.DueDateForTerms(e.data.InvoiceDate, terms)
	e.touch()
}

// SetPlaceOfSupply changes the place of supply; totals are recomputed since
// the supply may flip between intra-state and inter-state.
func (e *Editor) SetPlaceOfSupply(state string) {
	e.data.PlaceOfSupply = state
	e.touch()
}

// SetCustomer fills the customer fields from a customer record and defaults
// the place of supply to the customer's default billing state when one is
// known and none is set yet.
func (e *Editor) SetCustomer(c invoice.Customer) {
	e.data.CustomerID = c.ID
	e.data.CustomerName = c.Name
	e.data.CustomerEmail = c.Email
	e.data.CustomerPhone = c.Phone
	e.data.CustomerGSTIN = c.GSTIN
	if e.data.PlaceOfSupply == "" {
		for _, addr := range c.Addresses {
			if addr.AddressType == invoice.AddressBilling && addr.IsDefault {
				e.data.PlaceOfSupply = addr.State
				break
			}
		}
	}
	e.touch()
}

// SetNotes sets the free-form notes.
func (e *Editor) SetNotes(notes string) {
	e.data.Notes = notes
	e.dirty = true
}

// SetTermsAndConditions sets the printed terms text.
func (e *Editor) SetTermsAndConditions(text string) {
	e.data.TermsAndConditions = text
	e.dirty = true
}

// SetStatus moves the invoice to a new lifecycle state. Only meaningful when
// editing an existing invoice.
func (e *Editor) SetStatus(status invoice.Status) {
	if !status.IsValid() {
		return
	}
	e.status = status
	e.dirty = true
}

// Validate runs form and row validation over the working copy and records
// the results for FieldError and ItemError lookups.
func (e *Editor) Validate() bool {
	e.errors = invoice.ValidateInvoiceForm(e.data)
	e.itemErrors = make([]invoice.LineItemErrors, len(e.data.LineItems))
	for i, item := range e.data.LineItems {
		e.itemErrors[i] = invoice.ValidateLineItem(item)
	}
	return e.CanSubmit()
}

// CanSubmit reports whether the last Validate pass found no errors.
func (e *Editor) CanSubmit() bool {
	if e.errors.HasErrors() {
		return false
	}
	for _, item := range e.itemErrors {
		if item.HasErrors() {
			return false
		}
	}
	return true
}

// Errors returns the form-level validation results from the last Validate.
func (e *Editor) Errors() invoice.FormErrors { return e.errors }

// FieldError returns the message for a form field, or "" when valid.
func (e *Editor) FieldError(name string) string { return e.errors.Field(name) }

// ItemError returns the message for a row field, or "" when the row index or
// field is clean.
func (e *Editor) ItemError(row int, field string) string {
	if row < 0 || row >= len(e.itemErrors) {
		return ""
	}
	return e.itemErrors[row].Field(field)
}

// Commit validates the working copy and persists it through the store:
// Create for a new draft, Update for an existing invoice. On success the
// editor adopts the server's record and is clean again.
func (e *Editor) Commit(ctx context.Context) (invoice.Invoice, error) {
	if !e.Validate() {
		e.log.Debug().Strs("errors", e.errors.Messages()).Msg("invoice rejected by validation")
		return invoice.Invoice{}, ErrValidationFailed
	}

	var (
		inv invoice.Invoice
		err error
	)
	if e.IsNew() {
		inv, err = e.store.Create(ctx, e.data)
	} else {
		inv, err = e.store.Update(ctx, e.id, invoice.UpdateInvoiceData{
			CreateInvoiceData: e.data,
			Status:            e.status,
		})
	}
	if err != nil {
		return invoice.Invoice{}, err
	}

	e.id = inv.ID
	e.status = inv.Status
	e.data.InvoiceNumber = inv.InvoiceNumber
	e.dirty = false
	return inv, nil
}
