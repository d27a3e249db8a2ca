// Package store holds the client-side invoice cache and drives the HTTP
// adapter. Every mutation follows the same three phases: mark loading and
// clear the previous error, call the API, then either apply the server's
// authoritative record or record the failure. The cache is only ever
// modified with data the server returned.
//
// The mutex guards the cache for concurrent readers; it deliberately does
// not serialize API calls, so two overlapping mutations resolve in
// completion order with last-write-wins semantics.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/gstinvoice/invoice"
)

// DefaultPageSize is used until SetPagination overrides it.
const DefaultPageSize = 20

// API is the slice of the HTTP adapter the store drives.
type API interface {
	List(ctx context.Context, filters invoice.Filters) ([]invoice.Invoice, error)
	ListPaginated(ctx context.Context, page, pageSize int, filters invoice.Filters) (invoice.Page, error)
	Get(ctx context.Context, id int64) (invoice.Invoice, error)
	Create(ctx context.Context, data invoice.CreateInvoiceData) (invoice.Invoice, error)
	Update(ctx context.Context, id int64, data invoice.UpdateInvoiceData) (invoice.Invoice, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]invoice.Invoice, error)
	Stats(ctx context.Context) (invoice.Stats, error)
	Send(ctx context.Context, id int64, email string) error
	GenerateNumber(ctx context.Context) (string, error)
}

// Store is the invoice state container.
type Store struct {
	api API
	log zerolog.Logger

	mu             sync.Mutex
	invoices       []invoice.Invoice
	current        *invoice.Invoice
	loading        bool
	loadingMessage string
	lastError      string
	filters        invoice.Filters
	stats          invoice.Stats
	page           int
	pageSize       int
	totalRecords   int
	totalPages     int
}

// Option customises a Store.
type Option func(*Store)

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New builds a Store over the given API adapter.
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:      api,
		log:      zerolog.Nop(),
		page:     1,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin enters the loading phase and clears the previous error.
func (s *Store) begin(message string) {
	s.mu.Lock()
	s.loading = true
	s.loadingMessage = message
	s.lastError = ""
	s.mu.Unlock()
}

// fail leaves the loading phase recording the failure. The cache keeps its
// pre-call contents.
func (s *Store) fail(op string, err error) {
	s.mu.Lock()
	s.loading = false
	s.loadingMessage = ""
	s.lastError = err.Error()
	s.mu.Unlock()
	s.log.Error().Err(err).Str("op", op).Msg("store operation failed")
}

// finish leaves the loading phase after a successful call.
func (s *Store) finish() {
	s.mu.Lock()
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
}

// Fetch loads the invoice list for the current filters into the cache.
func (s *Store) Fetch(ctx context.Context) error {
	s.begin("Loading invoices...")
	invoices, err := s.api.List(ctx, s.Filters())
	if err != nil {
		s.fail("fetch", err)
		return err
	}
	s.mu.Lock()
	s.invoices = invoices
	s.totalRecords = len(invoices)
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	return nil
}

// FetchPage loads one page of invoices into the cache.
func (s *Store) FetchPage(ctx context.Context) error {
	s.begin("Loading invoices...")
	s.mu.Lock()
	page, pageSize, filters := s.page, s.pageSize, s.filters
	s.mu.Unlock()
	result, err := s.api.ListPaginated(ctx, page, pageSize, filters)
	if err != nil {
		s.fail("fetch_page", err)
		return err
	}
	s.mu.Lock()
	s.invoices = result.Data
	s.totalRecords = result.Total
	s.totalPages = result.TotalPages
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	return nil
}

// FetchByID loads a single invoice and makes it current. The list entry, if
// cached, is refreshed with the fetched record.
func (s *Store) FetchByID(ctx context.Context, id int64) (invoice.Invoice, error) {
	s.begin("Loading invoice...")
	inv, err := s.api.Get(ctx, id)
	if err != nil {
		s.fail("fetch_by_id", err)
		return invoice.Invoice{}, err
	}
	s.mu.Lock()
	s.current = &inv
	s.replaceLocked(inv)
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	return inv, nil
}

// Create submits a new invoice; on success the server's record is prepended
// to the cache and becomes current.
func (s *Store) Create(ctx context.Context, data invoice.CreateInvoiceData) (invoice.Invoice, error) {
	s.begin("Creating invoice...")
	inv, err := s.api.Create(ctx, data)
	if err != nil {
		s.fail("create", err)
		return invoice.Invoice{}, err
	}
	s.mu.Lock()
	s.invoices = append([]invoice.Invoice{inv}, s.invoices...)
	s.current = &inv
	s.totalRecords++
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	s.log.Info().Int64("id", inv.ID).Str("invoice_number", inv.InvoiceNumber).Msg("invoice created")
	return inv, nil
}

// Update overwrites an existing invoice; on success the cached entry and the
// current invoice are replaced with the server's record.
func (s *Store) Update(ctx context.Context, id int64, data invoice.UpdateInvoiceData) (invoice.Invoice, error) {
	s.begin("Updating invoice...")
	inv, err := s.api.Update(ctx, id, data)
	if err != nil {
		s.fail("update", err)
		return invoice.Invoice{}, err
	}
	s.mu.Lock()
	s.replaceLocked(inv)
	if s.current != nil && s.current.ID == inv.ID {
		s.current = &inv
	}
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	s.log.Info().Int64("id", inv.ID).Msg("invoice updated")
	return inv, nil
}

// Delete removes an invoice; on success it disappears from the cache and is
// cleared as current if it was.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.begin("Deleting invoice...")
	if err := s.api.Delete(ctx, id); err != nil {
		s.fail("delete", err)
		return err
	}
	s.mu.Lock()
	for i, inv := range s.invoices {
		if inv.ID == id {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			s.totalRecords--
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	s.log.Info().Int64("id", id).Msg("invoice deleted")
	return nil
}

// Search replaces the cache with invoices matching a free-text query.
func (s *Store) Search(ctx context.Context, query string) error {
	s.begin("Searching invoices...")
	invoices, err := s.api.Search(ctx, query)
	if err != nil {
		s.fail("search", err)
		return err
	}
	s.mu.Lock()
	s.invoices = invoices
	s.totalRecords = len(invoices)
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	return nil
}

// Send asks the server to email an invoice; on success the cached record is
// moved to the sent status without a refetch.
func (s *Store) Send(ctx context.Context, id int64, email string) error {
	s.begin("Sending invoice...")
	if err := s.api.Send(ctx, id, email); err != nil {
		s.fail("send", err)
		return err
	}
	s.mu.Lock()
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices[i].Status = invoice.StatusSent
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current.Status = invoice.StatusSent
	}
	s.loading = false
	s.loadingMessage = ""
	s.mu.Unlock()
	s.log.Info().Int64("id", id).Msg("invoice sent")
	return nil
}

// FetchStats refreshes the aggregate statistics. Stats are decorative, so a
// failure is logged but never surfaces as the store error.
func (s *Store) FetchStats(ctx context.Context) {
	stats, err := s.api.Stats(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to fetch invoice stats")
		return
	}
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
}

// GenerateNumber asks the server for the next free invoice number.
func (s *Store) GenerateNumber(ctx context.Context) (string, error) {
	number, err := s.api.GenerateNumber(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return "", err
	}
	return number, nil
}

// Refresh refetches the current page and the statistics.
func (s *Store) Refresh(ctx context.Context) error {
	s.FetchStats(ctx)
	return s.Fetch(ctx)
}

// replaceLocked swaps the cached entry with the same ID. Callers hold s.mu.
func (s *Store) replaceLocked(inv invoice.Invoice) {
	for i := range s.invoices {
		if s.invoices[i].ID == inv.ID {
			s.invoices[i] = inv
			return
		}
	}
}

// Invoices returns a snapshot of the cached invoice list.
func (s *Store) Invoices() []invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]invoice.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Current returns the currently selected invoice, if any.
func (s *Store) Current() (invoice.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return invoice.Invoice{}, false
	}
	return *s.current, true
}

// Loading reports whether a mutation is in flight, with its progress message.
func (s *Store) Loading() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading, s.loadingMessage
}

// LastError returns the message of the most recent failure, or "" when the
// last operation succeeded.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError discards the recorded failure.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// Stats returns the cached aggregate statistics.
func (s *Store) Stats() invoice.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Filters returns the active listing filters.
func (s *Store) Filters() invoice.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters merges the given criteria into the active filters; zero-valued
// fields keep their current setting. Callers refetch to apply them, and use
// ClearFilters to drop criteria.
func (s *Store) SetFilters(f invoice.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(f.Statuses) > 0 {
		s.filters.Statuses = f.Statuses
	}
	if f.CustomerID != 0 {
		s.filters.CustomerID = f.CustomerID
	}
	if !f.DateFrom.IsZero() {
		s.filters.DateFrom = f.DateFrom
	}
	if !f.DateTo.IsZero() {
		s.filters.DateTo = f.DateTo
	}
	if f.Search != "" {
		s.filters.Search = f.Search
	}
	if f.PaymentTerms != "" {
		s.filters.PaymentTerms = f.PaymentTerms
	}
	if !f.MinAmount.IsZero() {
		s.filters.MinAmount = f.MinAmount
	}
	if !f.MaxAmount.IsZero() {
		s.filters.MaxAmount = f.MaxAmount
	}
}

// ClearFilters drops all listing filters.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.filters = invoice.Filters{}
	s.mu.Unlock()
}

// SetPagination moves to the given page and page size.
func (s *Store) SetPagination(page, pageSize int) {
	s.mu.Lock()
	if page > 0 {
		s.page = page
	}
	if pageSize > 0 {
		s.pageSize = pageSize
	}
	s.mu.Unlock()
}

// Pagination returns the active page, page size, total record count and
// total page count.
func (s *Store) Pagination() (page, pageSize, totalRecords, totalPages int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.pageSize, s.totalRecords, s.totalPages
}

// Reset returns the store to its initial empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	s.invoices = nil
	s.current = nil
	s.loading = false
	s.loadingMessage = ""
	s.lastError = ""
	s.filters = invoice.Filters{}
	s.stats = invoice.Stats{}
	s.page = 1
	s.pageSize = DefaultPageSize
	s.totalRecords = 0
	s.totalPages = 0
	s.mu.Unlock()
}

// InvoiceByID looks up a cached invoice by ID.
func (s *Store) InvoiceByID(id int64) (invoice.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return invoice.Invoice{}, false
}

// InvoiceByNumber looks up a cached invoice by its invoice number.
func (s *Store) InvoiceByNumber(number string) (invoice.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.InvoiceNumber == number {
			return inv, true
		}
	}
	return invoice.Invoice{}, false
}

// ByStatus returns the cached invoices in the given lifecycle state.
func (s *Store) ByStatus(status invoice.Status) []invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []invoice.Invoice
	for _, inv := range s.invoices {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// Drafts returns the cached draft invoices.
func (s *Store) Drafts() []invoice.Invoice { return s.ByStatus(invoice.StatusDraft) }

// Sent returns the cached sent invoices.
func (s *Store) Sent() []invoice.Invoice { return s.ByStatus(invoice.StatusSent) }

// Paid returns the cached paid invoices.
func (s *Store) Paid() []invoice.Invoice { return s.ByStatus(invoice.StatusPaid) }

// Overdue returns the cached invoices whose due date has passed and that are
// still collectible, regardless of their stored status.
func (s *Store) Overdue() []invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []invoice.Invoice
	for _, inv := range s.invoices {
		if inv.Status == invoice.StatusOverdue || invoice.IsInvoiceOverdue(inv.DueDate, inv.Status) {
			out = append(out, inv)
		}
	}
	return out
}

// TotalRevenue sums the total amount of the cached paid invoices.
func (s *Store) TotalRevenue() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, inv := range s.invoices {
		if inv.Status == invoice.StatusPaid {
			total = total.Add(inv.TotalAmount)
		}
	}
	return total
}

// OutstandingAmount sums the total amount of the cached invoices that are
// sent or overdue.
func (s *Store) OutstandingAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, inv := range s.invoices {
		if inv.Status == invoice.StatusSent || inv.Status == invoice.StatusOverdue {
			total = total.Add(inv.TotalAmount)
		}
	}
	return total
}

// HasInvoices reports whether the cache holds any invoices.
func (s *Store) HasInvoices() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices) > 0
}

// TotalInvoices returns the number of cached invoices.
func (s *Store) TotalInvoices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}
