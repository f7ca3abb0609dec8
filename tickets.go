package tecnifix

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tecnifix/tecnifix-go/routes"
)

// Ticket statuses and priorities are backend-defined strings. The
// constants below are the literals the backend is known to use; the
// client never validates against them, so new values flow through
// untouched.
const (
	TicketStatusPending    = "Pendiente"
	TicketStatusInProgress = "En progreso"
	TicketStatusResolved   = "Resuelto"

	TicketPriorityLow    = "BAJA"
	TicketPriorityMedium = "MEDIA"
	TicketPriorityHigh   = "ALTA"
)

// Ticket represents a repair ticket. JSON field names follow the
// backend's wire contract.
type Ticket struct {
	ID             int64   `json:"id"`
	CustomerEmail  string  `json:"clienteEmail"`
	Problem        string  `json:"descripcionProblema"`
	Status         string  `json:"estado"`
	Solution       string  `json:"solucion,omitempty"`
	Price          float64 `json:"precio,omitempty"`
	Priority       string  `json:"prioridad,omitempty"`
	NotifyCustomer bool    `json:"notificarCliente,omitempty"`
}

// TicketCreateRequest contains the fields to open a new ticket.
type TicketCreateRequest struct {
	CustomerEmail string  `json:"clienteEmail"`
	Problem       string  `json:"descripcionProblema"`
	Status        string  `json:"estado"`
	Solution      string  `json:"solucion,omitempty"`
	Price         float64 `json:"precio,omitempty"`
	Priority      string  `json:"prioridad,omitempty"`
}

// TicketUpdateRequest is a full replacement of a ticket's mutable
// fields (the backend updates via PUT, not PATCH). NotifyCustomer nil
// lets the backend keep its default of notifying.
type TicketUpdateRequest struct {
	CustomerEmail  string  `json:"clienteEmail"`
	Problem        string  `json:"descripcionProblema"`
	Status         string  `json:"estado"`
	Solution       string  `json:"solucion,omitempty"`
	Price          float64 `json:"precio,omitempty"`
	Priority       string  `json:"prioridad,omitempty"`
	NotifyCustomer *bool   `json:"notificarCliente,omitempty"`
}

// TicketsClient provides methods to manage repair tickets. All
// operations require an admin credential; the backend rejects others
// with 401/403.
type TicketsClient struct {
	client *Client
}

func (c *TicketsClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("tecnifix: tickets client not initialized")
	}
	return nil
}

// List returns all tickets.
func (c *TicketsClient) List(ctx context.Context) ([]Ticket, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	var tickets []Ticket
	if err := c.client.sendAndDecode(ctx, http.MethodGet, routes.Tickets, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Create opens a new ticket and returns it as stored by the backend.
func (c *TicketsClient) Create(ctx context.Context, req TicketCreateRequest) (Ticket, error) {
	if err := c.ensureInitialized(); err != nil {
		return Ticket{}, err
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return Ticket{}, ConfigError{Reason: "customer email required"}
	}
	if !isValidEmail(req.CustomerEmail) {
		return Ticket{}, ConfigError{Reason: "invalid customer email format"}
	}
	if strings.TrimSpace(req.Problem) == "" {
		return Ticket{}, ConfigError{Reason: "problem description required"}
	}
	if req.Status == "" {
		req.Status = TicketStatusPending
	}
	var ticket Ticket
	if err := c.client.sendAndDecode(ctx, http.MethodPost, routes.Tickets, req, &ticket); err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

// Update replaces a ticket's fields and returns the updated ticket.
func (c *TicketsClient) Update(ctx context.Context, id int64, req TicketUpdateRequest) (Ticket, error) {
	if err := c.ensureInitialized(); err != nil {
		return Ticket{}, err
	}
	if id <= 0 {
		return Ticket{}, ConfigError{Reason: "ticket id required"}
	}
	var ticket Ticket
	if err := c.client.sendAndDecode(ctx, http.MethodPut, ticketPath(id), req, &ticket); err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

// Delete removes a ticket.
func (c *TicketsClient) Delete(ctx context.Context, id int64) error {
	if err := c.ensureInitialized(); err != nil {
		return err
	}
	if id <= 0 {
		return ConfigError{Reason: "ticket id required"}
	}
	return c.client.sendAndDecode(ctx, http.MethodDelete, ticketPath(id), nil, nil)
}

func ticketPath(id int64) string {
	return strings.ReplaceAll(routes.TicketsByID, "{ticket_id}", fmt.Sprintf("%d", id))
}

// FilterTickets returns the tickets whose customer email, status, or
// priority starts with the search term, case-insensitively. An empty
// term matches everything. This mirrors the dashboard's client-side
// search; it never touches the network.
func FilterTickets(tickets []Ticket, term string) []Ticket {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return tickets
	}
	var out []Ticket
	for _, t := range tickets {
		if strings.HasPrefix(strings.ToLower(t.CustomerEmail), term) ||
			strings.HasPrefix(strings.ToLower(t.Status), term) ||
			strings.HasPrefix(strings.ToLower(t.Priority), term) {
			out = append(out, t)
		}
	}
	return out
}
