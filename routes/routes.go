// Package routes provides shared API route constants used by the
// client packages to prevent path mismatches.
package routes

const (
	// Users registers a new user account.
	Users = "/users"

	// UsersLogin exchanges email/password for a bearer credential.
	// The response body is the raw credential string, not JSON.
	UsersLogin = "/users/login"

	// Tickets lists and creates repair tickets.
	Tickets = "/tickets"

	// TicketsByID updates or deletes a single ticket.
	TicketsByID = "/tickets/{ticket_id}"
)
