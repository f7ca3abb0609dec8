package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	tecnifix "github.com/tecnifix/tecnifix-go"
	"github.com/tecnifix/tecnifix-go/session"
)

func ticketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Manage repair tickets (admin only)",
	}
	cmd.AddCommand(
		ticketsListCmd(),
		ticketsCreateCmd(),
		ticketsUpdateCmd(),
		ticketsDeleteCmd(),
	)
	return cmd
}

func ticketsListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets, optionally filtered by email/status/priority prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRole(session.RoleAdmin); err != nil {
				return err
			}
			tickets, err := a.client.Tickets.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", tecnifix.UserMessage(err))
			}
			tickets = tecnifix.FilterTickets(tickets, search)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCUSTOMER\tSTATUS\tPRIORITY\tPRICE\tPROBLEM")
			for _, t := range tickets {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\n",
					t.ID, t.CustomerEmail, t.Status, t.Priority, t.Price, t.Problem)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "prefix filter on customer email, status, or priority")

	return cmd
}

func ticketsCreateCmd() *cobra.Command {
	var req tecnifix.TicketCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRole(session.RoleAdmin); err != nil {
				return err
			}
			ticket, err := a.client.Tickets.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s", tecnifix.UserMessage(err))
			}
			fmt.Printf("Created ticket %d for %s\n", ticket.ID, ticket.CustomerEmail)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.CustomerEmail, "customer", "", "customer email (required)")
	cmd.Flags().StringVar(&req.Problem, "problem", "", "problem description (required)")
	cmd.Flags().StringVar(&req.Status, "status", tecnifix.TicketStatusPending, "ticket status")
	cmd.Flags().StringVar(&req.Solution, "solution", "", "technician solution")
	cmd.Flags().Float64Var(&req.Price, "price", 0, "service price")
	cmd.Flags().StringVar(&req.Priority, "priority", tecnifix.TicketPriorityLow, "ticket priority")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("problem")

	return cmd
}

func ticketsUpdateCmd() *cobra.Command {
	var (
		id       int64
		status   string
		solution string
		price    float64
		priority string
		notify   bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a ticket's status, solution, price, or priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRole(session.RoleAdmin); err != nil {
				return err
			}

			// The backend replaces the whole ticket on PUT, so start
			// from the current state and overlay only the flags the
			// caller set.
			tickets, err := a.client.Tickets.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", tecnifix.UserMessage(err))
			}
			var current *tecnifix.Ticket
			for i := range tickets {
				if tickets[i].ID == id {
					current = &tickets[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("ticket %d not found", id)
			}

			req := tecnifix.TicketUpdateRequest{
				CustomerEmail:  current.CustomerEmail,
				Problem:        current.Problem,
				Status:         current.Status,
				Solution:       current.Solution,
				Price:          current.Price,
				Priority:       current.Priority,
				NotifyCustomer: tecnifix.BoolPtr(true),
			}
			if cmd.Flags().Changed("status") {
				req.Status = status
			}
			if cmd.Flags().Changed("solution") {
				req.Solution = solution
			}
			if cmd.Flags().Changed("price") {
				req.Price = price
			}
			if cmd.Flags().Changed("priority") {
				req.Priority = priority
			}
			if cmd.Flags().Changed("notify") {
				req.NotifyCustomer = tecnifix.BoolPtr(notify)
			}

			updated, err := a.client.Tickets.Update(cmd.Context(), id, req)
			if err != nil {
				return fmt.Errorf("%s", tecnifix.UserMessage(err))
			}
			fmt.Printf("Updated ticket %d (%s)\n", updated.ID, updated.Status)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "ticket id (required)")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&solution, "solution", "", "new solution")
	cmd.Flags().Float64Var(&price, "price", 0, "new price")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().BoolVar(&notify, "notify", true, "notify the customer by email")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func ticketsDeleteCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRole(session.RoleAdmin); err != nil {
				return err
			}
			if err := a.client.Tickets.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", tecnifix.UserMessage(err))
			}
			fmt.Printf("Deleted ticket %d\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "ticket id (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
