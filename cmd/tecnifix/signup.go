package main

import (
	"fmt"

	"github.com/spf13/cobra"

	tecnifix "github.com/tecnifix/tecnifix-go"
)

func signupCmd() *cobra.Command {
	var req tecnifix.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account (does not log you in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.client.Users.Signup(cmd.Context(), req); err != nil {
				return fmt.Errorf("%s", tecnifix.UserMessage(err))
			}
			fmt.Println("Account created. Run `tecnifix login` to start a session.")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (required)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
