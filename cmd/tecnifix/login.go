package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	tecnifix "github.com/tecnifix/tecnifix-go"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			credential, err := a.client.Users.Login(cmd.Context(), tecnifix.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("%s", tecnifix.UserMessage(err))
			}
			if err := a.sessions.Establish(credential); err != nil {
				return fmt.Errorf("store credential: %w", err)
			}
			role := a.sessions.Role()
			if role == "" {
				return fmt.Errorf("login succeeded but the credential carries no role")
			}
			fmt.Printf("Logged in as %s (%s)\n", a.sessions.Email(), role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
