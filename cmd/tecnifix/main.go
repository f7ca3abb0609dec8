// Command tecnifix is the admin console for the TecniFix repair-shop
// backend: login/logout plus ticket management, gated by the same role
// check the web dashboard used.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tecnifix",
		Short: "Admin console for the TecniFix ticketing backend",
		Long: `tecnifix manages repair tickets against the TecniFix backend.

Log in once; the credential is stored locally and attached to every
request until you log out or the backend stops honoring it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("env", envDefault(), "backend environment (local|production)")
	rootCmd.PersistentFlags().String("base-url", "", "override the backend origin")
	rootCmd.PersistentFlags().String("session-dir", "", "directory holding the stored credential")
	rootCmd.PersistentFlags().Bool("verbose", false, "log every request")

	rootCmd.AddCommand(
		loginCmd(),
		signupCmd(),
		logoutCmd(),
		whoamiCmd(),
		ticketsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func envDefault() string {
	if v := os.Getenv("TECNIFIX_ENV"); v != "" {
		return v
	}
	return "local"
}
