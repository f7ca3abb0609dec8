package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	tecnifix "github.com/tecnifix/tecnifix-go"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tecnifix %s (%s, %s/%s)\n",
				tecnifix.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
