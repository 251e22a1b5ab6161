package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "caterctl",
	Short: "caterctl manages a CaterHub deployment from the terminal",
	Long:  "caterctl is the operator companion to the CaterHub API server. It bootstraps the first admin account and seeds catalog reference data into the same database the server uses.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
