package main

import (
	"os"

	"github.com/make87/rosrpc/cli"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosrpc",
		Short: "Demo RPC client/server that resolves service names from the ENDPOINTS directory.",
	}
	rootCmd.AddCommand(cli.RunServer{}.Command())
	rootCmd.AddCommand(cli.RunClient{}.Command())
	rootCmd.AddCommand(cli.ResolveName{}.Command())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
