package cli

import (
	"fmt"

	"github.com/make87/rosrpc/endpoints"
	"github.com/spf13/cobra"
)

// ResolveNameRequest contains all of the CLI options used in the "rosrpc resolve" command.
type ResolveNameRequest struct {
	// EndpointName is the logical endpoint name to look up.
	EndpointName string
	// Default is the fallback value when resolution fails (the "--default" option).
	Default string
}

// ResolveName handles the registration and execution of the 'rosrpc resolve'
// CLI subcommand. It's a quick way to see what service name a given ENDPOINTS
// value produces without running the demo.
type ResolveName struct{}

// Command creates the Cobra struct describing this CLI command and its options.
func (c ResolveName) Command() *cobra.Command {
	request := &ResolveNameRequest{}
	cmd := &cobra.Command{
		Use:   "resolve [flags] ENDPOINT_NAME",
		Short: "Print the service name that the ENDPOINTS directory resolves for a logical endpoint.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request.EndpointName = args[0]
			return c.Exec(request)
		},
	}
	cmd.Flags().StringVar(&request.Default, "default", DefaultService, "Fallback value when resolution fails")
	return cmd
}

// Exec performs the lookup and prints the resolved (or fallback) service name.
func (c ResolveName) Exec(request *ResolveNameRequest) error {
	fmt.Println(endpoints.Resolve(request.EndpointName, request.Default))
	return nil
}
