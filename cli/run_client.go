package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/make87/rosrpc/addsvc"
	"github.com/make87/rosrpc/endpoints"
	"github.com/spf13/cobra"
)

// RequesterEndpoint is the logical endpoint name the demo client resolves to
// find the adder service.
const RequesterEndpoint = "REQUESTER_ENDPOINT"

// ProviderEndpoint is the logical endpoint name the demo server resolves to
// decide which service name to expose.
const ProviderEndpoint = "PROVIDER_ENDPOINT"

// DefaultService is the service name used when the ENDPOINTS directory has
// nothing to say.
const DefaultService = "add_two_ints"

// RunClientRequest contains all of the CLI options used in the "rosrpc client" command.
type RunClientRequest struct {
	// Address is the base URL of the remote gateway (the "--address" option).
	Address string
	// A is the first number to add (the "--a" option).
	A int64
	// B is the other number to add (the "--b" option).
	B int64
	// Timeout bounds the whole exchange, availability wait included (the "--timeout" option).
	Timeout time.Duration
	// Poll is how often we probe for service availability (the "--poll" option).
	Poll time.Duration
}

// RunClient handles the registration and execution of the 'rosrpc client' CLI subcommand.
type RunClient struct{}

// Command creates the Cobra struct describing this CLI command and its options.
func (c RunClient) Command() *cobra.Command {
	request := &RunClientRequest{}
	cmd := &cobra.Command{
		Use:   "client [flags]",
		Short: "Resolve the requester endpoint, wait for the adder service, and ask it for a sum.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Exec(request)
		},
	}
	cmd.Flags().StringVar(&request.Address, "address", "http://localhost:9000", "Base URL of the remote service gateway")
	cmd.Flags().Int64Var(&request.A, "a", 41, "The first number to add")
	cmd.Flags().Int64Var(&request.B, "b", 1, "The other number to add")
	cmd.Flags().DurationVar(&request.Timeout, "timeout", 30*time.Second, "Give up on the whole exchange after this long")
	cmd.Flags().DurationVar(&request.Poll, "poll", time.Second, "How often to probe for service availability")
	return cmd
}

// Exec resolves the service name, waits for the service to appear, performs
// the addition exchange, and logs the result.
func (c RunClient) Exec(request *RunClientRequest) error {
	serviceName := endpoints.Resolve(RequesterEndpoint, DefaultService)
	log.Printf("[rosrpc] using service '%s' at %s", serviceName, request.Address)

	client := addsvc.NewAdderServiceClient(request.Address)
	client.PathPrefix = serviceName

	ctx, cancel := context.WithTimeout(context.Background(), request.Timeout)
	defer cancel()

	if err := client.WaitUntilReady(ctx, request.Poll); err != nil {
		return fmt.Errorf("client interrupted while waiting for service to appear: %w", err)
	}

	response, err := client.Add(ctx, &addsvc.AddRequest{A: request.A, B: request.B})
	if err != nil {
		return fmt.Errorf("service call failed: %w", err)
	}

	log.Printf("[rosrpc] result of %d + %d = %d", request.A, request.B, response.Sum)
	return nil
}
