package cli

import (
	"log"
	"net/http"

	"github.com/make87/rosrpc/addsvc"
	"github.com/make87/rosrpc/endpoints"
	"github.com/make87/rosrpc/rpc"
	"github.com/spf13/cobra"
	"github.com/urfave/negroni"
)

// RunServerRequest contains all of the CLI options used in the "rosrpc serve" command.
type RunServerRequest struct {
	// Address is the host:port the gateway listens on (the "--address" option).
	Address string
}

// RunServer handles the registration and execution of the 'rosrpc serve' CLI subcommand.
type RunServer struct{}

// Command creates the Cobra struct describing this CLI command and its options.
func (c RunServer) Command() *cobra.Command {
	request := &RunServerRequest{}
	cmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Run a local AdderService gateway under the resolved provider service name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Exec(request)
		},
	}
	cmd.Flags().StringVar(&request.Address, "address", ":9000", "The host:port for the gateway to listen on")
	return cmd
}

// Exec resolves the provider endpoint name, mounts the adder gateway under the
// resulting service token, and serves until the process dies.
func (c RunServer) Exec(request *RunServerRequest) error {
	serviceName := endpoints.Resolve(ProviderEndpoint, DefaultService)

	gateway := addsvc.NewAdderServiceGateway(
		addsvc.AdderServiceHandler{},
		rpc.WithPathPrefix(serviceName),
	)

	server := negroni.New(negroni.NewRecovery(), negroni.NewLogger())
	server.UseHandler(gateway)

	log.Printf("[rosrpc] AdderService '%s' listening on %s", serviceName, request.Address)
	return http.ListenAndServe(request.Address, server)
}
