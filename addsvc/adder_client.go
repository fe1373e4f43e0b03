package addsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/make87/rosrpc/rpc"
)

// NewAdderServiceClient creates an RPC client that conforms to the
// AdderService interface, but delegates work to a remote instance. You must
// supply the base address of the remote service gateway instance.
func NewAdderServiceClient(address string, options ...rpc.ClientOption) *AdderServiceClient {
	rpcClient := rpc.NewClient("AdderService", address, options...)
	return &AdderServiceClient{Client: rpcClient}
}

// AdderServiceClient manages all interaction w/ a remote AdderService instance
// by letting you invoke its functions as if you were doing it locally (hence...
// RPC client). You shouldn't instantiate this manually; use
// NewAdderServiceClient() to properly set this up.
type AdderServiceClient struct {
	rpc.Client
}

// Add asks the remote service for the sum of the two request integers.
func (client *AdderServiceClient) Add(ctx context.Context, request *AddRequest) (*AddResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("precondition failed: nil context")
	}
	if request == nil {
		return nil, fmt.Errorf("precondition failed: nil request")
	}

	response := &AddResponse{}
	err := client.Invoke(ctx, "POST", "/AdderService.Add", request, response)
	return response, err
}

// WaitUntilReady blocks until the remote service answers health probes,
// checking once per interval. Use the context to bound how long you're willing
// to wait.
func (client *AdderServiceClient) WaitUntilReady(ctx context.Context, interval time.Duration) error {
	return client.WaitForService(ctx, interval)
}
