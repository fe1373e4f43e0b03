package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/make87/rosrpc/internal/naming"
	"github.com/make87/rosrpc/rpc/errors"
)

// NewClient constructs the RPC client that does the "heavy lifting" when
// communicating with a remote service gateway. It knows how to marshal and
// unmarshal the JSON request/response bodies and how to wait around for the
// remote service to become available in the first place.
func NewClient(name string, addr string, options ...ClientOption) Client {
	defaultTimeout := 30 * time.Second
	client := Client{
		HTTP: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: defaultTimeout}).DialContext,
				TLSHandshakeTimeout: defaultTimeout,
			},
		},
		Name:    name,
		BaseURL: strings.TrimSuffix(addr, "/"),
	}
	for _, option := range options {
		option(&client)
	}
	return client
}

// WithHTTPClient allows you to provide an HTTP client configured to your
// liking. You do not *need* to supply this. The default client already
// implements a 30 second timeout, but if you want a different timeout or a
// custom dialer/transport/etc, feed your client in here and we'll use that one
// for all HTTP communication with the remote service.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(rpcClient *Client) {
		rpcClient.HTTP = httpClient
	}
}

// ClientOption is a single configurable setting that modifies some attribute
// of the RPC client when building one via NewClient().
type ClientOption func(*Client)

// Client manages all RPC communication with a remote service. It uses HTTP
// under the hood, so you can supply a custom HTTP client by including
// WithHTTPClient() when calling your client constructor.
type Client struct {
	// HTTP takes care of the raw HTTP request/response logic used when
	// communicating with the remote service.
	HTTP *http.Client
	// BaseURL contains the protocol/host/port that prefixes all service
	// endpoints (e.g. "http://api.myawesomeapp.com").
	BaseURL string
	// PathPrefix sits between the host/port and the endpoint path (e.g.
	// something like "v2") so that you can segment/version your services.
	// Typically this will be the same as the gateway's path prefix.
	PathPrefix string
	// Name is just the display name of the service; used only for
	// debugging/logging purposes.
	Name string
}

// Invoke handles the standard request/response logic used to call a service
// method on the remote service. You should NOT call this yourself. Instead,
// stick to the strongly typed service functions on your client.
func (c Client) Invoke(ctx context.Context, method string, path string, serviceRequest interface{}, serviceResponse interface{}) error {
	address := c.BaseURL + naming.JoinPath(c.PathPrefix, path)

	body, err := c.createRequestBody(method, serviceRequest)
	if err != nil {
		return fmt.Errorf("rpc: unable to create request body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, method, address, body)
	if err != nil {
		return fmt.Errorf("rpc: unable to create request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.HTTP.Do(request)
	if err != nil {
		return fmt.Errorf("rpc: round trip error: %w", err)
	}
	defer response.Body.Close()

	// Based on the status code, either fill in the "out" struct (service
	// response) with the unmarshaled JSON or respond a properly formed error.
	if response.StatusCode >= 400 {
		return c.newStatusError(response)
	}

	err = json.NewDecoder(response.Body).Decode(serviceResponse)
	if err != nil {
		return fmt.Errorf("rpc: unable to decode response: %w", err)
	}
	return nil
}

// WaitForService blocks until the remote gateway's health endpoint answers,
// polling once per interval. It gives up only when the context is
// cancelled or hits its deadline, returning a 503-style error in that case.
// This is how a client process started before its service comes up avoids
// failing its first real call.
func (c Client) WaitForService(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	for {
		if c.serviceAvailable(ctx) {
			return nil
		}
		log.Printf("[rosrpc] waiting for service %s to appear...", c.Name)

		select {
		case <-ctx.Done():
			return errors.Unavailable("rpc: interrupted while waiting for service %s: %v", c.Name, ctx.Err())
		case <-time.After(interval):
		}
	}
}

// serviceAvailable fires a single health probe at the gateway. Any transport
// error or non-200 answer counts as "not yet".
func (c Client) serviceAvailable(ctx context.Context) bool {
	address := c.BaseURL + naming.JoinPath(c.PathPrefix, HealthPath)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return false
	}

	response, err := c.HTTP.Do(request)
	if err != nil {
		return false
	}
	defer response.Body.Close()
	_, _ = io.Copy(ioutil.Discard, response.Body)
	return response.StatusCode == http.StatusOK
}

// newStatusError takes the response (assumed to be a 400+ status already) and
// creates an RPCError with the proper HTTP status as it tries to preserve the
// original error's message.
func (c Client) newStatusError(r *http.Response) error {
	errData, _ := ioutil.ReadAll(r.Body)
	contentType := r.Header.Get("Content-Type")

	// If the server didn't return JSON, assume that it's just plain text w/ the
	// message to propagate as you'd get if you invoked `http.Error()`
	if !strings.HasPrefix(contentType, "application/json") {
		return errors.New(r.StatusCode, "rpc: %s", string(errData))
	}

	// As JSON, it's likely that the JSON is one of these formats:
	//
	// "Just the message"
	//    or
	// {"status":404, "message": "not found, dummy"}
	//
	// Based on what it looks like, unmarshal accordingly.
	if strings.HasPrefix(string(errData), `"`) {
		err := ""
		_ = json.Unmarshal(errData, &err)
		return errors.New(r.StatusCode, "rpc error: %s", err)
	}
	if strings.HasPrefix(string(errData), `{`) {
		err := errors.RPCError{}
		_ = json.Unmarshal(errData, &err)
		return errors.New(r.StatusCode, "rpc error: %s", err.Error())
	}

	// It's JSON, but it's a format we don't recognize, so no message for you.
	// Keep the status, though.
	return errors.New(r.StatusCode, "rpc error")
}

func (c Client) createRequestBody(method string, serviceRequest interface{}) (io.Reader, error) {
	// GET/DELETE style calls carry no body in this RPC dialect.
	if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
		return nil, nil
	}
	body := &bytes.Buffer{}
	err := json.NewEncoder(body).Encode(serviceRequest)
	return body, err
}
