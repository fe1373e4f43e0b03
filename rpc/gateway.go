package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dimfeld/httptreemux/v5"
	"github.com/make87/rosrpc/internal/naming"
	"github.com/monadicstack/respond"
)

// HealthPath is the route every gateway answers on so that clients can poll
// for service availability before making real calls.
const HealthPath = "/health"

// NewGateway creates a wrapper around your raw service to expose it via HTTP
// for RPC calls. Every gateway automatically serves a health endpoint that the
// client's WaitForService() polls.
func NewGateway(options ...GatewayOption) Gateway {
	router := httptreemux.New()
	gw := Gateway{
		Router:      router,
		routerGroup: router.UsingContext(),
		Binder:      jsonBinder{},
		middleware:  middlewarePipeline{},
		PathPrefix:  "",
	}
	for _, option := range options {
		option(&gw)
	}

	// Panic recovery always runs first so that user-provided middleware is
	// covered too.
	mw := middlewarePipeline{
		MiddlewareFunc(recoverFromPanic),
	}
	gw.middleware = append(mw, gw.middleware...)

	gw.routerGroup.GET(naming.JoinPath(gw.PathPrefix, HealthPath), healthHandler)
	return gw
}

// GatewayOption defines a setting you can apply when creating an RPC gateway
// via NewGateway().
type GatewayOption func(*Gateway)

// WithPathPrefix sets the path segment (e.g. "v2") inserted between the host
// and every endpoint path, the health route included.
func WithPathPrefix(prefix string) GatewayOption {
	return func(gw *Gateway) {
		gw.PathPrefix = prefix
	}
}

// WithBinder allows you to override a Gateway's default JSON-body binding
// behavior with the custom behavior of your choice.
func WithBinder(binder Binder) GatewayOption {
	return func(gw *Gateway) {
		gw.Binder = binder
	}
}

// Gateway wrangles all of the incoming RPC/HTTP handling for your service
// calls. It converts transport data into your Go request struct, and marshals
// your service response struct back to the caller. Aside from feeding this to
// http.ListenAndServe() you likely won't interact with this at all yourself.
type Gateway struct {
	// Name is the display name of the service this gateway fronts.
	Name string
	// Router is the HTTP mux that does the actual request routing work.
	Router *httptreemux.TreeMux
	// Binder decodes incoming request bodies onto service request structs.
	Binder Binder
	// PathPrefix sits in front of every endpoint path (e.g. "v2").
	PathPrefix string
	// routerGroup is a reference to the mux that lets standard
	// http.HandlerFunc instances be registered.
	routerGroup *httptreemux.ContextGroup
	// middleware is the chain applied to every registered endpoint handler.
	middleware middlewarePipeline
}

// Register the operation with the gateway so that it can be invoked remotely.
func (gw *Gateway) Register(endpoint Endpoint) {
	path := naming.JoinPath(gw.PathPrefix, endpoint.Path)
	method := strings.ToUpper(endpoint.Method)
	gw.routerGroup.Handle(method, path, gw.middleware.Then(endpoint.Handler))
}

// ServeHTTP is the central HTTP handler covering routing, middleware, and
// service forwarding. It stashes the gateway on the request context so that
// built-in handlers (like the health route) see the fully configured gateway,
// even fields you assigned after NewGateway() returned.
func (gw Gateway) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := context.WithValue(req.Context(), contextKeyGateway{}, &gw)
	gw.Router.ServeHTTP(w, req.WithContext(ctx))
}

type contextKeyGateway struct{}

// healthHandler answers availability probes. The payload is informational; the
// 200 status is the contract.
func healthHandler(w http.ResponseWriter, req *http.Request) {
	name := ""
	if gw, ok := req.Context().Value(contextKeyGateway{}).(*Gateway); ok {
		name = gw.Name
	}
	respond.To(w, req).Ok(healthStatus{Status: "up", Service: name})
}

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Endpoint describes an operation that we expose through an RPC gateway.
type Endpoint struct {
	// The HTTP method that should be used when exposing this endpoint.
	Method string
	// The HTTP path pattern that should be used when exposing this endpoint.
	Path string
	// ServiceName is the name of the service that this operation is part of.
	ServiceName string
	// Name is the name of the function/operation that this endpoint describes.
	Name string
	// Handler is the gateway function that does the "work".
	Handler http.HandlerFunc
}

// String just returns the fully qualified "Service.Operation" descriptor.
func (e Endpoint) String() string {
	return e.ServiceName + "." + e.Name
}

// Binder performs the work of taking the meaningful values from an incoming
// request and applying them to a Go struct (likely the "XxxRequest" for your
// service method).
type Binder interface {
	Bind(req *http.Request, out interface{}) error
}

// jsonBinder is the default gateway binder that decodes the JSON request body
// onto service request models. Requests without bodies bind to the zero value.
type jsonBinder struct {
}

func (b jsonBinder) Bind(req *http.Request, out interface{}) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	if err := json.NewDecoder(req.Body).Decode(out); err != nil {
		return fmt.Errorf("binding error: %w", err)
	}
	return nil
}
