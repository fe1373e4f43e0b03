package rpc

import (
	"net/http"

	"github.com/monadicstack/respond"
)

// WithMiddleware invokes this chain of work before executing the actual HTTP
// handler for your service call. Handlers conform to the 'negroni' middleware
// signature, so anything from that ecosystem drops in here.
func WithMiddleware(mw ...Middleware) GatewayOption {
	return func(gw *Gateway) {
		gw.middleware = mw
	}
}

// WithMiddlewareFunc invokes this chain of work before executing the actual
// HTTP handler for your service call.
func WithMiddlewareFunc(funcs ...MiddlewareFunc) GatewayOption {
	mw := make(middlewarePipeline, len(funcs))
	for i, fn := range funcs {
		mw[i] = fn
	}
	return WithMiddleware(mw...)
}

// Middleware is a component that conforms to the 'negroni' middleware handler.
// It accepts the standard HTTP inputs as well as the rest of the computation.
type Middleware interface {
	ServeHTTP(w http.ResponseWriter, req *http.Request, next http.HandlerFunc)
}

// MiddlewareFunc is a component that conforms to the 'negroni' middleware
// function. It accepts the standard HTTP inputs as well as the rest of the
// computation.
type MiddlewareFunc func(w http.ResponseWriter, req *http.Request, next http.HandlerFunc)

// ServeHTTP basically calls itself. This is a mechanism that lets middleware
// functions be passed around the same as a full middleware handler component.
func (mw MiddlewareFunc) ServeHTTP(w http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	mw(w, req, next)
}

// middlewarePipeline is the chain a gateway applies to every service endpoint
// it registers: the built-in recovery handler first, then whatever the caller
// supplied via WithMiddleware, then the endpoint handler itself.
type middlewarePipeline []Middleware

// Then wraps the whole pipeline around the "real work" handler, producing a
// single handler function the router can register.
func (pipeline middlewarePipeline) Then(handler http.HandlerFunc) http.HandlerFunc {
	for i := len(pipeline) - 1; i >= 0; i-- {
		mw := pipeline[i]
		next := handler
		handler = func(res http.ResponseWriter, req *http.Request) {
			mw.ServeHTTP(res, req, next)
		}
	}
	return handler
}

// recoverFromPanic automatically recovers from a panic thrown by your handler
// so that if you nil-pointer or something else unexpected, we'll safely just
// return a 500-style error. Every gateway pipeline starts with this.
func recoverFromPanic(w http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	defer func() {
		if err := recover(); err != nil {
			respond.To(w, req).InternalServerError("%v", err)
		}
	}()
	next(w, req)
}
