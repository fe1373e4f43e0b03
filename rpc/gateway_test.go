//go:build unit
// +build unit

package rpc_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/make87/rosrpc/rpc"
	"github.com/stretchr/testify/suite"
)

type GatewaySuite struct {
	suite.Suite
}

// Every gateway should answer health probes out of the box.
func (suite *GatewaySuite) TestHealthRoute() {
	gw := rpc.NewGateway()
	gw.Name = "AdderService"

	w := httptest.NewRecorder()
	gw.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	suite.Require().Equal(200, w.Code)
	suite.Require().Contains(w.Body.String(), "up")
	suite.Require().Contains(w.Body.String(), "AdderService")
}

// A path prefix should move every route, the health route included.
func (suite *GatewaySuite) TestPathPrefix() {
	gw := rpc.NewGateway(rpc.WithPathPrefix("v2"))
	gw.Register(rpc.Endpoint{
		Method:      "POST",
		Path:        "/Adder.Add",
		ServiceName: "Adder",
		Name:        "Add",
		Handler: func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(200)
		},
	})

	w := httptest.NewRecorder()
	gw.ServeHTTP(w, httptest.NewRequest("GET", "/v2/health", nil))
	suite.Require().Equal(200, w.Code)

	w = httptest.NewRecorder()
	gw.ServeHTTP(w, httptest.NewRequest("POST", "/v2/Adder.Add", nil))
	suite.Require().Equal(200, w.Code)

	w = httptest.NewRecorder()
	gw.ServeHTTP(w, httptest.NewRequest("POST", "/Adder.Add", nil))
	suite.Require().NotEqual(200, w.Code, "Unprefixed path should not route")
}

// Registered endpoints should receive the request and be able to bind the body.
func (suite *GatewaySuite) TestRegister() {
	gw := rpc.NewGateway()
	gw.Register(rpc.Endpoint{
		Method:      "POST",
		Path:        "/Adder.Add",
		ServiceName: "Adder",
		Name:        "Add",
		Handler: func(w http.ResponseWriter, req *http.Request) {
			in := map[string]int64{}
			suite.Require().NoError(gw.Binder.Bind(req, &in))
			_ = json.NewEncoder(w).Encode(map[string]int64{"Sum": in["A"] + in["B"]})
		},
	})

	body := bytes.NewBufferString(`{"A": 41, "B": 1}`)
	w := httptest.NewRecorder()
	gw.ServeHTTP(w, httptest.NewRequest("POST", "/Adder.Add", body))

	suite.Require().Equal(200, w.Code)
	suite.Require().Contains(w.Body.String(), "42")
}

// Middleware should wrap handlers in registration order, outermost first.
func (suite *GatewaySuite) TestMiddlewareOrder() {
	var order []string
	mw := func(label string) rpc.MiddlewareFunc {
		return func(w http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
			order = append(order, label)
			next(w, req)
		}
	}

	gw := rpc.NewGateway(rpc.WithMiddlewareFunc(mw("first"), mw("second")))
	gw.Register(rpc.Endpoint{
		Method:  "POST",
		Path:    "/Foo.Bar",
		Handler: func(w http.ResponseWriter, req *http.Request) { order = append(order, "handler") },
	})

	w := httptest.NewRecorder()
	gw.ServeHTTP(w, httptest.NewRequest("POST", "/Foo.Bar", nil))
	suite.Require().Equal([]string{"first", "second", "handler"}, order)
}

// A panicking handler should come back as a 500, not a dead process.
func (suite *GatewaySuite) TestPanicRecovery() {
	gw := rpc.NewGateway()
	gw.Register(rpc.Endpoint{
		Method:  "POST",
		Path:    "/Boom.Now",
		Handler: func(w http.ResponseWriter, req *http.Request) { panic("ouch") },
	})

	w := httptest.NewRecorder()
	gw.ServeHTTP(w, httptest.NewRequest("POST", "/Boom.Now", nil))
	suite.Require().Equal(500, w.Code)
}

func (suite *GatewaySuite) TestEndpointString() {
	endpoint := rpc.Endpoint{ServiceName: "Adder", Name: "Add"}
	suite.Require().Equal("Adder.Add", endpoint.String())
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}
