package addsvc

import (
	"net/http"

	"github.com/make87/rosrpc/rpc"
	"github.com/monadicstack/respond"
)

// NewAdderServiceGateway accepts your "real" AdderService instance (the thing
// that really does the work) and exposes it to other services/clients over
// RPC. The rpc.Gateway it returns implements http.Handler, so you can pass it
// to any standard library HTTP server of your choice.
//
//	service := addsvc.AdderServiceHandler{}
//	gateway := addsvc.NewAdderServiceGateway(service)
//	http.ListenAndServe(":9000", gateway)
//
// The default instance works well enough, but you can supply additional
// options such as WithMiddleware() which accepts any negroni-compatible
// middleware handlers.
func NewAdderServiceGateway(service AdderService, options ...rpc.GatewayOption) rpc.Gateway {
	gw := rpc.NewGateway(options...)
	gw.Name = "AdderService"

	gw.Register(rpc.Endpoint{
		Method:      "POST",
		Path:        "/AdderService.Add",
		ServiceName: "AdderService",
		Name:        "Add",
		Handler: func(w http.ResponseWriter, req *http.Request) {
			response := respond.To(w, req)

			serviceRequest := AddRequest{}
			if err := gw.Binder.Bind(req, &serviceRequest); err != nil {
				response.Fail(err)
				return
			}

			serviceResponse, err := service.Add(req.Context(), &serviceRequest)
			response.Reply(200, serviceResponse, err)
		},
	})
	return gw
}
