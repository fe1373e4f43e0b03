package addsvc

import (
	"context"
)

// AdderServiceHandler implements all of the "real" functionality for the AdderService.
type AdderServiceHandler struct{}

func (a AdderServiceHandler) Add(_ context.Context, req *AddRequest) (*AddResponse, error) {
	return &AddResponse{Sum: req.A + req.B}, nil
}
