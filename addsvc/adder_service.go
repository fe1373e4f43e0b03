// Package addsvc contains the demonstration adder service: a single operation
// that adds two integers. It exists to give the endpoint-resolution and RPC
// plumbing something real to exchange, mirroring the classic AddTwoInts
// request/response shape.
package addsvc

import (
	"context"
)

// AdderService provides the ability to add two integers at WEB SCALE!
type AdderService interface {
	// Add accepts two integers and returns a result w/ their sum.
	Add(context.Context, *AddRequest) (*AddResponse, error)
}

// AddRequest wrangles the two integers you plan to add together.
type AddRequest struct {
	// A is the first number to add.
	A int64
	// B is the other number to add.
	B int64
}

// AddResponse contains the result from adding two numbers.
type AddResponse struct {
	// Sum is the total you're returning.
	Sum int64
}
