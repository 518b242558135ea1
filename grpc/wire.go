package circuitgrpc

// Transport-specific wrapper types for RPC methods whose interface
// signatures don't map to a single request struct. These are used
// only at gRPC serialization boundaries.

// DescribeRequest is the (empty) request for Gateway.Describe.
type DescribeRequest struct{}
