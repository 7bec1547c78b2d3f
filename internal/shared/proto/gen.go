// Package proto holds the Inference wire contract. The generated code is
// produced by protoc; run `go generate ./...` after editing inference.proto.
package proto

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative inference.proto
