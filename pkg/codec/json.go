// Package codec provides a gRPC codec that carries plain Go structs as JSON.
// Protobuf messages (health checks) still round-trip through
// protojson so the same content-subtype works for every registered service.
package codec

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name is the gRPC content-subtype clients must request ("application/grpc+json").
const Name = "json"

type JSON struct{}

func init() {
	encoding.RegisterCodec(JSON{})
}

func (JSON) Name() string { return Name }

func (JSON) Marshal(v any) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		return protojson.Marshal(msg)
	}
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error {
	if msg, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, msg)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
