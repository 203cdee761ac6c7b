package productform

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

func requireString(in *structpb.Struct, key string) (string, error) {
	if in == nil {
		return "", fmt.Errorf("request is required")
	}
	v, ok := in.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || s.StringValue == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s.StringValue, nil
}

func requireStruct(in *structpb.Struct, key string) (*structpb.Struct, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return nil, fmt.Errorf("%s is required", key)
	}
	s := v.GetStructValue()
	if s == nil {
		return nil, fmt.Errorf("%s must be an object", key)
	}
	return s, nil
}
