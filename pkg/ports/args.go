package ports

import (
	"fmt"

	"github.com/avral/tessera/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecodeArgs binds negotiated model arguments onto a typed struct using
// mapstructure tags, with weak type conversion so path arguments (always
// strings) can fill numeric fields:
//
//	var in struct {
//		ID   int    `mapstructure:"id"`
//		Body string `mapstructure:"body"`
//	}
//	if err := ports.DecodeArgs(args, &in); err != nil { ... }
func DecodeArgs(args domain.Args, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	if err := dec.Decode(map[string]any(args)); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
