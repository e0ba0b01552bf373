package config

import "github.com/mitchellh/mapstructure"

// EncoderParamsFromMap decodes a loosely-typed parameter map — the
// shape a host pipeline framework hands a filter at construction time —
// into an EncoderParams, validating the fields IsolatedInitialize would
// otherwise have to check inline.
func EncoderParamsFromMap(m map[string]interface{}) (*EncoderParams, error) {
	var p EncoderParams
	if err := mapstructure.Decode(m, &p); err != nil {
		return nil, NewArgumentError("params", err.Error())
	}
	if len(p.Alphabet) == 0 {
		return nil, NewArgumentError("alphabet", "required")
	}
	if p.BitsPerChar <= 0 || p.BitsPerChar >= 8 {
		return nil, NewArgumentError("bits_per_char", "must be between 1 and 7 inclusive")
	}
	return &p, nil
}

// DecoderParamsFromMap decodes a DecoderParams from a parameter map.
func DecoderParamsFromMap(m map[string]interface{}) (*DecoderParams, error) {
	var p DecoderParams
	if err := mapstructure.Decode(m, &p); err != nil {
		return nil, NewArgumentError("params", err.Error())
	}
	if len(p.Alphabet) == 0 {
		return nil, NewArgumentError("alphabet", "required")
	}
	if p.BitsPerChar <= 0 || p.BitsPerChar >= 8 {
		return nil, NewArgumentError("bits_per_char", "must be between 1 and 7 inclusive")
	}
	return &p, nil
}

// GrouperParamsFromMap decodes a GrouperParams from a parameter map.
func GrouperParamsFromMap(m map[string]interface{}) (*GrouperParams, error) {
	var p GrouperParams
	if err := mapstructure.Decode(m, &p); err != nil {
		return nil, NewArgumentError("params", err.Error())
	}
	if p.GroupSize > 0 && len(p.Separator) == 0 {
		return nil, NewArgumentError("separator", "required when group_size > 0")
	}
	return &p, nil
}

// KeyParamsFromMap decodes a KeyParams from a parameter map.
func KeyParamsFromMap(m map[string]interface{}) (*KeyParams, error) {
	var p KeyParams
	if err := mapstructure.Decode(m, &p); err != nil {
		return nil, NewArgumentError("params", err.Error())
	}
	switch len(p.Key) {
	case 16, 24, 32:
	default:
		return nil, NewArgumentError("key", "length must be 16, 24 or 32 bytes")
	}
	return &p, nil
}
