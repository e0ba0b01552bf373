package aes

import "github.com/benchlab/cryptocore/config"

// NewCipherFromParams builds a Cipher from a loosely-typed parameter
// map, the shape a host pipeline framework would hand a filter at
// construction time (spec.md §9 "Parameter plumbing"), via
// config.KeyParams.
func NewCipherFromParams(m map[string]interface{}) (*Cipher, error) {
	p, err := config.KeyParamsFromMap(m)
	if err != nil {
		return nil, err
	}
	return NewCipher(p.Key)
}
