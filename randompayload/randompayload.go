// Package randompayload generates a random, schema-valid payload for a
// compiled spec and encodes it, for exercising a spec without a real
// device or test fixture on hand. Grounded on
// original_source/spos/random.py's Payload/generate_payload, ported from
// its older per-spec-dict walk to the compiled Block tree's own Random
// method.
package randompayload

import "github.com/luxedo/spos"

// Generate draws a random payload object for spec and encodes it in the
// requested wire representation, returning both so a caller can verify
// the round trip or inspect the synthesized data directly.
func Generate(spec *spos.CompiledSpec, output string) (message any, payloadData map[string]any, err error) {
	payloadData = spos.RandomPayload(spec)
	message, err = spos.Encode(payloadData, spec, output)
	if err != nil {
		return nil, payloadData, err
	}
	return message, payloadData, nil
}
