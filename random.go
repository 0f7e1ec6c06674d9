package spos

// RandomPayload synthesizes a payload object that Encode will accept
// for spec, covering every non-static, keyed block in both the
// header and the body. Grounded on original_source/spos/random.py's
// generate_value/generate_payload, extended to every block type the
// current schema supports (the Python original only covers boolean,
// integer, and float).
func RandomPayload(spec *CompiledSpec) map[string]any {
	out := map[string]any{}
	randomInto(out, spec.Header)
	randomInto(out, spec.Body)
	return out
}
