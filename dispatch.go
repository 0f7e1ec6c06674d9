package spos

import "fmt"

// DecodeFromSpecs picks the CompiledSpec whose version matches message's
// encoded version prefix and decodes against it. Every spec in specs
// must share the same name and version_bits, declare
// meta.encode_version, and carry a distinct version — spec.md §6's
// multi-version dispatch. Violations return a SpecsVersionError before
// any bits are read.
func DecodeFromSpecs(message any, specs []*CompiledSpec) (*Decoded, error) {
	if len(specs) == 0 {
		return nil, &SpecsVersionError{Reason: "spec pool is empty"}
	}
	name := specs[0].Name
	versionBits := specs[0].VersionBits
	seen := make(map[uint64]bool, len(specs))
	for _, s := range specs {
		if !s.EncodeVersion {
			return nil, &SpecsVersionError{Reason: "every spec in the pool must set meta.encode_version"}
		}
		if s.Name != name {
			return nil, &SpecsVersionError{Reason: "every spec in the pool must share the same name"}
		}
		if s.VersionBits != versionBits {
			return nil, &SpecsVersionError{Reason: "every spec in the pool must share the same version_bits"}
		}
		if seen[s.Version] {
			return nil, &SpecsVersionError{Reason: fmt.Sprintf("duplicate version %d in spec pool", s.Version)}
		}
		seen[s.Version] = true
	}

	// Built fresh from specs every call: specs is the caller's pool, and a
	// cache keyed by name alone would go stale the moment a caller passes
	// a different pool sharing that name (recompiled specs, two distinct
	// pools, …), silently routing to the wrong *CompiledSpec.
	index := make(map[uint64]*CompiledSpec, len(specs))
	for _, s := range specs {
		index[s.Version] = s
	}

	r, err := parseMessage(message)
	if err != nil {
		return nil, err
	}
	version, err := r.ReadBits(versionBits)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	spec, ok := index[version]
	if !ok {
		return nil, &PayloadSpecError{Reason: fmt.Sprintf("no spec in the pool declares version %d", version)}
	}
	return decodeBody(r, spec)
}
