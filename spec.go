package spos

import "fmt"

// CompiledSpec is an immutable, compiled PayloadSpec. Compile once, reuse
// across as many Encode/Decode calls as needed — see SPEC_FULL.md §5.
type CompiledSpec struct {
	Name          string
	Version       uint64
	EncodeVersion bool
	VersionBits   int
	CRC8          bool
	Header        BlockList
	Body          BlockList
}

// CompileSpec validates a raw payload specification (as decoded from
// JSON: name, version, optional meta, body) and produces a CompiledSpec.
func CompileSpec(raw map[string]any) (*CompiledSpec, error) {
	name, ok := raw["name"].(string)
	if !ok || name == "" {
		return nil, &PayloadSpecError{Reason: "spec must have a non-empty string 'name'"}
	}
	versionRaw, ok := raw["version"]
	if !ok {
		return nil, &PayloadSpecError{Reason: "spec must have a 'version'"}
	}
	versionInt, ok := toInt(versionRaw)
	if !ok || versionInt < 0 {
		return nil, &PayloadSpecError{Reason: "spec 'version' must be a non-negative integer"}
	}

	spec := &CompiledSpec{Name: name, Version: uint64(versionInt)}

	if rawMeta, ok := raw["meta"]; ok {
		metaMap, ok := rawMeta.(map[string]any)
		if !ok {
			return nil, &PayloadSpecError{Reason: "'meta' must be an object"}
		}
		if err := spec.compileMeta(metaMap); err != nil {
			return nil, err
		}
	}

	rawBody, ok := raw["body"]
	if !ok {
		return nil, &PayloadSpecError{Reason: "spec must have a 'body'"}
	}
	bodyList, ok := rawBody.([]any)
	if !ok {
		return nil, &PayloadSpecError{Reason: "'body' must be a list of block specifications"}
	}
	body, err := compileBlockList(bodyList)
	if err != nil {
		return nil, err
	}
	spec.Body = body
	return spec, nil
}

func (spec *CompiledSpec) compileMeta(meta map[string]any) error {
	for k := range meta {
		switch k {
		case "encode_version", "version_bits", "crc8", "header":
		default:
			return &PayloadSpecError{Reason: fmt.Sprintf("unrecognised meta key '%s'", k)}
		}
	}
	if v, ok := meta["encode_version"].(bool); ok {
		spec.EncodeVersion = v
	} else if _, ok := meta["encode_version"]; ok {
		return &PayloadSpecError{Reason: "'meta.encode_version' must be a boolean"}
	}
	if v, ok := meta["crc8"].(bool); ok {
		spec.CRC8 = v
	} else if _, ok := meta["crc8"]; ok {
		return &PayloadSpecError{Reason: "'meta.crc8' must be a boolean"}
	}
	if raw, ok := meta["version_bits"]; ok {
		bits, ok := toInt(raw)
		if !ok || bits <= 0 {
			return &PayloadSpecError{Reason: "'meta.version_bits' must be a positive integer"}
		}
		spec.VersionBits = bits
	}
	if spec.EncodeVersion {
		if spec.VersionBits == 0 {
			return &PayloadSpecError{Reason: "'meta.version_bits' is required when 'meta.encode_version' is true"}
		}
		if spec.VersionBits < 64 && spec.Version >= uint64(1)<<uint(spec.VersionBits) {
			return &PayloadSpecError{Reason: fmt.Sprintf("version %d does not fit in %d bits", spec.Version, spec.VersionBits)}
		}
	}
	if rawHeader, ok := meta["header"]; ok {
		headerList, ok := rawHeader.([]any)
		if !ok {
			return &PayloadSpecError{Reason: "'meta.header' must be a list of block specifications"}
		}
		header, err := compileBlockList(headerList)
		if err != nil {
			return err
		}
		spec.Header = header
	}
	return nil
}
