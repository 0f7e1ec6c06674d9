package spos

import "github.com/luxedo/spos/bitio"

// HeaderEntry is one decoded header field, kept in the spec's declared
// order since header keys are not necessarily unique dot-path roots and
// Go maps do not preserve insertion order.
type HeaderEntry struct {
	Key   string
	Value any
}

// Meta carries everything decoded outside of the body: the spec name and
// version (when encoded), and the header fields in declaration order.
type Meta struct {
	Name    string
	Version uint64
	Header  []HeaderEntry
}

// Decoded is the result of a Decode call: the body, nested by dot-path
// key, plus Meta.
type Decoded struct {
	Body map[string]any
	Meta Meta
}

// Encode packs payloadData against spec, producing: an optional version
// prefix, the header blocks, the body blocks, and an optional CRC-8
// trailer — in that order, per spec.md §4.6. output selects the wire
// representation ("bin", "hex", or "bytes").
func Encode(payloadData map[string]any, spec *CompiledSpec, output string) (any, error) {
	w := bitio.NewWriter()
	defer w.Release()
	if spec.EncodeVersion {
		if err := w.AppendBits(spec.Version, spec.VersionBits); err != nil {
			return nil, err
		}
	}
	if err := spec.Header.encode(w, payloadData); err != nil {
		return nil, err
	}
	if err := spec.Body.encode(w, payloadData); err != nil {
		return nil, err
	}
	if spec.CRC8 {
		w.AppendZeroPad(8)
		crc := crc8(w.Bytes())
		if err := w.AppendBits(uint64(crc), 8); err != nil {
			return nil, err
		}
	}
	return formatOutput(w, output)
}

// Decode unpacks message against spec, returning the body nested by
// dot-path key alongside Meta. message may be a "0b"-prefixed bin
// string, a "0x"-prefixed hex string, or a []byte.
func Decode(message any, spec *CompiledSpec) (*Decoded, error) {
	r, err := parseMessage(message)
	if err != nil {
		return nil, err
	}
	if spec.EncodeVersion {
		if _, err := r.ReadBits(spec.VersionBits); err != nil {
			return nil, wrapTruncated(err)
		}
	}
	return decodeBody(r, spec)
}

// decodeBody reads header and body off r against spec, verifying the
// CRC-8 trailer if configured. It does not touch any version prefix —
// callers that dispatch on version (Decode, DecodeFromSpecs) must
// consume VersionBits themselves before calling this.
func decodeBody(r *bitio.BitReader, spec *CompiledSpec) (*Decoded, error) {
	meta := Meta{Name: spec.Name, Version: spec.Version}
	for _, block := range spec.Header {
		v, err := decodeBlock(block, r)
		if err != nil {
			return nil, withKey(err, block.Key())
		}
		if block.OutputName() != "" {
			meta.Header = append(meta.Header, HeaderEntry{Key: block.OutputName(), Value: v})
		}
	}
	body, err := spec.Body.decode(r)
	if err != nil {
		return nil, err
	}
	if spec.CRC8 {
		if _, err := r.SkipPad(8); err != nil {
			return nil, wrapTruncated(err)
		}
		prefix := r.Prefix(r.Pos())
		want, err := r.ReadBits(8)
		if err != nil {
			return nil, wrapTruncated(err)
		}
		if crc8(prefix) != byte(want) {
			return nil, CrcMismatch
		}
	}
	return &Decoded{Body: body, Meta: meta}, nil
}
