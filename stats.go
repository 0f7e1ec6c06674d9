package spos

import "fmt"

// SpecStats reports the fixed-size footprint and block-type composition
// of a CompiledSpec. Supplements spec.md's distilled feature set with
// original_source/spos/command.py's "-s"/"--stats" CLI flag, dropped
// from the distillation.
type SpecStats struct {
	Name        string
	Version     uint64
	HeaderBits  int
	BodyBits    int
	FixedBits   int // header + body + version prefix + CRC-8 trailer
	BlockCounts map[string]int
}

// Stats computes SpecStats for spec. Dynamic arrays only contribute
// their length prefix to FixedBits — the true message size for a given
// payload is only known after Encode.
func Stats(spec *CompiledSpec) SpecStats {
	counts := map[string]int{}
	countBlocks(spec.Header, counts)
	countBlocks(spec.Body, counts)
	fixed := spec.Header.width() + spec.Body.width()
	if spec.EncodeVersion {
		fixed += spec.VersionBits
	}
	if spec.CRC8 {
		fixed += 8
	}
	return SpecStats{
		Name:        spec.Name,
		Version:     spec.Version,
		HeaderBits:  spec.Header.width(),
		BodyBits:    spec.Body.width(),
		FixedBits:   fixed,
		BlockCounts: counts,
	}
}

func countBlocks(bl BlockList, counts map[string]int) {
	for _, b := range bl {
		counts[blockKind(b)]++
		switch t := b.(type) {
		case *objectBlock:
			countBlocks(t.blocklist, counts)
		case *arrayBlock:
			counts["array."+blockKind(t.inner)]++
		}
	}
}

func blockKind(b Block) string {
	switch b.(type) {
	case *booleanBlock:
		return "boolean"
	case *binaryBlock:
		return "binary"
	case *integerBlock:
		return "integer"
	case *floatBlock:
		return "float"
	case *padBlock:
		return "pad"
	case *stringBlock:
		return "string"
	case *arrayBlock:
		return "array"
	case *objectBlock:
		return "object"
	case *stepsBlock:
		return "steps"
	case *categoriesBlock:
		return "categories"
	case *staticBlock:
		return "static"
	default:
		return fmt.Sprintf("%T", b)
	}
}
