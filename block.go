package spos

import (
	"encoding/json"

	"github.com/puzpuzpuz/xsync/v4"
)

// compiledBlockCache memoises Compile results by the raw block spec's
// structural content (a canonical JSON encoding, which encoding/json
// produces deterministically since it sorts map keys). Compile is a pure
// function of raw — identical content always yields an equivalent,
// immutable Block — so this cache can never go stale the way a cache
// keyed by a loose identifier (a name, a version) can; it only ever
// saves recompiling a block definition that recurs verbatim across many
// specs, e.g. a shared array element type loaded repeatedly by the CLI.
// Grounded on oy3o-codec/fixed.go's xsync.NewMap reflect-type cache
// pattern, repurposed here for block specs instead of struct layouts.
var compiledBlockCache = xsync.NewMap[string, Block]()

// Compile normalises a raw block specification (as decoded from JSON)
// into a typed Block, dispatching on its "type" key and rejecting
// unrecognised keys per-type, per spec.md §4.5. A block with "value" and
// no "type" is a static header entry.
func Compile(raw map[string]any) (Block, error) {
	key, cacheable := blockCacheKey(raw)
	if cacheable {
		if block, ok := compiledBlockCache.Load(key); ok {
			return block, nil
		}
	}
	block, err := compileBlock(raw)
	if err != nil {
		return nil, err
	}
	if cacheable {
		compiledBlockCache.Store(key, block)
	}
	return block, nil
}

// blockCacheKey canonicalises raw into a string safe to use as a cache
// key. Only raw block maps encoding/json can round-trip deterministically
// are cacheable; anything else (an unsupported value type) just skips the
// cache rather than erroring, since Compile's own validation is the
// authority on whether raw is well-formed.
func blockCacheKey(raw map[string]any) (string, bool) {
	b, err := json.Marshal(raw)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func compileBlock(raw map[string]any) (Block, error) {
	b := rawBlock(raw)
	rawType, hasType := raw["type"]
	if !hasType {
		if _, hasValue := raw["value"]; hasValue {
			return compileStaticBlock(b)
		}
		return nil, &PayloadSpecError{Block: b.blockName(), Reason: "block must have 'type' unless it is a pure static value"}
	}
	blockType, ok := rawType.(string)
	if !ok {
		return nil, &PayloadSpecError{Block: b.blockName(), Reason: "'type' must be a string"}
	}
	compiler, ok := blockCompilers[blockType]
	if !ok {
		return nil, &PayloadSpecError{Block: b.blockName(), Reason: "unknown block type '" + blockType + "'"}
	}
	return compiler(b)
}

type blockCompiler func(rawBlock) (Block, error)

var blockCompilers map[string]blockCompiler

func init() {
	blockCompilers = map[string]blockCompiler{
		"boolean":    compileBooleanBlock,
		"binary":     compileBinaryBlock,
		"integer":    compileIntegerBlock,
		"float":      compileFloatBlock,
		"pad":        compilePadBlock,
		"string":     compileStringBlock,
		"array":      compileArrayBlock,
		"object":     compileObjectBlock,
		"steps":      compileStepsBlock,
		"categories": compileCategoriesBlock,
	}
}
