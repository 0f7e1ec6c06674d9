package spos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomPayloadEncodesSuccessfully(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "sensor", "version": 1,
		"meta": map[string]any{
			"header": []any{
				map[string]any{"type": "integer", "key": "seq", "bits": 8},
			},
		},
		"body": []any{
			map[string]any{"type": "boolean", "key": "ok"},
			map[string]any{"type": "float", "key": "temp", "bits": 10, "lower": -20, "upper": 60},
			map[string]any{"type": "string", "key": "label", "length": 3},
			map[string]any{
				"type": "array", "key": "samples", "length": 4,
				"blocks": map[string]any{"type": "integer", "bits": 4},
			},
		},
	})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		payload := RandomPayload(spec)
		_, err := Encode(payload, spec, "bytes")
		require.NoError(t, err)
	}
}

func TestRandomPayloadCoversNestedKeys(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "nested", "version": 1,
		"body": []any{
			map[string]any{"type": "integer", "key": "pos.x", "bits": 8},
			map[string]any{"type": "integer", "key": "pos.y", "bits": 8},
		},
	})
	require.NoError(t, err)

	payload := RandomPayload(spec)
	pos, ok := payload["pos"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, pos, "x")
	require.Contains(t, pos, "y")
}
