package randompayload

import (
	"testing"

	"github.com/luxedo/spos"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesADecodableMessage(t *testing.T) {
	spec, err := spos.CompileSpec(map[string]any{
		"name": "sensor", "version": 1,
		"body": []any{
			map[string]any{"type": "boolean", "key": "ok"},
			map[string]any{"type": "integer", "key": "count", "bits": 8},
			map[string]any{"type": "float", "key": "temp", "bits": 10, "lower": -20, "upper": 60},
		},
	})
	require.NoError(t, err)

	message, payload, err := Generate(spec, "bytes")
	require.NoError(t, err)
	require.NotNil(t, message)
	require.Contains(t, payload, "ok")
	require.Contains(t, payload, "count")
	require.Contains(t, payload, "temp")

	decoded, err := spos.Decode(message, spec)
	require.NoError(t, err)
	require.Contains(t, decoded.Body, "ok")
}
