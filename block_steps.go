package spos

import (
	"fmt"
	"math/rand"

	"github.com/luxedo/spos/bitio"
)

// stepsBlock maps a real value into one of len(steps)+1 half-open bucket
// intervals and encodes the bucket name. One extra code is reserved for
// decode-time errors (an out-of-range bucket index the encoder never
// produces), per spec.md §4.2.
type stepsBlock struct {
	common
	bits       int
	steps      []float64
	stepsNames []string
}

func compileStepsBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys("steps", "steps_names"); err != nil {
		return nil, err
	}
	key, alias, hasValue, value, err := b.validateCommon()
	if err != nil {
		return nil, err
	}
	rawSteps, ok := b["steps"]
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "missing required key 'steps'"}
	}
	stepsList, ok := rawSteps.([]any)
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "'steps' must be a list"}
	}
	steps := make([]float64, len(stepsList))
	for i, v := range stepsList {
		f, ok := toFloat(v)
		if !ok {
			return nil, &PayloadSpecError{Block: key, Reason: "'steps' entries must be numeric"}
		}
		steps[i] = f
		if i > 0 && steps[i] <= steps[i-1] {
			return nil, &PayloadSpecError{Block: key, Reason: "'steps' must be strictly ascending"}
		}
	}
	n := len(steps)
	if n == 0 {
		return nil, &PayloadSpecError{Block: key, Reason: "'steps' must have at least one entry"}
	}
	bits := bitsForCount(n + 2)
	names := make([]string, n+1)
	if rawNames, ok := b["steps_names"]; ok {
		nameList, ok := rawNames.([]any)
		if !ok {
			return nil, &PayloadSpecError{Block: key, Reason: "'steps_names' must be a list"}
		}
		if len(nameList) != n+1 {
			return nil, &PayloadSpecError{Block: key, Reason: fmt.Sprintf("'steps_names' must have length %d (len(steps)+1)", n+1)}
		}
		for i, v := range nameList {
			s, ok := v.(string)
			if !ok {
				return nil, &PayloadSpecError{Block: key, Reason: "'steps_names' entries must be strings"}
			}
			names[i] = s
		}
	} else {
		names[0] = fmt.Sprintf("x<%v", steps[0])
		for i := 0; i < n-1; i++ {
			names[i+1] = fmt.Sprintf("%v<=x<%v", steps[i], steps[i+1])
		}
		names[n] = fmt.Sprintf("x>=%v", steps[n-1])
	}
	return &stepsBlock{common{key, alias, hasValue, value}, bits, steps, names}, nil
}

func (bl *stepsBlock) Width() int { return bl.bits }

func (bl *stepsBlock) bucket(value float64) int {
	idx := 0
	for _, s := range bl.steps {
		if value >= s {
			idx++
		} else {
			break
		}
	}
	return idx
}

func (bl *stepsBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	v, err := floatValue(value)
	if err != nil {
		return withKey(err, bl.key)
	}
	return encodeIntRaw(w, int64(bl.bucket(v)), bl.bits, "truncate")
}

func (bl *stepsBlock) Decode(r *bitio.BitReader) (any, error) {
	bits, err := r.ReadBits(bl.bits)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	idx := int(bits)
	if idx < len(bl.stepsNames) {
		return bl.stepsNames[idx], nil
	}
	return "error", nil
}

// Random picks a bucket uniformly and synthesizes a value that falls
// inside it.
func (bl *stepsBlock) Random() any {
	n := len(bl.steps)
	if n == 0 {
		return 0.0
	}
	idx := rand.Intn(n + 1)
	switch {
	case idx == 0:
		return bl.steps[0] - 1
	case idx == n:
		return bl.steps[n-1] + 1
	default:
		return (bl.steps[idx-1] + bl.steps[idx]) / 2
	}
}
