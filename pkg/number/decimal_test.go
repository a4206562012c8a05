package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestScaled(t *testing.T) {
	assert.Equal(t, "0.02", FromScaled(20_000_000, 9).String())
	assert.Equal(t, "1.02", FromScaled(1_020_000_000, 9).String())

	v, err := ToScaled(Decimal("0.8"), 9)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(800_000_000), v)

	v, err = ToScaled(Decimal("1.123456789123"), 9)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(1_123_456_789), v)

	_, err = ToScaled(Decimal("-1"), 9)
	assert.Equal(t, ErrOverflow, err)
}
