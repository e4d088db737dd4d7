package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "18.0000", FormatFixed(18))
	assert.Equal(t, "0.3333", FormatFixed(1.0/3))
	assert.Equal(t, "-2.5000", FormatFixed(-2.5))
	assert.Equal(t, "0.6667", FormatFixed(2.0/3))
	// 1.00005 is stored as 1.0000499999...
	assert.Equal(t, "1.0000", FormatFixed(1.00005))
	assert.Equal(t, "1.0001", FormatFixed(1.00006))
	assert.Equal(t, "100000.0000", FormatFixed(100000))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "18", Plain(18))
	assert.Equal(t, "0.30000000000000004", Plain(0.1+0.2))
	assert.Equal(t, "1000000000000000000000", Plain(1e21))
	assert.Equal(t, "0.0000001", Plain(1e-7))
}

func TestConvert(t *testing.T) {
	got, err := Convert("18.0000", 1380.25)
	require.NoError(t, err)
	assert.Equal(t, "24844.5000", got)

	got, err = Convert("", 1380.25)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Convert("abc", 2)
	assert.Error(t, err)
}

func TestInvert(t *testing.T) {
	got, err := Invert(1380)
	require.NoError(t, err)
	assert.Equal(t, "0.0007", got)

	got, err = Invert(0.5)
	require.NoError(t, err)
	assert.Equal(t, "2.0000", got)

	_, err = Invert(0)
	assert.Error(t, err)
}
