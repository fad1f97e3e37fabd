package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormationRow(t *testing.T) {
	f, err := ParseFormation("skein")
	require.NoError(t, err)

	want := []Row{RowRear, RowMid, RowFront, RowMid, RowRear}
	for col, w := range want {
		got, err := f.Row(col)
		require.NoError(t, err)
		assert.Equal(t, w, got, "column %d", col)
	}

	_, err = f.Row(5)
	assert.Error(t, err)
	_, err = f.Row(-1)
	assert.Error(t, err)
}

func TestParseFormationUnknown(t *testing.T) {
	_, err := ParseFormation("phalanx")
	assert.True(t, errors.Is(err, ErrInvalidEnum))
}

func TestFormationStringRoundTrip(t *testing.T) {
	for name := range formationNames {
		f, err := ParseFormation(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}
}

func TestProcIndex(t *testing.T) {
	tests := []struct {
		name   string
		order  ProcOrder
		row    Row
		column int
		want   int
	}{
		{"android rear leftmost", ProcOrderAndroid, RowRear, 0, 1},
		{"android rear rightmost", ProcOrderAndroid, RowRear, 4, 2},
		{"android mid centre", ProcOrderAndroid, RowMid, 2, 9},
		{"android front second", ProcOrderAndroid, RowFront, 1, 15},
		{"ios rear rightmost", ProcOrderIOS, RowRear, 4, 5},
		{"ios front leftmost", ProcOrderIOS, RowFront, 0, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.order.ProcIndex(tt.row, tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProcOrder(t *testing.T) {
	p, err := ParseProcOrder("")
	require.NoError(t, err)
	assert.Equal(t, ProcOrderAndroid, p)

	p, err = ParseProcOrder("ios")
	require.NoError(t, err)
	assert.Equal(t, ProcOrderIOS, p)

	_, err = ParseProcOrder("windows")
	assert.Error(t, err)
}
