package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTable_Convert_SameSystemIsIdentity(t *testing.T) {
	tbl := NewTable()
	got, err := tbl.Convert(Length, "si", "si", 5)
	require.NoError(t, err)
	assert.InDelta(t, 5, got, 1e-12)
}

func TestTable_Convert_ImperialToSI(t *testing.T) {
	tbl := NewTable(Imperial)
	got, err := tbl.Convert(Length, "imperial", "si", 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3048, got, 1e-9)
}

func TestTable_Convert_UnknownSystem(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Convert(Length, "imperial", "si", 1)
	require.Error(t, err)
}

func TestTable_Convert_RoundTrip(t *testing.T) {
	tbl := NewTable(Imperial)
	meters, err := tbl.Convert(Length, "imperial", "si", 10)
	require.NoError(t, err)
	feet, err := tbl.Convert(Length, "si", "imperial", meters)
	require.NoError(t, err)
	assert.InDelta(t, 10, feet, 1e-9)
}

func TestMockConverter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockConverter(ctrl)
	mock.EXPECT().Convert(Mass, "imperial", "si", 1.0).Return(14.59, nil)

	var c Converter = mock
	got, err := c.Convert(Mass, "imperial", "si", 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 14.59, got, 1e-9)
}
