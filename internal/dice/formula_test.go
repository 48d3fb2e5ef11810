package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

func TestParseFormula(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    Formula
		wantErr bool
	}{
		{name: "plain dice", expr: "2d6", want: Formula{Count: 2, Sides: 6}},
		{name: "dice with bonus", expr: "1d8+3", want: Formula{Count: 1, Sides: 8, Bonus: 3}},
		{name: "dice with penalty", expr: "2d4-1", want: Formula{Count: 2, Sides: 4, Bonus: -1}},
		{name: "implicit count", expr: "d20", want: Formula{Count: 1, Sides: 20}},
		{name: "flat amount", expr: "5", want: Formula{Bonus: 5}},
		{name: "uppercase", expr: "3D6", want: Formula{Count: 3, Sides: 6}},
		{name: "whitespace", expr: " 1d4 ", want: Formula{Count: 1, Sides: 4}},
		{name: "empty", expr: "", wantErr: true},
		{name: "garbage", expr: "fireball", wantErr: true},
		{name: "zero sides", expr: "1d0", wantErr: true},
		{name: "zero count", expr: "0d6", wantErr: true},
		{name: "double d", expr: "1d6d8", wantErr: true},
		{name: "bad bonus", expr: "1d6+x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormula(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, engerr.IsContent(err), "malformed formulas are content errors")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormula_Roll(t *testing.T) {
	t.Run("rolls through the roller", func(t *testing.T) {
		roller := NewManualMockRoller(3, 4)
		f := MustParse("2d6+2")

		result, err := f.Roll(roller)
		require.NoError(t, err)
		assert.Equal(t, 9, result.Total)
	})

	t.Run("flat amount needs no dice", func(t *testing.T) {
		f := MustParse("4")

		result, err := f.Roll(NewManualMockRoller())
		require.NoError(t, err)
		assert.Equal(t, 4, result.Total)
	})
}

func TestFormula_Bounds(t *testing.T) {
	f := MustParse("3d4+1")
	assert.Equal(t, 4, f.Min())
	assert.Equal(t, 13, f.Max())
	assert.Equal(t, "3d4+1", f.String())

	flat := MustParse("7")
	assert.Equal(t, "7", flat.String())
}
