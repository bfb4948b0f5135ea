package shared_test

import (
	"testing"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		input  string
		want   shared.Attribute
		wantOK bool
	}{
		{input: "dex", want: shared.AttributeDexterity, wantOK: true},
		{input: "Dexterity", want: shared.AttributeDexterity, wantOK: true},
		{input: " CON ", want: shared.AttributeConstitution, wantOK: true},
		{input: "cha", want: shared.AttributeCharisma, wantOK: true},
		{input: "luck", want: shared.AttributeNone, wantOK: false},
		{input: "", want: shared.AttributeNone, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := shared.ParseAttribute(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSide_Opposing(t *testing.T) {
	assert.Equal(t, shared.SideOpponent, shared.SidePlayer.Opposing())
	assert.Equal(t, shared.SidePlayer, shared.SideOpponent.Opposing())
	assert.True(t, shared.SidePlayer.Valid())
	assert.False(t, shared.Side("neutral").Valid())
}
