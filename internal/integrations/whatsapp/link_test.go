package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLink(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		text  string
		want  string
	}{
		{"strips formatting", "+56 9 1234-5678", "", "https://wa.me/56912345678"},
		{"encodes text", "+56912345678", "Hola! Reserva 18:00", "https://wa.me/56912345678?text=Hola%21+Reserva+18%3A00"},
		{"keeps accents encoded", "56912345678", "Me gustaría", "https://wa.me/56912345678?text=Me+gustar%C3%ADa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildLink(tt.phone, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildLink_EmptyPhone(t *testing.T) {
	_, err := BuildLink(" + - ", "hola")
	assert.ErrorIs(t, err, ErrEmptyPhone)
}
