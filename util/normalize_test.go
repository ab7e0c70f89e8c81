package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"the empty string stays the empty string", "", ""},
		{"whitespace is correctly normalized", "  asdf\t  test   bla\r\n", " asdf test bla "},
		{"text is converted to lowercase", "AaBbCcDd", "aabbccdd"},
		{"accents are removed", "öäüàêÇ", "oauaec"},
		{"ß is handled", "Soße auf der Straße", "sosse auf der strasse"},
		{"special characters are removed", "Hello, world!", "hello world"},
		{"Ænima", "Ænima", "aenima"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := NormalizeText(tt.text)
			assert.Equalf(t, tt.want, normalized, "normalized bytes: %v, wanted: %v", []byte(normalized), []byte(tt.want))
		})
	}
}

func TestSearchText(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"no parts", nil, " "},
		{"single part", []string{"Hello World"}, " hello world "},
		{"multiple parts are joined", []string{"Björk", "Homogenic"}, " bjork homogenic "},
		{"empty parts are skipped", []string{"", "a", "  "}, " a "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchText(tt.parts...))
		})
	}
}
