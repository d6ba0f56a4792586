package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_IsBlank(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{" \n\t ", true},
		{"Go", false},
		{"  !!  ", false},
	}

	for _, tt := range tests {
		doc := Document{Kind: DocumentKindResume, Text: tt.text}
		assert.Equal(t, tt.want, doc.IsBlank(), "text %q", tt.text)
	}
}
