package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want SourceFormat
	}{
		{".pdf", PDF},
		{"PDF", PDF},
		{".docx", DOCX},
		{".txt", TXT},
		{".png", IMAGE},
		{".JPG", IMAGE},
		{".jpeg", IMAGE},
		{".heic", IMAGE},
		{".tiff", IMAGE},
		{"", UNKNOWN},
		{".bin", UNKNOWN},
		{".doc", UNKNOWN},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, MapExtToFormat(tt.ext))
		})
	}
}

func TestIsHEICExt(t *testing.T) {
	assert.True(t, IsHEICExt(".heic"))
	assert.True(t, IsHEICExt(".HEIF"))
	assert.False(t, IsHEICExt(".png"))
	assert.False(t, IsHEICExt(""))
}
