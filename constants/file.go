package constants

import "strings"

// SourceFormat classifies an upload for extraction dispatch and job records.
type SourceFormat string

const (
	PDF     SourceFormat = "PDF"
	IMAGE   SourceFormat = "IMAGE"
	DOCX    SourceFormat = "DOCX"
	TXT     SourceFormat = "TXT"
	UNKNOWN SourceFormat = "UNKNOWN"
)

var imageExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"bmp":  {},
	"tiff": {},
	"tif":  {},
	"heic": {},
	"heif": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its source format.
// Unknown or empty extensions map to UNKNOWN; the extractor then falls back
// to trying PDF first and image OCR second.
func MapExtToFormat(ext string) SourceFormat {
	e := NormalizeExt(ext)
	switch e {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "txt":
		return TXT
	}
	if _, ok := imageExts[e]; ok {
		return IMAGE
	}
	return UNKNOWN
}

func IsHEICExt(ext string) bool {
	e := NormalizeExt(ext)
	return e == "heic" || e == "heif"
}
