package model

import (
	"encoding/base64"
	"strings"
)

const pngDataURLPrefix = "data:image/png;base64,"

// EncodeDataURL wraps raw PNG bytes in a data URL, the form in which image
// payloads cross the provider boundary.
func EncodeDataURL(png []byte) string {
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeDataURL extracts the raw bytes from a base64 image data URL.
// Reports ok=false for anything that is not a well-formed data URL.
func DecodeDataURL(dataURL string) ([]byte, bool) {
	idx := strings.Index(dataURL, ";base64,")
	if !strings.HasPrefix(dataURL, "data:") || idx == -1 {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return nil, false
	}
	return data, true
}
