package utils

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// ResolveContentType picks the MIME type for an upload: the declared
// multipart type wins, otherwise the type is sniffed from the payload bytes.
func ResolveContentType(declared string, data []byte) string {
	if ct := strings.TrimSpace(declared); ct != "" {
		return ct
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return "application/octet-stream"
}

// MakeDataURL encodes an image payload as an inline base64 data URL, the
// form vision chat endpoints accept inside a message part.
func MakeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// StripCodeFences removes a wrapping markdown code fence from a model
// response. Providers sporadically fence the whole answer despite being told
// to return only the markdown.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
