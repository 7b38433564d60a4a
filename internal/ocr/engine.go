package ocr

import "context"

// ExtractionPrompt is the fixed instruction sent with every image. The
// wording stays deliberately literal: the model should transcribe, not
// paraphrase.
const ExtractionPrompt = `Extract all text from this image and format it as clean markdown.
Preserve the document structure: headings, lists, and tables.
Return only the markdown content, with no preamble and no explanation.`

// Engine is the vision-language inference contract: one image in, markdown
// out. Implementations must be safe for concurrent use; they are constructed
// once at startup and shared across requests.
//
// A provider answer that contains no usable text is not an error: engines
// return ("", nil) and leave the soft-failure handling to the caller. Any
// transport or provider failure is returned as a non-nil error.
type Engine interface {
	Name() string
	ExtractMarkdown(ctx context.Context, image []byte, mimeType string) (string, error)
}
