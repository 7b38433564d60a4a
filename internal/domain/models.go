package domain

import (
	"fmt"
	"path"
	"time"
)

// UploadedImage is the payload parsed from the multipart form. It lives for
// the duration of one request and is never mutated.
type UploadedImage struct {
	Data        []byte
	Filename    string
	ContentType string
	Size        int64
}

// StorageKey addresses one object in the blob store. Keys follow the layout
// uploads/<unixMillis>-<originalFilename>; same-millisecond collisions are
// accepted, not mitigated.
type StorageKey string

const uploadPrefix = "uploads"

// NewStorageKey builds the image key for an upload received at ts. Any
// directory part of the client-supplied filename is dropped.
func NewStorageKey(ts time.Time, filename string) StorageKey {
	name := path.Base(filename)
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return StorageKey(fmt.Sprintf("%s/%d-%s", uploadPrefix, ts.UnixMilli(), name))
}

// Markdown derives the sibling key for the extracted text: same stem, final
// extension replaced with .md (appended when there is none).
func (k StorageKey) Markdown() StorageKey {
	s := string(k)
	ext := path.Ext(s)
	return StorageKey(s[:len(s)-len(ext)] + ".md")
}

func (k StorageKey) String() string { return string(k) }

// OcrResult is what the inference stage produced: the markdown text and the
// time the call took. Immutable once created.
type OcrResult struct {
	Markdown string
	Elapsed  time.Duration
}

// ProcessingTime renders the elapsed time the way the API reports it:
// seconds with two decimals, e.g. "2.00s".
func (r OcrResult) ProcessingTime() string {
	return fmt.Sprintf("%.2fs", r.Elapsed.Seconds())
}

// Extraction describes one fully completed pipeline run.
type Extraction struct {
	InputKey  StorageKey
	OutputKey StorageKey
	Bucket    string
	Result    OcrResult
}

// OcrSuccess is the success envelope for POST /api/ocr. Success and failure
// envelopes are mutually exclusive: no field of one ever appears in the other.
type OcrSuccess struct {
	Success        bool   `json:"success"`
	InputFile      string `json:"inputFile"`
	OutputFile     string `json:"outputFile"`
	Bucket         string `json:"bucket"`
	Markdown       string `json:"markdown"`
	ProcessingTime string `json:"processingTime"`
}

// OcrFailure is the failure envelope: a single human-readable message and the
// unsuccessful marker. Keys of objects written before the failure are
// deliberately not echoed back.
type OcrFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Health is the GET /health response body.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}
