// Copyright 2026 Convodex Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ocr defines best-effort text extraction from image attachments.
// Extraction failures never abort ingestion: callers store the attachment
// without extracted text and move on.
package ocr

import (
	"context"
	"strings"
)

// Extractor extracts readable text from an image.
// Implementations must be thread-safe for concurrent use.
type Extractor interface {
	// ExtractText returns the text visible in the image, or an empty
	// string when there is none.
	ExtractText(ctx context.Context, image []byte, filename string) (string, error)
}

// imageMediaTypes is the whitelist of attachment media types worth
// running through OCR.
var imageMediaTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsImage reports whether a media type is an OCR-eligible image format.
// Parameters after a semicolon are ignored.
func IsImage(mediaType string) bool {
	base, _, _ := strings.Cut(mediaType, ";")
	return imageMediaTypes[strings.ToLower(strings.TrimSpace(base))]
}
