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

// Package vision implements ocr.Extractor with a multimodal language
// model served over an OpenAI-compatible API.
package vision

import (
	"context"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/convodex/convodex/ocr"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const extractionPrompt = `Transcribe all readable text in this image, preserving line breaks and reading order. Output only the transcribed text, with no commentary. If the image contains no readable text, output nothing.`

// Config holds connection settings for the vision model.
type Config struct {
	// Host is the base URL of the OpenAI-compatible vision service.
	Host string

	// Model is the multimodal model identifier.
	Model string
}

// DefaultConfig returns settings for a local OpenAI-compatible service.
func DefaultConfig() Config {
	return Config{
		Host:  "http://localhost:11434/v1",
		Model: "llava:7b",
	}
}

// Extractor implements ocr.Extractor with a multimodal model.
type Extractor struct {
	client llms.Model
	logger *slog.Logger
}

var _ ocr.Extractor = (*Extractor)(nil)

// NewExtractor creates a vision-model OCR extractor.
func NewExtractor(cfg Config) (*Extractor, error) {
	client, err := openai.New(
		openai.WithBaseURL(cfg.Host),
		openai.WithToken("none"),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		client: client,
		logger: slog.Default().With("component", "vision-ocr"),
	}, nil
}

// ExtractText transcribes the readable text in an image.
func (e *Extractor) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	mediaType := mime.TypeByExtension(filepath.Ext(filename))
	if mediaType == "" {
		mediaType = "image/png"
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mediaType, image),
				llms.TextPart(extractionPrompt),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from vision model", "filename", filename)
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
