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

// Package source defines the message-source abstraction: enumeration of
// channels and threads in a guild, and paginated history retrieval in
// ascending timestamp order.
package source

import (
	"context"
	"time"
)

// Channel identifies a syncable message scope: a text channel or a
// thread under one.
type Channel struct {
	Id       string
	Name     string
	ParentId string
	IsThread bool
}

// RawAttachment is an attachment as reported by the platform, before OCR.
type RawAttachment struct {
	Filename  string
	MediaType string
	SourceURL string
}

// RawMessage is a message as reported by the platform, before archival.
type RawMessage struct {
	Id          string
	AuthorId    string
	AuthorName  string
	Body        string
	Timestamp   time.Time
	Attachments []RawAttachment
	JumpURL     string
}

// MessageSource provides read access to a chat platform's history.
// Implementations must be thread-safe for concurrent use.
type MessageSource interface {
	// Channels enumerates the syncable scopes of a guild: text channels
	// first, then archived threads.
	Channels(ctx context.Context, guildID string) ([]Channel, error)

	// History streams a channel's messages strictly ascending by
	// timestamp, starting after the given cursor (nil means from the
	// beginning). fn is invoked once per message; returning an error
	// stops the walk and propagates.
	History(ctx context.Context, channelID string, after *time.Time, fn func(RawMessage) error) error
}
