package core

import (
	"strings"
)

// renderTimeLayout is the timestamp format used in rendered index documents.
const renderTimeLayout = "2006-01-02 15:04"

// Doc name prefixes. The query path parses these back out of the index
// collaborator's free-text answers, so they are part of the external
// contract and must not change.
const (
	MessageDocPrefix = "msg_"
	ChunkDocPrefix   = "chunk_"
)

// DocName returns the index display name for a message.
func (m *Message) DocName() string {
	return MessageDocPrefix + m.Id
}

// DocName returns the index display name for a chunk.
func (c *ConversationChunk) DocName() string {
	return ChunkDocPrefix + c.Id
}

// IndexText renders a single message into the text blob submitted to the
// index collaborator: a metadata header block followed by the raw body and
// any attachment text. The literal shape is part of the external contract.
func (m *Message) IndexText() string {
	var b strings.Builder

	b.WriteString("[metadata]\n")
	b.WriteString("time: " + m.Timestamp.UTC().Format(renderTimeLayout) + "\n")
	b.WriteString("channel: #" + m.ChannelName + "\n")
	if m.ThreadName != "" {
		b.WriteString("thread: " + m.ThreadName + "\n")
	}
	b.WriteString("author: @" + m.AuthorName + "\n")
	b.WriteString("\n[body]\n")
	b.WriteString(m.Body)

	if len(m.Attachments) > 0 {
		b.WriteString("\n\n[attachments]")
		for _, att := range m.Attachments {
			b.WriteString("\nfile: " + att.Filename + " (" + att.MediaType + ")")
			if att.ExtractedText != "" {
				b.WriteString("\n[attachment text]\n" + att.ExtractedText)
			}
		}
	}

	return b.String()
}

// RenderChunk renders a conversation chunk into the text blob submitted to
// the index collaborator: a metadata header, a chronological turn-by-turn
// transcript, and a trailing manifest of member message IDs. The manifest
// lets the query path map an answer back to concrete messages.
// Messages must be in the chunk's MessageIds order.
func RenderChunk(chunk *ConversationChunk, messages []*Message) string {
	var b strings.Builder

	b.WriteString("[metadata]\n")
	b.WriteString("channel: #" + chunk.ChannelName + "\n")
	if chunk.ThreadName != "" {
		b.WriteString("thread: " + chunk.ThreadName + "\n")
	}
	b.WriteString("from: " + chunk.StartTime.UTC().Format(renderTimeLayout) + "\n")
	b.WriteString("to: " + chunk.EndTime.UTC().Format(renderTimeLayout) + "\n")
	b.WriteString("participants: " + strings.Join(chunk.Participants, ", ") + "\n")

	b.WriteString("\n[transcript]\n")
	for _, msg := range messages {
		b.WriteString("[" + msg.Timestamp.UTC().Format(renderTimeLayout) + "] ")
		b.WriteString(msg.AuthorName + ": " + msg.Body + "\n")
		for _, att := range msg.Attachments {
			b.WriteString("  (attachment: " + att.Filename + ")\n")
			if att.ExtractedText != "" {
				b.WriteString("  " + strings.ReplaceAll(att.ExtractedText, "\n", "\n  ") + "\n")
			}
		}
	}

	b.WriteString("\n[message-ids]\n")
	for _, id := range chunk.MessageIds {
		b.WriteString(MessageDocPrefix + id + "\n")
	}

	return b.String()
}
