// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	sliceVQaSvZzdcQwpf8fYV84rZAΞΞ = ord.NewSliceSer[string](ord.String)
	slicejI94Iq21sJVAPRilADcj3AΞΞ = ord.NewSliceSer[Attachment](AttachmentMUS)
)

var KeyMUS = keyMUS{}

type keyMUS struct{}

func (s keyMUS) Marshal(v Key, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s keyMUS) Unmarshal(bs []byte) (v Key, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Key(tmp)
	return
}

func (s keyMUS) Size(v Key) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s keyMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var RunKindMUS = runKindMUS{}

type runKindMUS struct{}

func (s runKindMUS) Marshal(v RunKind, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s runKindMUS) Unmarshal(bs []byte) (v RunKind, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = RunKind(tmp)
	return
}

func (s runKindMUS) Size(v RunKind) (size int) {
	return varint.Int.Size(int(v))
}

func (s runKindMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var RunStateMUS = runStateMUS{}

type runStateMUS struct{}

func (s runStateMUS) Marshal(v RunState, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s runStateMUS) Unmarshal(bs []byte) (v RunState, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = RunState(tmp)
	return
}

func (s runStateMUS) Size(v RunState) (size int) {
	return varint.Int.Size(int(v))
}

func (s runStateMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var AttachmentMUS = attachmentMUS{}

type attachmentMUS struct{}

func (s attachmentMUS) Marshal(v Attachment, bs []byte) (n int) {
	n = ord.String.Marshal(v.Filename, bs)
	n += ord.String.Marshal(v.MediaType, bs[n:])
	n += ord.String.Marshal(v.SourceURL, bs[n:])
	return n + ord.String.Marshal(v.ExtractedText, bs[n:])
}

func (s attachmentMUS) Unmarshal(bs []byte) (v Attachment, n int, err error) {
	v.Filename, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.MediaType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ExtractedText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s attachmentMUS) Size(v Attachment) (size int) {
	size = ord.String.Size(v.Filename)
	size += ord.String.Size(v.MediaType)
	size += ord.String.Size(v.SourceURL)
	return size + ord.String.Size(v.ExtractedText)
}

func (s attachmentMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var MessageMUS = messageMUS{}

type messageMUS struct{}

func (s messageMUS) Marshal(v Message, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ChannelId, bs[n:])
	n += ord.String.Marshal(v.ChannelName, bs[n:])
	n += ord.String.Marshal(v.ThreadId, bs[n:])
	n += ord.String.Marshal(v.ThreadName, bs[n:])
	n += ord.String.Marshal(v.AuthorId, bs[n:])
	n += ord.String.Marshal(v.AuthorName, bs[n:])
	n += ord.String.Marshal(v.Body, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Timestamp, bs[n:])
	n += slicejI94Iq21sJVAPRilADcj3AΞΞ.Marshal(v.Attachments, bs[n:])
	n += ord.String.Marshal(v.JumpURL, bs[n:])
	n += ord.String.Marshal(v.IndexRef, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.IndexedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s messageMUS) Unmarshal(bs []byte) (v Message, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ChannelId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChannelName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ThreadId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ThreadName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AuthorId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AuthorName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Body, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Attachments, n1, err = slicejI94Iq21sJVAPRilADcj3AΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.JumpURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IndexRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IndexedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s messageMUS) Size(v Message) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.ChannelId)
	size += ord.String.Size(v.ChannelName)
	size += ord.String.Size(v.ThreadId)
	size += ord.String.Size(v.ThreadName)
	size += ord.String.Size(v.AuthorId)
	size += ord.String.Size(v.AuthorName)
	size += ord.String.Size(v.Body)
	size += raw.TimeUnixMicro.Size(v.Timestamp)
	size += slicejI94Iq21sJVAPRilADcj3AΞΞ.Size(v.Attachments)
	size += ord.String.Size(v.JumpURL)
	size += ord.String.Size(v.IndexRef)
	size += raw.TimeUnixMicro.Size(v.IndexedAt)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s messageMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicejI94Iq21sJVAPRilADcj3AΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ConversationChunkMUS = conversationChunkMUS{}

type conversationChunkMUS struct{}

func (s conversationChunkMUS) Marshal(v ConversationChunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ChannelId, bs[n:])
	n += ord.String.Marshal(v.ChannelName, bs[n:])
	n += ord.String.Marshal(v.ThreadId, bs[n:])
	n += ord.String.Marshal(v.ThreadName, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartTime, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.EndTime, bs[n:])
	n += sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Marshal(v.MessageIds, bs[n:])
	n += sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Marshal(v.Participants, bs[n:])
	n += ord.String.Marshal(v.IndexRef, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.IndexedAt, bs[n:])
}

func (s conversationChunkMUS) Unmarshal(bs []byte) (v ConversationChunk, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ChannelId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChannelName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ThreadId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ThreadName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartTime, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EndTime, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MessageIds, n1, err = sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Participants, n1, err = sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IndexRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IndexedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s conversationChunkMUS) Size(v ConversationChunk) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.ChannelId)
	size += ord.String.Size(v.ChannelName)
	size += ord.String.Size(v.ThreadId)
	size += ord.String.Size(v.ThreadName)
	size += raw.TimeUnixMicro.Size(v.StartTime)
	size += raw.TimeUnixMicro.Size(v.EndTime)
	size += sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Size(v.MessageIds)
	size += sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Size(v.Participants)
	size += ord.String.Size(v.IndexRef)
	return size + raw.TimeUnixMicro.Size(v.IndexedAt)
}

func (s conversationChunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var SyncStatusMUS = syncStatusMUS{}

type syncStatusMUS struct{}

func (s syncStatusMUS) Marshal(v SyncStatus, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += RunKindMUS.Marshal(v.Kind, bs[n:])
	n += RunStateMUS.Marshal(v.State, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CompletedAt, bs[n:])
	n += ord.String.Marshal(v.CheckpointChannelId, bs[n:])
	n += ord.String.Marshal(v.CheckpointMessageId, bs[n:])
	n += varint.Int.Marshal(v.ProcessedCount, bs[n:])
	n += varint.Int.Marshal(v.ErrorCount, bs[n:])
	return n + sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Marshal(v.ErrorMessages, bs[n:])
}

func (s syncStatusMUS) Unmarshal(bs []byte) (v SyncStatus, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Kind, n1, err = RunKindMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.State, n1, err = RunStateMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CompletedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CheckpointChannelId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CheckpointMessageId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcessedCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ErrorCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ErrorMessages, n1, err = sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s syncStatusMUS) Size(v SyncStatus) (size int) {
	size = ord.String.Size(v.Id)
	size += RunKindMUS.Size(v.Kind)
	size += RunStateMUS.Size(v.State)
	size += raw.TimeUnixMicro.Size(v.StartedAt)
	size += raw.TimeUnixMicro.Size(v.CompletedAt)
	size += ord.String.Size(v.CheckpointChannelId)
	size += ord.String.Size(v.CheckpointMessageId)
	size += varint.Int.Size(v.ProcessedCount)
	size += varint.Int.Size(v.ErrorCount)
	return size + sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Size(v.ErrorMessages)
}

func (s syncStatusMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = RunKindMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = RunStateMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceVQaSvZzdcQwpf8fYV84rZAΞΞ.Skip(bs[n:])
	n += n1
	return
}

var SyncedChannelMUS = syncedChannelMUS{}

type syncedChannelMUS struct{}

func (s syncedChannelMUS) Marshal(v SyncedChannel, bs []byte) (n int) {
	n = ord.String.Marshal(v.ChannelId, bs)
	n += ord.String.Marshal(v.DisplayName, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.FirstSyncedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.LastSyncedAt, bs[n:])
}

func (s syncedChannelMUS) Unmarshal(bs []byte) (v SyncedChannel, n int, err error) {
	v.ChannelId, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.DisplayName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FirstSyncedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastSyncedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s syncedChannelMUS) Size(v SyncedChannel) (size int) {
	size = ord.String.Size(v.ChannelId)
	size += ord.String.Size(v.DisplayName)
	size += raw.TimeUnixMicro.Size(v.FirstSyncedAt)
	return size + raw.TimeUnixMicro.Size(v.LastSyncedAt)
}

func (s syncedChannelMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
