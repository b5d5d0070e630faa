package storage

import (
	"testing"
	"time"

	"github.com/convodex/convodex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalKey(t *testing.T) {
	tests := []struct {
		name string
		key  core.Key
	}{
		{"zero key", core.Key(0)},
		{"small key", core.Key(42)},
		{"max key", core.Key(18446744073709551615)},
		{"hashed key", core.KeyFromString("123456789012345678")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalKey(tt.key)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalKey(data)
			require.NoError(t, err)
			assert.Equal(t, tt.key, decoded)
		})
	}
}

func TestUnmarshalKey_Invalid(t *testing.T) {
	_, err := UnmarshalKey([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalMessage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		msg  *core.Message
	}{
		{
			name: "minimal message",
			msg: &core.Message{
				Id:         "111",
				ChannelId:  "ch1",
				AuthorId:   "a1",
				Body:       "hello",
				Timestamp:  now,
				InsertedAt: now,
			},
		},
		{
			name: "message in a thread with attachments",
			msg: &core.Message{
				Id:          "222",
				ChannelId:   "ch1",
				ChannelName: "general",
				ThreadId:    "th1",
				ThreadName:  "release planning",
				AuthorId:    "a2",
				AuthorName:  "bob",
				Body:        "see screenshot",
				Timestamp:   now,
				Attachments: []core.Attachment{
					{Filename: "s.png", MediaType: "image/png", SourceURL: "https://cdn.example/s.png", ExtractedText: "error dialog"},
					{Filename: "notes.txt", MediaType: "text/plain", SourceURL: "https://cdn.example/notes.txt"},
				},
				JumpURL:    "https://chat.example/ch1/222",
				IndexRef:   "files/abc",
				IndexedAt:  now,
				InsertedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalMessage(tt.msg)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalMessage(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.msg.Id, decoded.Id)
			assert.Equal(t, tt.msg.ChannelId, decoded.ChannelId)
			assert.Equal(t, tt.msg.ChannelName, decoded.ChannelName)
			assert.Equal(t, tt.msg.ThreadId, decoded.ThreadId)
			assert.Equal(t, tt.msg.ThreadName, decoded.ThreadName)
			assert.Equal(t, tt.msg.AuthorId, decoded.AuthorId)
			assert.Equal(t, tt.msg.AuthorName, decoded.AuthorName)
			assert.Equal(t, tt.msg.Body, decoded.Body)
			assert.True(t, tt.msg.Timestamp.Equal(decoded.Timestamp))
			assert.Equal(t, tt.msg.JumpURL, decoded.JumpURL)
			assert.Equal(t, tt.msg.IndexRef, decoded.IndexRef)
			assert.True(t, tt.msg.IndexedAt.Equal(decoded.IndexedAt))
			assert.True(t, tt.msg.InsertedAt.Equal(decoded.InsertedAt))
			// Handle nil vs empty slice
			if len(tt.msg.Attachments) == 0 {
				assert.Empty(t, decoded.Attachments)
			} else {
				assert.Equal(t, tt.msg.Attachments, decoded.Attachments)
			}
		})
	}
}

func TestUnmarshalMessage_Truncated(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	data := MarshalMessage(&core.Message{
		Id: "111", ChannelId: "ch1", Body: "hello", Timestamp: now, InsertedAt: now,
	})

	_, err := UnmarshalMessage(data[:len(data)/2])
	assert.Error(t, err)
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	chunk := &core.ConversationChunk{
		Id:           "c1",
		ChannelId:    "ch1",
		ChannelName:  "general",
		ThreadId:     "th1",
		ThreadName:   "incident",
		StartTime:    now.Add(-30 * time.Minute),
		EndTime:      now,
		MessageIds:   []string{"m1", "m2", "m3"},
		Participants: []string{"alice", "bob"},
		IndexRef:     "files/def",
		IndexedAt:    now,
	}

	decoded, err := UnmarshalChunk(MarshalChunk(chunk))
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, chunk.Id, decoded.Id)
	assert.Equal(t, chunk.ChannelId, decoded.ChannelId)
	assert.Equal(t, chunk.ChannelName, decoded.ChannelName)
	assert.Equal(t, chunk.ThreadId, decoded.ThreadId)
	assert.Equal(t, chunk.ThreadName, decoded.ThreadName)
	assert.True(t, chunk.StartTime.Equal(decoded.StartTime))
	assert.True(t, chunk.EndTime.Equal(decoded.EndTime))
	assert.Equal(t, chunk.MessageIds, decoded.MessageIds)
	assert.Equal(t, chunk.Participants, decoded.Participants)
	assert.Equal(t, chunk.IndexRef, decoded.IndexRef)
	assert.True(t, chunk.IndexedAt.Equal(decoded.IndexedAt))
}

func TestMarshalUnmarshalSyncStatus(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	status := &core.SyncStatus{
		Id:                  "r1",
		Kind:                core.RunKindInitial,
		State:               core.RunStateFailed,
		StartedAt:           now.Add(-time.Hour),
		CompletedAt:         now,
		CheckpointChannelId: "ch1",
		CheckpointMessageId: "m99",
		ProcessedCount:      1200,
		ErrorCount:          3,
		ErrorMessages:       []string{"fetch ch2: boom", "persist m7: disk full"},
	}

	decoded, err := UnmarshalSyncStatus(MarshalSyncStatus(status))
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, status.Id, decoded.Id)
	assert.Equal(t, status.Kind, decoded.Kind)
	assert.Equal(t, status.State, decoded.State)
	assert.True(t, status.StartedAt.Equal(decoded.StartedAt))
	assert.True(t, status.CompletedAt.Equal(decoded.CompletedAt))
	assert.Equal(t, status.CheckpointChannelId, decoded.CheckpointChannelId)
	assert.Equal(t, status.CheckpointMessageId, decoded.CheckpointMessageId)
	assert.Equal(t, status.ProcessedCount, decoded.ProcessedCount)
	assert.Equal(t, status.ErrorCount, decoded.ErrorCount)
	assert.Equal(t, status.ErrorMessages, decoded.ErrorMessages)
}

func TestMarshalUnmarshalSyncedChannel(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	mark := &core.SyncedChannel{
		ChannelId:     "ch1",
		DisplayName:   "general",
		FirstSyncedAt: now.Add(-24 * time.Hour),
		LastSyncedAt:  now,
	}

	decoded, err := UnmarshalSyncedChannel(MarshalSyncedChannel(mark))
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, mark.ChannelId, decoded.ChannelId)
	assert.Equal(t, mark.DisplayName, decoded.DisplayName)
	assert.True(t, mark.FirstSyncedAt.Equal(decoded.FirstSyncedAt))
	assert.True(t, mark.LastSyncedAt.Equal(decoded.LastSyncedAt))
}
