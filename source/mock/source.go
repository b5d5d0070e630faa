// Package mock provides test doubles for the source package.
package mock

import (
	"context"
	"sort"
	"time"

	"github.com/convodex/convodex/source"
)

// MockSource is a test double for source.MessageSource backed by
// in-memory channel and message fixtures. Custom behavior can be
// injected via function fields.
type MockSource struct {
	// ChannelsFunc is called by Channels if set.
	ChannelsFunc func(ctx context.Context, guildID string) ([]source.Channel, error)

	// HistoryFunc is called by History if set.
	HistoryFunc func(ctx context.Context, channelID string, after *time.Time, fn func(source.RawMessage) error) error

	// ChannelList is the default channel fixture.
	ChannelList []source.Channel

	// Messages maps channel ID to its message fixture; History sorts and
	// filters them to honor the interface contract.
	Messages map[string][]source.RawMessage

	historyCalls int
}

var _ source.MessageSource = (*MockSource)(nil)

// NewMockSource creates an empty mock source.
func NewMockSource() *MockSource {
	return &MockSource{Messages: make(map[string][]source.RawMessage)}
}

// AddChannel registers a channel fixture.
func (m *MockSource) AddChannel(ch source.Channel) {
	m.ChannelList = append(m.ChannelList, ch)
}

// AddMessages appends message fixtures to a channel.
func (m *MockSource) AddMessages(channelID string, msgs ...source.RawMessage) {
	m.Messages[channelID] = append(m.Messages[channelID], msgs...)
}

// Channels returns the channel fixture.
func (m *MockSource) Channels(ctx context.Context, guildID string) ([]source.Channel, error) {
	if m.ChannelsFunc != nil {
		return m.ChannelsFunc(ctx, guildID)
	}
	return m.ChannelList, nil
}

// History streams the channel's fixture messages ascending by timestamp,
// excluding any at or before the cursor.
func (m *MockSource) History(ctx context.Context, channelID string, after *time.Time, fn func(source.RawMessage) error) error {
	m.historyCalls++

	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, channelID, after, fn)
	}

	msgs := make([]source.RawMessage, len(m.Messages[channelID]))
	copy(msgs, m.Messages[channelID])
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })

	for _, msg := range msgs {
		if after != nil && !msg.Timestamp.After(*after) {
			continue
		}
		if err := fn(msg); err != nil {
			return err
		}
	}
	return nil
}

// HistoryCallCount returns the number of History invocations.
func (m *MockSource) HistoryCallCount() int {
	return m.historyCalls
}
