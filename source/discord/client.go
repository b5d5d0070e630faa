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

// Package discord implements source.MessageSource over the Discord REST
// API. Only read endpoints are used: guild channel listing, archived
// thread listing, and message history pagination.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/convodex/convodex/source"
)

const (
	defaultBaseURL  = "https://discord.com/api/v10"
	defaultPageSize = 100

	// Discord epoch: 2015-01-01T00:00:00Z in Unix milliseconds.
	snowflakeEpoch = 1420070400000

	channelTypeGuildText = 0
)

// Client implements source.MessageSource over the Discord REST API.
type Client struct {
	token    string
	baseURL  string
	pageSize int
	http     *http.Client
}

var _ source.MessageSource = (*Client)(nil)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithPageSize sets the history page size (max 100 per the API).
func WithPageSize(size int) Option {
	return func(c *Client) {
		c.pageSize = size
	}
}

// NewClient creates a Discord REST client authenticated with a bot token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}

	c := &Client{
		token:    token,
		baseURL:  defaultBaseURL,
		pageSize: defaultPageSize,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.pageSize < 1 || c.pageSize > 100 {
		return nil, fmt.Errorf("discord: page size %d out of range", c.pageSize)
	}
	return c, nil
}

type apiChannel struct {
	Id       string `json:"id"`
	Type     int    `json:"type"`
	Name     string `json:"name"`
	ParentId string `json:"parent_id"`
}

type apiThreadList struct {
	Threads []apiChannel `json:"threads"`
	HasMore bool         `json:"has_more"`
}

type apiAuthor struct {
	Id         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
}

type apiAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

type apiMessage struct {
	Id          string          `json:"id"`
	ChannelId   string          `json:"channel_id"`
	GuildId     string          `json:"guild_id"`
	Author      apiAuthor       `json:"author"`
	Content     string          `json:"content"`
	Timestamp   time.Time       `json:"timestamp"`
	Attachments []apiAttachment `json:"attachments"`
}

// Channels enumerates the guild's text channels, then the archived public
// threads under each of them.
func (c *Client) Channels(ctx context.Context, guildID string) ([]source.Channel, error) {
	var raw []apiChannel
	if err := c.get(ctx, fmt.Sprintf("/guilds/%s/channels", guildID), nil, &raw); err != nil {
		return nil, fmt.Errorf("list guild channels: %w", err)
	}

	var channels []source.Channel
	for _, ch := range raw {
		if ch.Type != channelTypeGuildText {
			continue
		}
		channels = append(channels, source.Channel{
			Id:   ch.Id,
			Name: ch.Name,
		})
	}

	// Archived threads come after their parent channels so a full sync
	// lands channel history before thread history.
	var threads []source.Channel
	for _, parent := range channels {
		found, err := c.archivedThreads(ctx, parent.Id)
		if err != nil {
			return nil, fmt.Errorf("list archived threads of %s: %w", parent.Id, err)
		}
		threads = append(threads, found...)
	}

	return append(channels, threads...), nil
}

func (c *Client) archivedThreads(ctx context.Context, channelID string) ([]source.Channel, error) {
	var threads []source.Channel
	var before string

	for {
		query := url.Values{"limit": {strconv.Itoa(c.pageSize)}}
		if before != "" {
			query.Set("before", before)
		}

		var page apiThreadList
		if err := c.get(ctx, fmt.Sprintf("/channels/%s/threads/archived/public", channelID), query, &page); err != nil {
			return nil, err
		}

		for _, th := range page.Threads {
			threads = append(threads, source.Channel{
				Id:       th.Id,
				Name:     th.Name,
				ParentId: channelID,
				IsThread: true,
			})
		}

		if !page.HasMore || len(page.Threads) == 0 {
			return threads, nil
		}
		before = page.Threads[len(page.Threads)-1].Id
	}
}

// History streams a channel's messages ascending by timestamp, starting
// after the given cursor. Pagination uses the `after` snowflake parameter,
// which the API returns in ascending ID order.
func (c *Client) History(ctx context.Context, channelID string, after *time.Time, fn func(source.RawMessage) error) error {
	cursor := "0"
	if after != nil {
		cursor = snowflakeFromTime(*after)
	}

	for {
		query := url.Values{
			"after": {cursor},
			"limit": {strconv.Itoa(c.pageSize)},
		}

		var page []apiMessage
		if err := c.get(ctx, fmt.Sprintf("/channels/%s/messages", channelID), query, &page); err != nil {
			return fmt.Errorf("fetch history of %s: %w", channelID, err)
		}
		if len(page) == 0 {
			return nil
		}

		// The API documents ascending order with `after`, but sort anyway
		// since callers depend on it.
		sort.Slice(page, func(i, j int) bool { return page[i].Timestamp.Before(page[j].Timestamp) })

		for _, msg := range page {
			if err := fn(c.toRawMessage(msg, channelID)); err != nil {
				return err
			}
		}

		cursor = page[len(page)-1].Id
		if len(page) < c.pageSize {
			return nil
		}
	}
}

func (c *Client) toRawMessage(msg apiMessage, channelID string) source.RawMessage {
	author := msg.Author.GlobalName
	if author == "" {
		author = msg.Author.Username
	}

	guildPart := msg.GuildId
	if guildPart == "" {
		guildPart = "@me"
	}

	raw := source.RawMessage{
		Id:         msg.Id,
		AuthorId:   msg.Author.Id,
		AuthorName: author,
		Body:       msg.Content,
		Timestamp:  msg.Timestamp.UTC(),
		JumpURL:    fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildPart, channelID, msg.Id),
	}
	for _, att := range msg.Attachments {
		raw.Attachments = append(raw.Attachments, source.RawAttachment{
			Filename:  att.Filename,
			MediaType: att.ContentType,
			SourceURL: att.URL,
		})
	}
	return raw
}

// get performs an authenticated GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// snowflakeFromTime converts a timestamp to the smallest snowflake ID
// minted at or after it.
func snowflakeFromTime(ts time.Time) string {
	ms := ts.UnixMilli() - snowflakeEpoch
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatUint(uint64(ms)<<22, 10)
}
