package convodex

import (
	"context"
	"testing"
	"time"

	"github.com/convodex/convodex/core"
	indexmock "github.com/convodex/convodex/index/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenArchiveInMemory(t *testing.T) {
	archive, err := OpenArchive("", WithInMemory(), WithIndexStore(indexmock.NewMockStore()))
	require.NoError(t, err)
	defer archive.Close()

	require.NotNil(t, archive.MessageRepository())
	require.NotNil(t, archive.ChunkRepository())
	require.NotNil(t, archive.SyncRepository())
	require.NotNil(t, archive.IndexStore())

	ctx := context.Background()
	msg := &core.Message{
		Id:        "1",
		ChannelId: "ch1",
		AuthorId:  "a1",
		Body:      "hello",
		Timestamp: time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, archive.MessageRepository().PutMessage(ctx, msg))

	exists, err := archive.MessageRepository().MessageExists(ctx, "1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestArchiveComponentConstructors(t *testing.T) {
	archive, err := OpenArchive("", WithInMemory(), WithIndexStore(indexmock.NewMockStore()))
	require.NoError(t, err)
	defer archive.Close()

	driver, err := archive.NewReindexDriver()
	require.NoError(t, err)
	assert.NotNil(t, driver)

	searcher, err := archive.NewSearcher()
	require.NoError(t, err)
	assert.NotNil(t, searcher)
	defer searcher.Close()
}

func TestOpenArchiveOnDisk(t *testing.T) {
	archive, err := OpenArchive(t.TempDir()+"/archive", WithIndexStore(indexmock.NewMockStore()))
	require.NoError(t, err)
	require.NoError(t, archive.Close())
}
