// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector gathers messages delivered to one notifier instance.
type collector struct {
	mu       sync.Mutex
	messages []models.NotifyMessage
}

func (c *collector) handle(msg models.NotifyMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *collector) snapshot() []models.NotifyMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.NotifyMessage(nil), c.messages...)
}

// appendRawLine writes an arbitrary line to the shared events file,
// simulating a torn write from another process.
func appendRawLine(t *testing.T, dir, line string) {
	t.Helper()

	f, err := os.OpenFile(filepath.Join(dir, eventsFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	require.NoError(t, err)
}

func TestFileNotifier_SiblingReceivesPublishedMessage(t *testing.T) {
	dir := t.TempDir()

	sender, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer sender.Close()

	receiver, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer receiver.Close()

	got := &collector{}
	unsubscribe := receiver.Subscribe(got.handle)
	defer unsubscribe()

	require.NoError(t, sender.Publish(context.Background(), models.NotifyMessage{
		Kind:     models.NotifyRecordMutated,
		RecordID: "a",
		Action:   "update",
	}))

	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	msg := got.snapshot()[0]
	assert.Equal(t, models.NotifyRecordMutated, msg.Kind)
	assert.Equal(t, "a", msg.RecordID)
	assert.Equal(t, "update", msg.Action)
	assert.NotEmpty(t, msg.Instance)
	assert.NotZero(t, msg.SentAt)
}

// An instance must not react to its own messages.
func TestFileNotifier_OwnMessagesAreSkipped(t *testing.T) {
	dir := t.TempDir()

	self, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer self.Close()

	sibling, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer sibling.Close()

	own := &collector{}
	unsubscribe := self.Subscribe(own.handle)
	defer unsubscribe()

	other := &collector{}
	unsubscribeOther := sibling.Subscribe(other.handle)
	defer unsubscribeOther()

	require.NoError(t, self.Publish(context.Background(), models.NotifyMessage{Kind: models.NotifySyncComplete}))

	// The sibling sees it; the sender never does.
	require.Eventually(t, func() bool {
		return len(other.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, own.snapshot())
}

func TestFileNotifier_UnsubscribeStopsDelivery(t *testing.T) {
	dir := t.TempDir()

	sender, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer sender.Close()

	receiver, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer receiver.Close()

	got := &collector{}
	unsubscribe := receiver.Subscribe(got.handle)

	require.NoError(t, sender.Publish(context.Background(), models.NotifyMessage{Kind: models.NotifySyncComplete}))
	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	unsubscribe()

	require.NoError(t, sender.Publish(context.Background(), models.NotifyMessage{Kind: models.NotifySessionChanged}))
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, got.snapshot(), 1)
}

func TestFileNotifier_MalformedLinesAreSkipped(t *testing.T) {
	dir := t.TempDir()

	sender, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer sender.Close()

	receiver, err := NewFileNotifier(dir, logger.Nop())
	require.NoError(t, err)
	defer receiver.Close()

	got := &collector{}
	unsubscribe := receiver.Subscribe(got.handle)
	defer unsubscribe()

	// Corrupt line first, valid message after: the valid one must still land.
	appendRawLine(t, dir, "{torn json")
	require.NoError(t, sender.Publish(context.Background(), models.NotifyMessage{Kind: models.NotifySettingsUpdated}))

	require.Eventually(t, func() bool {
		msgs := got.snapshot()
		return len(msgs) == 1 && msgs[0].Kind == models.NotifySettingsUpdated
	}, 2*time.Second, 10*time.Millisecond)
}
