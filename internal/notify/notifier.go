// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify implements best-effort fan-out of local activity to sibling
// client instances (other windows or processes sharing the same cache).
//
// Instances append JSON lines to a shared events file and watch it with
// fsnotify. The channel is lossy by design: messages carry no payload a
// consumer could not rebuild by refreshing from the local cache, so a lost
// or torn line only costs staleness until the next refresh. Consumers must
// never react by starting a remote sync, to avoid request storms when many
// instances are open.
package notify

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/models"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

const eventsFileName = "events.jsonl"

// Notifier is the cross-instance side channel. Publish never blocks on
// consumers; Subscribe handlers run on the watcher goroutine.
type Notifier interface {
	Publish(ctx context.Context, msg models.NotifyMessage) error
	Subscribe(handler func(models.NotifyMessage)) (unsubscribe func())
	Close() error
}

type fileNotifier struct {
	instance string
	path     string
	watcher  *fsnotify.Watcher
	logger   *logger.Logger

	mu     sync.Mutex
	offset int64

	subMu    sync.Mutex
	nextID   int
	handlers map[int]func(models.NotifyMessage)

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFileNotifier opens (creating if needed) the shared events file under
// dir and starts watching it. Messages written before this instance started
// are history and are not replayed.
func NewFileNotifier(dir string, logger *logger.Logger) (Notifier, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create notify dir: %w", err)
	}

	path := filepath.Join(dir, eventsFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	_ = f.Close()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat events file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create events watcher: %w", err)
	}
	if err = watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch notify dir: %w", err)
	}

	n := &fileNotifier{
		instance: uuid.NewString(),
		path:     path,
		watcher:  watcher,
		logger:   logger,
		offset:   info.Size(),
		handlers: make(map[int]func(models.NotifyMessage)),
		done:     make(chan struct{}),
	}

	n.wg.Add(1)
	go n.watch()

	return n, nil
}

// Publish implements Notifier. Instance and SentAt are stamped here; callers
// fill only Kind, RecordID, and Action.
func (n *fileNotifier) Publish(_ context.Context, msg models.NotifyMessage) error {
	msg.Instance = n.instance
	msg.SentAt = time.Now().UnixMilli()

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notify message: %w", err)
	}
	payload = append(payload, '\n')

	n.mu.Lock()
	defer n.mu.Unlock()

	f, err := os.OpenFile(n.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open events file for append: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(payload); err != nil {
		return fmt.Errorf("append notify message: %w", err)
	}

	return nil
}

// Subscribe implements Notifier.
func (n *fileNotifier) Subscribe(handler func(models.NotifyMessage)) (unsubscribe func()) {
	n.subMu.Lock()
	defer n.subMu.Unlock()

	id := n.nextID
	n.nextID++
	n.handlers[id] = handler

	return func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()
		delete(n.handlers, id)
	}
}

// Close implements Notifier. It stops the watcher goroutine and releases the
// underlying file watches.
func (n *fileNotifier) Close() error {
	close(n.done)
	err := n.watcher.Close()
	n.wg.Wait()
	return err
}

func (n *fileNotifier) watch() {
	defer n.wg.Done()

	for {
		select {
		case <-n.done:
			return
		case event, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != eventsFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			n.consume()
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
			n.logger.Warn().Err(err).Msg("events watcher error")
		}
	}
}

// consume reads event lines appended since the last read and dispatches
// every message from sibling instances. Unparseable lines are skipped, not
// fatal.
func (n *fileNotifier) consume() {
	n.mu.Lock()
	defer n.mu.Unlock()

	f, err := os.Open(n.path)
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to open events file for read")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to stat events file")
		return
	}
	if info.Size() < n.offset {
		// File was truncated or rotated under us; start over.
		n.offset = 0
	}

	if _, err = f.Seek(n.offset, io.SeekStart); err != nil {
		n.logger.Warn().Err(err).Msg("failed to seek events file")
		return
	}

	scanner := bufio.NewScanner(f)
	consumed := n.offset
	for scanner.Scan() {
		line := scanner.Bytes()
		consumed += int64(len(line)) + 1

		var msg models.NotifyMessage
		if err = json.Unmarshal(line, &msg); err != nil {
			n.logger.Debug().Err(err).Msg("skipping malformed event line")
			continue
		}
		if msg.Instance == n.instance {
			continue
		}

		n.dispatch(msg)
	}
	n.offset = consumed
}

func (n *fileNotifier) dispatch(msg models.NotifyMessage) {
	n.subMu.Lock()
	handlers := make([]func(models.NotifyMessage), 0, len(n.handlers))
	for _, h := range n.handlers {
		handlers = append(handlers, h)
	}
	n.subMu.Unlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					n.logger.Error().
						Any("panic", r).
						Str("kind", msg.Kind).
						Msg("notify handler panicked")
				}
			}()
			handler(msg)
		}()
	}
}
