package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/purgebot/internal/bot/handlers"
	"github.com/edgard/purgebot/internal/config"
)

// slowDeleteClient records how many deletes overlap.
type slowDeleteClient struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	deletes     int
}

func (c *slowDeleteClient) DeleteMessage(context.Context, *tgbot.DeleteMessageParams) (bool, error) {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.maxInFlight {
		c.maxInFlight = c.inFlight
	}
	c.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	c.mu.Lock()
	c.inFlight--
	c.deletes++
	c.mu.Unlock()
	return true, nil
}

func (c *slowDeleteClient) GetMe(context.Context) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (c *slowDeleteClient) GetChat(context.Context, *tgbot.GetChatParams) (*models.ChatFullInfo, error) {
	return nil, errors.New("not implemented")
}

func (c *slowDeleteClient) GetChatMember(context.Context, *tgbot.GetChatMemberParams) (*models.ChatMember, error) {
	return nil, errors.New("not implemented")
}

func (c *slowDeleteClient) snapshot() (deletes, maxInFlight int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deletes, c.maxInFlight
}

func TestBotOptionsProcessUpdatesOneAtATime(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := &slowDeleteClient{}
	d := handlers.NewDispatcher(log, handlers.RegisterAllStages(handlers.HandlerDeps{
		Logger: log,
		Config: &config.Config{BotToken: "1:x", TargetChatID: 100, BlockedUserID: 7},
		Client: client,
	})...)

	b, err := tgbot.New("1:x", append(botOptions(log, d.Handle), tgbot.WithSkipGetMe())...)
	if err != nil {
		t.Fatalf("tgbot.New() error = %v", err)
	}

	for i, msgID := range []int{55, 56} {
		b.ProcessUpdate(context.Background(), &models.Update{
			ID: int64(msgID),
			Message: &models.Message{
				ID:   msgID,
				Chat: models.Chat{ID: 100},
				From: &models.User{ID: 7},
			},
		})

		// The moderation stage has finished by the time ProcessUpdate returns.
		if deletes, _ := client.snapshot(); deletes != i+1 {
			t.Fatalf("deletes after update %d = %d, want %d", msgID, deletes, i+1)
		}
	}
	d.Wait()

	if _, maxInFlight := client.snapshot(); maxInFlight != 1 {
		t.Errorf("concurrent deletes = %d, want 1", maxInFlight)
	}
}

var configEnv = []string{
	"BOT_TOKEN",
	"TARGET_CHAT_ID",
	"BLOCKED_USER_ID",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"STARTUP_CHECK_ENABLED",
	"STARTUP_CHECK_DELAY",
	"ENV_FILE",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestRunAbortsOnInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"empty environment", nil},
		{"missing target chat", map[string]string{"BOT_TOKEN": "1:x"}},
		{"missing token", map[string]string{"TARGET_CHAT_ID": "100"}},
		{"non-integer target chat", map[string]string{"BOT_TOKEN": "1:x", "TARGET_CHAT_ID": "group"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			done := make(chan int, 1)
			go func() { done <- run(context.Background()) }()

			select {
			case code := <-done:
				if code != 1 {
					t.Errorf("run() = %d, want 1", code)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("run() did not return; it went past configuration loading")
			}
		})
	}
}
