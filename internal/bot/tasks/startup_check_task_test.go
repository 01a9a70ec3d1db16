package tasks

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/purgebot/internal/config"
)

type fakeClient struct {
	me        *models.User
	meErr     error
	chat      *models.ChatFullInfo
	chatErr   error
	member    *models.ChatMember
	memberErr error

	getMeCalls      int
	getMemberCalls  int
	memberRequested *bot.GetChatMemberParams
}

func (c *fakeClient) DeleteMessage(context.Context, *bot.DeleteMessageParams) (bool, error) {
	return false, errors.New("unexpected delete")
}

func (c *fakeClient) GetMe(context.Context) (*models.User, error) {
	c.getMeCalls++
	return c.me, c.meErr
}

func (c *fakeClient) GetChat(_ context.Context, params *bot.GetChatParams) (*models.ChatFullInfo, error) {
	return c.chat, c.chatErr
}

func (c *fakeClient) GetChatMember(_ context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error) {
	c.getMemberCalls++
	c.memberRequested = params
	return c.member, c.memberErr
}

func admin(canDelete bool) *models.ChatMember {
	return &models.ChatMember{
		Type: models.ChatMemberTypeAdministrator,
		Administrator: &models.ChatMemberAdministrator{
			CanDeleteMessages:  canDelete,
			CanRestrictMembers: true,
		},
	}
}

func runStartupCheck(t *testing.T, client *fakeClient) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	deps := TaskDeps{
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Config: &config.Config{TargetChatID: 100, BlockedUserID: 7},
		Client: client,
	}
	err := NewStartupCheckTask(deps)(context.Background())
	return buf.String(), err
}

func TestStartupCheck(t *testing.T) {
	t.Parallel()

	self := &models.User{ID: 42, Username: "purge_bot", IsBot: true}
	group := &models.ChatFullInfo{ID: 100, Type: models.ChatTypeSupergroup, Title: "Group"}

	tests := []struct {
		name        string
		client      *fakeClient
		wantErr     bool
		wantLogs    []string
		wantNotLogs []string
		wantMember  bool
	}{
		{
			name:       "permissions correct",
			client:     &fakeClient{me: self, chat: group, member: admin(true)},
			wantLogs:   []string{"username=purge_bot", "title=Group", "can_delete_messages=true", "Permissions look correct"},
			wantMember: true,
		},
		{
			name:       "owner",
			client:     &fakeClient{me: self, chat: group, member: &models.ChatMember{Type: models.ChatMemberTypeOwner, Owner: &models.ChatMemberOwner{}}},
			wantLogs:   []string{"status=creator", "can_delete_messages=<none>", "Permissions look correct"},
			wantMember: true,
		},
		{
			name:       "not an administrator",
			client:     &fakeClient{me: self, chat: group, member: &models.ChatMember{Type: models.ChatMemberTypeMember, Member: &models.ChatMemberMember{}}},
			wantLogs:   []string{"level=WARN", "not an administrator"},
			wantMember: true,
		},
		{
			name:        "administrator without delete right",
			client:      &fakeClient{me: self, chat: group, member: admin(false)},
			wantLogs:    []string{"level=WARN", "lacks the 'Delete messages' right"},
			wantNotLogs: []string{"Permissions look correct"},
			wantMember:  true,
		},
		{
			name:       "linked discussion chat",
			client:     &fakeClient{me: self, chat: &models.ChatFullInfo{ID: 100, Type: models.ChatTypeChannel, LinkedChatID: 200}, member: admin(true)},
			wantLogs:   []string{"level=WARN", "linked_chat_id=200"},
			wantMember: true,
		},
		{
			name:        "chat lookup fails",
			client:      &fakeClient{me: self, chatErr: errors.New("chat not found")},
			wantErr:     true,
			wantLogs:    []string{"level=ERROR", "Failed to get target chat"},
			wantNotLogs: []string{"Bot permissions"},
			wantMember:  false,
		},
		{
			name:        "member lookup fails",
			client:      &fakeClient{me: self, chat: group, memberErr: errors.New("timeout")},
			wantErr:     true,
			wantLogs:    []string{"level=ERROR", "Failed to check bot permissions"},
			wantNotLogs: []string{"Permissions look correct"},
			wantMember:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logs, err := runStartupCheck(t, tt.client)
			if (err != nil) != tt.wantErr {
				t.Errorf("task error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantLogs {
				if !strings.Contains(logs, want) {
					t.Errorf("logs missing %q:\n%s", want, logs)
				}
			}
			for _, unwanted := range tt.wantNotLogs {
				if strings.Contains(logs, unwanted) {
					t.Errorf("logs unexpectedly contain %q:\n%s", unwanted, logs)
				}
			}
			if got := tt.client.getMemberCalls > 0; got != tt.wantMember {
				t.Errorf("GetChatMember called = %v, want %v", got, tt.wantMember)
			}
		})
	}
}

func TestStartupCheckRetriesIdentityForPermissionLookup(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		meErr:  errors.New("temporary failure"),
		chat:   &models.ChatFullInfo{ID: 100, Type: models.ChatTypeSupergroup},
		member: admin(true),
	}

	logs, err := runStartupCheck(t, client)
	if err == nil {
		t.Error("task error = nil, want the identity failure reported")
	}
	if client.getMeCalls != 2 {
		t.Errorf("GetMe called %d times, want 2", client.getMeCalls)
	}
	if client.getMemberCalls != 0 {
		t.Errorf("GetChatMember called %d times, want 0 without a bot id", client.getMemberCalls)
	}
	if !strings.Contains(logs, "Failed to get bot info") {
		t.Errorf("logs missing identity failure:\n%s", logs)
	}
}

func TestStartupCheckUsesBotID(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		me:     &models.User{ID: 42},
		chat:   &models.ChatFullInfo{ID: 100},
		member: admin(true),
	}
	if _, err := runStartupCheck(t, client); err != nil {
		t.Fatalf("task error = %v", err)
	}
	if client.memberRequested == nil || client.memberRequested.UserID != 42 || client.memberRequested.ChatID != int64(100) {
		t.Errorf("GetChatMember params = %+v, want chat 100 user 42", client.memberRequested)
	}
}

func TestPermissionRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		member     *models.ChatMember
		elevated   bool
		deleteDeny bool
	}{
		{"nil", nil, false, false},
		{"admin with delete", admin(true), true, false},
		{"admin without delete", admin(false), true, true},
		{"owner", &models.ChatMember{Type: models.ChatMemberTypeOwner}, true, false},
		{"member", &models.ChatMember{Type: models.ChatMemberTypeMember}, false, false},
		{"left", &models.ChatMember{Type: models.ChatMemberTypeLeft}, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := NewPermissionRecord(tt.member)
			if rec.Elevated() != tt.elevated {
				t.Errorf("Elevated() = %v, want %v", rec.Elevated(), tt.elevated)
			}
			if rec.DeleteExplicitlyDenied() != tt.deleteDeny {
				t.Errorf("DeleteExplicitlyDenied() = %v, want %v", rec.DeleteExplicitlyDenied(), tt.deleteDeny)
			}
		})
	}
}
