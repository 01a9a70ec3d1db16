package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
)

// NewStartupCheckTask creates the one-shot task that reports who the bot is,
// whether the target chat is reachable, and whether the bot may delete
// messages there. Every step logs its own outcome; a failed chat lookup
// skips the permission lookup.
func NewStartupCheckTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskStartupCheck)
	chatID := deps.Config.TargetChatID

	return func(ctx context.Context) error {
		var errs []error

		me, err := deps.Client.GetMe(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to get bot info", "error", err)
			errs = append(errs, fmt.Errorf("get bot info: %w", err))
		} else {
			log.InfoContext(ctx, "Bot identity", "username", me.Username, "bot_id", me.ID)
		}

		chat, err := deps.Client.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
		if err != nil {
			log.ErrorContext(ctx, "Failed to get target chat", "chat_id", chatID, "error", err)
			errs = append(errs, fmt.Errorf("get chat %d: %w", chatID, err))
			return errors.Join(errs...)
		}
		log.InfoContext(ctx, "Checking target chat", "title", chat.Title, "type", chat.Type, "chat_id", chat.ID)

		if chat.LinkedChatID != 0 {
			log.WarnContext(ctx, "Target chat has a linked discussion chat. Filtering by user id only works there; use it as TARGET_CHAT_ID",
				"linked_chat_id", chat.LinkedChatID,
			)
		}

		if me == nil {
			if me, err = deps.Client.GetMe(ctx); err != nil {
				log.ErrorContext(ctx, "Failed to check bot permissions", "error", err)
				errs = append(errs, fmt.Errorf("get bot info for permission check: %w", err))
				return errors.Join(errs...)
			}
		}

		member, err := deps.Client.GetChatMember(ctx, &bot.GetChatMemberParams{ChatID: chatID, UserID: me.ID})
		if err != nil {
			log.ErrorContext(ctx, "Failed to check bot permissions", "chat_id", chatID, "error", err)
			errs = append(errs, fmt.Errorf("get chat member: %w", err))
			return errors.Join(errs...)
		}

		perms := NewPermissionRecord(member)
		log.InfoContext(ctx, "Bot permissions",
			"status", perms.Status,
			"can_delete_messages", flag(perms.CanDeleteMessages),
			"can_restrict_members", flag(perms.CanRestrictMembers),
		)

		switch {
		case !perms.Elevated():
			log.WarnContext(ctx, "Bot is not an administrator. Promote it and enable 'Delete messages'", "status", perms.Status)
		case perms.DeleteExplicitlyDenied():
			log.WarnContext(ctx, "Bot lacks the 'Delete messages' right. Enable it", "status", perms.Status)
		default:
			log.InfoContext(ctx, "Permissions look correct", "status", perms.Status)
		}

		return errors.Join(errs...)
	}
}
