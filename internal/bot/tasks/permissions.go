package tasks

import "github.com/go-telegram/bot/models"

// PermissionRecord is the bot's membership status in a chat and the two
// capabilities it needs. A nil flag means Telegram did not report it for
// that status.
type PermissionRecord struct {
	Status             models.ChatMemberType
	CanDeleteMessages  *bool
	CanRestrictMembers *bool
}

// NewPermissionRecord extracts a PermissionRecord from a chat member.
func NewPermissionRecord(member *models.ChatMember) PermissionRecord {
	if member == nil {
		return PermissionRecord{}
	}

	rec := PermissionRecord{Status: member.Type}
	if member.Type == models.ChatMemberTypeAdministrator && member.Administrator != nil {
		canDelete := member.Administrator.CanDeleteMessages
		canRestrict := member.Administrator.CanRestrictMembers
		rec.CanDeleteMessages = &canDelete
		rec.CanRestrictMembers = &canRestrict
	}
	return rec
}

// Elevated reports whether the bot is an administrator or the owner.
func (p PermissionRecord) Elevated() bool {
	return p.Status == models.ChatMemberTypeAdministrator || p.Status == models.ChatMemberTypeOwner
}

// DeleteExplicitlyDenied reports whether Telegram reported the delete right
// and it is off.
func (p PermissionRecord) DeleteExplicitlyDenied() bool {
	return p.CanDeleteMessages != nil && !*p.CanDeleteMessages
}

// flag renders an optional capability for logs.
func flag(v *bool) any {
	if v == nil {
		return "<none>"
	}
	return *v
}
