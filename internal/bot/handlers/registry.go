package handlers

// Stage names, also used as the "handler" log attribute.
const (
	StageModeration = "moderation"
	StageAudit      = "audit"
)

// RegisterAllStages returns the dispatcher stages in priority order:
// moderation first and blocking, then the non-blocking audit log. Both only
// see updates from the configured target chat.
func RegisterAllStages(deps HandlerDeps) []Stage {
	inTarget := InChat(deps.Config.TargetChatID)

	stages := []Stage{
		{
			Name:    StageModeration,
			Match:   inTarget,
			Handler: NewModerationHandler(deps),
		},
		{
			Name:        StageAudit,
			Match:       inTarget,
			Handler:     NewAuditHandler(deps),
			NonBlocking: true,
		},
	}

	deps.Logger.Info("Initialized dispatcher stages", "count", len(stages), "target_chat_id", deps.Config.TargetChatID)
	return stages
}
