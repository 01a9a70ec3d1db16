// Package handlers contains the update dispatcher and the moderation and
// audit handlers it runs for the target chat.
package handlers

import (
	"context"
	"log/slog"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sourcegraph/conc/panics"
)

// Stage is one handler run by the Dispatcher for every update it matches.
type Stage struct {
	Name    string
	Match   tgbot.MatchFunc
	Handler tgbot.HandlerFunc
	// NonBlocking stages are started in their own goroutine once every
	// earlier stage has returned; the dispatcher does not wait for them.
	NonBlocking bool
}

// Dispatcher runs an ordered list of stages for each update. Blocking stages
// run synchronously in order; non-blocking ones are fired off and tracked so
// Wait can drain them on shutdown. A panic in any stage is logged with its
// stack and never reaches the caller.
type Dispatcher struct {
	logger *slog.Logger
	stages []Stage
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher for stages, in priority order.
func NewDispatcher(logger *slog.Logger, stages ...Stage) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger: logger.With("component", "dispatcher"),
		stages: stages,
	}
}

// Handle is a tgbot.HandlerFunc; register it as the bot's default handler.
func (d *Dispatcher) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	matched := 0
	for _, stage := range d.stages {
		if stage.Match != nil && !stage.Match(update) {
			continue
		}
		matched++

		if stage.NonBlocking {
			d.wg.Add(1)
			go func(stage Stage) {
				defer d.wg.Done()
				d.run(ctx, stage, b, update)
			}(stage)
			continue
		}
		d.run(ctx, stage, b, update)
	}

	if matched == 0 {
		d.logger.DebugContext(ctx, "No stage matched update", "update_id", update.ID)
	}
}

// Wait blocks until every non-blocking stage started so far has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context, stage Stage, b *tgbot.Bot, update *models.Update) {
	var pc panics.Catcher
	pc.Try(func() { stage.Handler(ctx, b, update) })
	if r := pc.Recovered(); r != nil {
		d.logger.ErrorContext(ctx, "Unhandled panic in handler",
			"stage", stage.Name,
			"update_id", update.ID,
			"panic", r.Value,
			"stack", string(r.Stack),
		)
	}
}
