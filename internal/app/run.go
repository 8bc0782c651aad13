package app

import (
	"context"
	"fmt"

	"github.com/vk/shipgridgo/internal/ctxlog"
	"github.com/vk/shipgridgo/internal/runner"
)

// Run executes the main application logic based on the provided
// configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	run := runner.New(a.registry)

	if len(a.pipeline.Steps) == 0 {
		a.logger.Warn("No steps found in pipeline, execution not required.")
		return nil
	}

	if a.config.DryRun {
		a.logger.Info("Dry run: steps listed in execution order, nothing executed.")
		for position, id := range run.Plan(a.pipeline) {
			a.logger.Info("Planned step.", "position", position+1, "step", id)
			fmt.Fprintf(a.outW, "%3d. %s\n", position+1, id)
		}
		return nil
	}

	a.logger.Info("🚀 Starting sequential execution.", "steps", len(a.pipeline.Steps))
	if err := run.Run(ctx, a.pipeline); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
