// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/resources"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// The evaluation API timeout doubles as the ceiling for dashboard
	// fetches.
	timeouts.Configure(timeouts.Config{Medium: appCfg.EvalAPITimeout})

	return nil
}
