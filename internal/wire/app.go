package wire

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/chostmd/internal/config"
	"github.com/mithrel/chostmd/internal/db"
	"github.com/mithrel/chostmd/internal/logging"
	"github.com/mithrel/chostmd/internal/render"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      *viper.Viper
	Log      *zap.Logger
	Renderer *render.Renderer
}

// BuildApp validates the config and wires dependencies from it.
func BuildApp(ctx context.Context, v *viper.Viper, debug bool) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	loc, err := config.Location(v)
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg:      v,
		Log:      logging.New(v.GetString("log.level"), debug),
		Renderer: render.NewRenderer(loc),
	}, nil
}

// OpenManifest opens the manifest for an export into outDir. It returns a nil
// Store when the manifest is disabled.
func (a *App) OpenManifest(ctx context.Context, outDir string) (db.Store, error) {
	dsn := config.ResolveManifestPath(a.Cfg, outDir)
	if dsn == "" {
		return nil, nil
	}
	a.Log.Debug("opening manifest", zap.String("dsn", dsn))
	s, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", dsn, err)
	}
	return s, nil
}
