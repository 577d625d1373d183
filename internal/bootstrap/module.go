package bootstrap

import (
	"context"
	"log/slog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Krosebrook/Flash-n-Frame/internal/accel"
	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/config"
	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/database"
	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/logging"
	"github.com/Krosebrook/Flash-n-Frame/internal/infrastructure/gemini"
	sqliterepo "github.com/Krosebrook/Flash-n-Frame/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "github.com/Krosebrook/Flash-n-Frame/internal/infrastructure/persistence/sqlite/uow"
	"github.com/Krosebrook/Flash-n-Frame/internal/infrastructure/sourcehost"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewGenerationRepository,
			fx.As(new(ports.GenerationRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewTaskRepository,
			fx.As(new(ports.TaskRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(provideGenerator),
	fx.Provide(provideSourceHost),
	fx.Provide(provideArticleFetcher),
	fx.Provide(provideCache),
	fx.Provide(provideStyleStore),
	fx.Provide(studio.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideGenerator(cfg config.Config) ports.Generator {
	return gemini.NewLazy(gemini.Config{
		APIKey:     cfg.Generator.APIKey,
		ImageModel: cfg.Generator.ImageModel,
		TextModel:  cfg.Generator.TextModel,
	})
}

func provideSourceHost(cfg config.Config) ports.SourceHost {
	return sourcehost.NewGitHub(cfg.Source.GitHubToken)
}

func provideArticleFetcher() ports.ArticleFetcher {
	// nil gets the fetcher's own client, which carries the request
	// timeout; http.DefaultClient has none.
	return sourcehost.NewArticleClient(nil)
}

func provideCache(cfg config.Config) *accel.Cache {
	if cfg.Cache.MaxEntries > 0 {
		return accel.NewCache(accel.WithMaxEntries(cfg.Cache.MaxEntries))
	}
	return accel.NewCache()
}

func provideStyleStore(cfg config.Config) (*studio.StyleStore, error) {
	return studio.NewStyleStore(cfg.Styles.File)
}
