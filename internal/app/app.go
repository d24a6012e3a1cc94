package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rotation-engine/internal/config"
	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	cacherepo "github.com/riskibarqy/rotation-engine/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/rotation-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rotation-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/rotation-engine/internal/infrastructure/seasonfile"
	"github.com/riskibarqy/rotation-engine/internal/interfaces/cli"
	basecache "github.com/riskibarqy/rotation-engine/internal/platform/cache"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
	"github.com/riskibarqy/rotation-engine/internal/usecase"
)

// App holds the wired use cases and whatever must be closed on exit.
type App struct {
	Services cli.Services
	db       *sqlx.DB
}

type repositories struct {
	game     game.Repository
	roster   roster.Repository
	rotation rotation.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	defaultRules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	app := &App{}
	repos, err := app.repositories(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos = repositories{
			game:     cacherepo.NewGameRepository(repos.game, store),
			roster:   cacherepo.NewRosterRepository(repos.roster, store),
			rotation: cacherepo.NewRotationRepository(repos.rotation, store),
		}
	}

	app.Services = cli.Services{
		Rotation:   usecase.NewRotationService(repos.game, repos.roster, repos.rotation, defaultRules, logger),
		Season:     usecase.NewSeasonService(repos.game, repos.roster, repos.rotation, defaultRules, logger),
		Fairness:   usecase.NewFairnessService(repos.game, repos.roster, repos.rotation, defaultRules, logger),
		MaxWorkers: cfg.ValidateMaxWorkers,
		Persistent: cfg.DataSource == config.DataSourcePostgres,
	}
	return app, nil
}

func (a *App) repositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		logger.Info("using postgres data source", "db_name", cfg.DatabaseName())

		if cfg.DBBootstrapSeed {
			data, err := loadDataset(cfg, logger)
			if err != nil {
				return repositories{}, err
			}
			if err := postgres.BootstrapSeed(ctx, db, data); err != nil {
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		return repositories{
			game:     postgres.NewGameRepository(db),
			roster:   postgres.NewRosterRepository(db),
			rotation: postgres.NewRotationRepository(db),
		}, nil
	default:
		data, err := loadDataset(cfg, logger)
		if err != nil {
			return repositories{}, err
		}

		repos := memory.NewRepositories(data)
		return repositories{
			game:     repos.Game,
			roster:   repos.Roster,
			rotation: repos.Rotation,
		}, nil
	}
}

// loadDataset reads the season file when one is configured, else the demo
// season.
func loadDataset(cfg config.Config, logger *logging.Logger) (memory.Dataset, error) {
	if cfg.SeasonFile == "" {
		logger.Info("using demo season", "season_id", memory.SeasonIDDemo)
		return memory.SeedDataset(), nil
	}

	data, err := seasonfile.Load(cfg.SeasonFile)
	if err != nil {
		return memory.Dataset{}, fmt.Errorf("load season file: %w", err)
	}
	logger.Info("using season file", "path", cfg.SeasonFile, "games", len(data.Games), "players", len(data.Players))
	return data, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
