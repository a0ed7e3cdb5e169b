package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hri-companion/internal/config"
	mysqlClient "hri-companion/internal/platform/mysql"
	rabbitmqClient "hri-companion/internal/platform/rabbitmq"
	redisClient "hri-companion/internal/platform/redis"
	sheetsClient "hri-companion/internal/platform/sheets"
	"hri-companion/internal/store"
	"hri-companion/internal/store/memstore"
	"hri-companion/internal/store/sheetstore"
	"hri-companion/internal/store/sqlstore"
	"hri-companion/internal/worker"
)

type App struct {
	Config      *config.Config
	Store       store.Store
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	RelayWorker *worker.PromptRelayWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	app := &App{
		Config:    cfg,
		StartedAt: time.Now(),
	}

	recordStore, err := newStore(ctx, cfg, app)
	if err != nil {
		return nil, err
	}
	app.Store = store.WithRetry(recordStore, 3)

	if cfg.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		app.Redis = redisCli
	}

	if cfg.RabbitMQ.URL != "" {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.SessionEventQueue)
		if err != nil {
			return nil, err
		}
		app.MQConn = mqConn

		if cfg.Robot.WebhookURL != "" {
			relayWorker := worker.NewPromptRelayWorker(mqConn, cfg.RabbitMQ.SessionEventQueue, cfg.Robot.WebhookURL)
			if err := relayWorker.Start(ctx); err != nil {
				return nil, fmt.Errorf("start prompt relay worker failed: %w", err)
			}
			app.RelayWorker = relayWorker
		}
	}

	return app, nil
}

// newStore builds the record store named by the driver config. The mysql
// handle is kept on the App so Close can release the pool.
func newStore(ctx context.Context, cfg *config.Config, app *App) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sheets":
		svc, err := sheetsClient.New(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
		if err != nil {
			return nil, err
		}
		return sheetstore.New(svc, cfg.Sheets.SpreadsheetID), nil
	case "mysql":
		db, err := mysqlClient.New(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		app.MySQL = db
		return sqlstore.New(db)
	case "memory":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.RelayWorker != nil {
		a.RelayWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
