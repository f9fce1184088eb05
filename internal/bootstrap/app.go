package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"nano-banking/internal/config"
	"nano-banking/internal/infra/logger"
	"nano-banking/internal/model"
	mysqlClient "nano-banking/internal/platform/mysql"
	rabbitmqClient "nano-banking/internal/platform/rabbitmq"
	redisClient "nano-banking/internal/platform/redis"
	"nano-banking/internal/repository"
	"nano-banking/internal/worker"
)

type App struct {
	Config *config.Config
	Log    *logrus.Logger
	MySQL  *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	MessagePublisher *rabbitmqClient.Publisher
	AuditPublisher   *rabbitmqClient.Publisher

	messageWorker  *worker.PersistWorker
	auditWorker    *worker.PersistWorker
	sessionSweeper *worker.SessionSweeper

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log := logger.New(cfg.App.Env)

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.Customer{},
		&model.Transaction{},
		&model.Session{},
		&model.Message{},
		&model.Document{},
		&model.AuditLog{},
		&model.Escalation{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Storage.CustomerFilesPath, 0o755); err != nil {
		return nil, fmt.Errorf("create document storage failed: %w", err)
	}

	messageRepo := repository.NewMessageRepository(mysqlDB)
	auditRepo := repository.NewAuditRepository(mysqlDB)
	sessionRepo := repository.NewSessionRepository(mysqlDB)

	messageWorker := worker.NewPersistWorker(mqConn, cfg.RabbitMQ.MessagePersistQueue, func(body []byte) error {
		var msg model.Message
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("decode message payload failed: %w", err)
		}
		return messageRepo.Create(&msg)
	}, log)
	if err := messageWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start message worker failed: %w", err)
	}

	auditWorker := worker.NewPersistWorker(mqConn, cfg.RabbitMQ.AuditQueue, func(body []byte) error {
		var entry model.AuditLog
		if err := json.Unmarshal(body, &entry); err != nil {
			return fmt.Errorf("decode audit payload failed: %w", err)
		}
		return auditRepo.Create(&entry)
	}, log)
	if err := auditWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start audit worker failed: %w", err)
	}

	timeout := time.Duration(cfg.Banking.SessionTimeoutMinutes) * time.Minute
	sessionSweeper := worker.NewSessionSweeper(sessionRepo, timeout, time.Minute, log)
	sessionSweeper.Start(ctx)

	return &App{
		Config:           cfg,
		Log:              log,
		MySQL:            mysqlDB,
		Redis:            redisCli,
		MQConn:           mqConn,
		MessagePublisher: rabbitmqClient.NewPublisher(mqConn, cfg.RabbitMQ.MessagePersistQueue),
		AuditPublisher:   rabbitmqClient.NewPublisher(mqConn, cfg.RabbitMQ.AuditQueue),
		messageWorker:    messageWorker,
		auditWorker:      auditWorker,
		sessionSweeper:   sessionSweeper,
		StartedAt:        time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.sessionSweeper != nil {
		a.sessionSweeper.Close()
	}
	if a.messageWorker != nil {
		a.messageWorker.Close()
	}
	if a.auditWorker != nil {
		a.auditWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
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
