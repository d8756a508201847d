package cron

import (
	"context"
	"time"

	"tourbook/config"
	"tourbook/services/tasks"
	"tourbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const maxStartAttempts = 5

// Worker runs the asynq server that delivers booking notifications.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker builds the notification worker over the queue Redis database.
func NewWorker(handlers *tasks.Handlers) *Worker {
	concurrency := config.AppConfig.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(
		utils.QueueRedisOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: utils.GetLogger().Sugar().Named("asynq"),
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				utils.GetLogger().Warn("Task failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)
	mux := asynq.NewServeMux()
	handlers.Register(mux)
	return &Worker{server: srv, mux: mux}
}

// Start runs the server in the background, retrying startup with backoff.
func (w *Worker) Start() {
	logger := utils.GetLogger()
	go func() {
		logger.Info("Starting notification worker")
		for attempt := 1; attempt <= maxStartAttempts; attempt++ {
			err := w.server.Start(w.mux)
			if err == nil {
				return
			}
			logger.Warn("Worker failed to start",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxStartAttempts),
				zap.Error(err))
			if attempt == maxStartAttempts {
				logger.Error("Notification worker disabled after repeated start failures")
				return
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

// Shutdown stops fetching new tasks and waits for running ones.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// QueueHealthCheck pings the queue Redis database.
func QueueHealthCheck() utils.HealthCheck {
	opt := utils.QueueRedisOpt()
	client := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	return utils.HealthCheck{
		Name: "queue",
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}
