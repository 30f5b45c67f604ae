package cron

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"ciba/config"
	"ciba/services/notification"
)

// StartNotificationWorker runs the async notification worker in background.
func StartNotificationWorker(notifier *notification.BookingNotifier, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingNotify, notifier.HandleBookingNotify)

	go func() {
		logger.Info("starting notification worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("notification worker stopped", zap.Error(err))
		}
	}()

	return srv
}
