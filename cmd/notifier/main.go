package main

import (
	"os"
	"os/signal"
	"syscall"

	"maltlog/pkg/config"
	"maltlog/pkg/logger"
	"maltlog/pkg/queue"
)

// Worker that drains the activity queue. Delivery channels (mail, push) hang
// off handleTask; for now every task is logged.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}
	defer queueClient.Close()

	if err := queueClient.ConsumeNotificationTasks(func(task map[string]interface{}) error {
		return handleTask(log, task)
	}); err != nil {
		log.Error("Failed to start consumer: %v", err)
		panic(err)
	}

	log.Info("Notifier started, waiting for activity tasks")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Notifier exited")
}

func handleTask(log *logger.Logger, task map[string]interface{}) error {
	taskType, _ := task["type"].(string)
	userID, _ := task["user_id"].(string)

	switch taskType {
	case "like":
		log.Info("Notify user %s: post %v liked by %v", userID, task["post_id"], task["liker_id"])
	case "comment":
		log.Info("Notify user %s: post %v commented by %v", userID, task["post_id"], task["commenter_id"])
	default:
		log.Warn("Unknown activity task type %q, dropping", taskType)
	}
	return nil
}
