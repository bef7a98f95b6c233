package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/database"
	"github.com/soleofit/soleo_go_server/internal/pkg/fcm"
	"github.com/soleofit/soleo_go_server/internal/pkg/queue"
)

// The worker drains the notification queue and delivers pushes through FCM.
// The API process only enqueues, so a slow or flaky FCM never blocks requests.
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	notifications := queue.New(rdb, cfg.Queue.NotificationQueue)
	fcmClient := fcm.NewClient(cfg.FCM.ServerKey, cfg.FCM.Endpoint)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Worker started, max workers: %d", cfg.Queue.MaxWorkers)

	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					msg, err := notifications.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						if err == queue.ErrEmpty {
							continue
						}
						log.Printf("Worker %d: failed to pop message: %v", workerID, err)
						continue
					}

					sent, err := fcmClient.Send(ctx, msg.Tokens, msg.Title, msg.Body)
					if err != nil {
						log.Printf("Worker %d: push to user %d failed: %v", workerID, msg.UserID, err)
						continue
					}
					log.Printf("Worker %d: pushed to user %d (%d devices)", workerID, msg.UserID, sent)
				}
			}
		}(i)
	}

	<-ctx.Done()
	log.Println("Worker shutdown complete")
}
