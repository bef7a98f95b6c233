package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/pkg/queue"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

// Service runs the background jobs: membership expiry alerts and workout
// reminders. Jobs only enqueue notification messages, the worker sends them.
type Service struct {
	userRepo        *repository.UserRepository
	deviceTokenRepo *repository.DeviceTokenRepository
	notifications   *queue.Queue
	cfg             *config.CronConfig

	// lastReminded prevents sending the same user two reminders for one
	// training time.
	lastReminded map[int64]time.Time
	stopChan     chan struct{}
}

func NewService(
	userRepo *repository.UserRepository,
	deviceTokenRepo *repository.DeviceTokenRepository,
	notifications *queue.Queue,
	cfg *config.CronConfig,
) *Service {
	return &Service{
		userRepo:        userRepo,
		deviceTokenRepo: deviceTokenRepo,
		notifications:   notifications,
		cfg:             cfg,
		lastReminded:    make(map[int64]time.Time),
		stopChan:        make(chan struct{}),
	}
}

func (s *Service) Start() {
	go s.runExpiryAlerts()
	go s.runWorkoutReminders()
	log.Println("Cron service started (expiry alerts + workout reminders)")
}

func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runExpiryAlerts fires once a day at 09:00 UTC.
func (s *Service) runExpiryAlerts() {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	timer := time.NewTimer(next.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.SendExpiryAlerts()
			timer.Reset(24 * time.Hour)
		}
	}
}

// SendExpiryAlerts enqueues a push for every user whose membership runs out
// within the alert window.
func (s *Service) SendExpiryAlerts() {
	days := s.cfg.ExpiryAlertDays
	if days <= 0 {
		days = 3
	}

	now := time.Now()
	users, err := s.userRepo.ListExpiringBetween(now, now.AddDate(0, 0, days))
	if err != nil {
		log.Printf("cron: failed to list expiring memberships: %v", err)
		return
	}

	sent := 0
	for i := range users {
		user := &users[i]
		if user.MembershipExpiresAt == nil || user.CurrentPlan == nil {
			continue
		}
		remaining := int(time.Until(*user.MembershipExpiresAt).Hours()/24) + 1

		body := fmt.Sprintf("Tu plan %s vence en %d días", user.CurrentPlan.Name, remaining)
		if remaining <= 1 {
			body = fmt.Sprintf("Tu plan %s vence hoy", user.CurrentPlan.Name)
		}
		if s.enqueue(user.ID, "Tu membresía está por vencer", body) {
			sent++
		}
	}
	if sent > 0 {
		log.Printf("cron: enqueued %d expiry alerts", sent)
	}
}

func (s *Service) runWorkoutReminders() {
	interval := s.cfg.ReminderIntervalMin
	if interval <= 0 {
		interval = 5
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.SendWorkoutReminders(time.Now())
		}
	}
}

// SendWorkoutReminders enqueues a push for every client whose preferred
// training time falls within the window around now. At most one reminder per
// user per day.
func (s *Service) SendWorkoutReminders(now time.Time) {
	window := s.cfg.ReminderWindowMin
	if window <= 0 {
		window = 5
	}

	users, err := s.userRepo.ListWithExerciseTime()
	if err != nil {
		log.Printf("cron: failed to list users for reminders: %v", err)
		return
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	today := now.Truncate(24 * time.Hour)

	sent := 0
	for i := range users {
		user := &users[i]
		if user.ExerciseTime == nil {
			continue
		}
		var h, m int
		if _, err := fmt.Sscanf(*user.ExerciseTime, "%d:%d", &h, &m); err != nil {
			continue
		}

		diff := h*60 + m - nowMinutes
		if diff < -window || diff > window {
			continue
		}
		if last, ok := s.lastReminded[user.ID]; ok && !last.Before(today) {
			continue
		}

		if s.enqueue(user.ID, "Hora de entrenar", "Tu rutina te está esperando") {
			s.lastReminded[user.ID] = now
			sent++
		}
	}
	if sent > 0 {
		log.Printf("cron: enqueued %d workout reminders", sent)
	}
}

func (s *Service) enqueue(userID int64, title, body string) bool {
	tokens, err := s.deviceTokenRepo.ListByUser(userID)
	if err != nil || len(tokens) == 0 {
		return false
	}

	msg := &queue.NotificationMessage{
		UserID: userID,
		Tokens: tokens,
		Title:  title,
		Body:   body,
	}
	if err := s.notifications.Push(context.Background(), msg); err != nil {
		log.Printf("cron: failed to enqueue notification for user %d: %v", userID, err)
		return false
	}
	return true
}
