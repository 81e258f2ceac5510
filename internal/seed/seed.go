package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seededDays = 90

// Run seeds the database with sample users and sleep history. Safe to call
// multiple times. Each user gets a wake-time pattern that separates cleanly
// into workdays (tight alarm-driven mornings) and free days (scattered late
// mornings), so the baseline calculation has something realistic to chew on.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.SleepHistoryEntry{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedHistoryForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedHistoryForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return fmt.Errorf("bad timezone %q: %w", user.Timezone, err)
	}

	today := time.Now().In(loc)
	for i := 1; i <= seededDays; i++ {
		date := today.AddDate(0, 0, -i)
		weekday := date.Weekday()

		var wake time.Time
		var sleepHours float64
		if weekday == time.Saturday || weekday == time.Sunday {
			// Free day: wake somewhere between 08:00 and 11:00, longer sleep.
			wake = time.Date(date.Year(), date.Month(), date.Day(), 8+rng.Intn(3), rng.Intn(60), 0, 0, loc)
			sleepHours = 7.5 + rng.Float64()*2.0
		} else {
			// Workday: alarm around 06:30, low spread.
			wake = time.Date(date.Year(), date.Month(), date.Day(), 6, 20+rng.Intn(20), 0, 0, loc)
			sleepHours = 6.5 + rng.Float64()*1.2
		}

		bedtime := wake.Add(-time.Duration(sleepHours * float64(time.Hour)))
		totalMinutes := int(sleepHours * 60)
		deep := totalMinutes * 20 / 100
		rem := totalMinutes * 22 / 100
		awake := 10 + rng.Intn(25)
		light := totalMinutes - deep - rem
		duration := totalMinutes * 60
		score := 60 + rng.Intn(35)

		bedtimeUTC := bedtime.UTC()
		wakeUTC := wake.UTC()
		entry := domain.SleepHistoryEntry{
			UserID:            user.ID,
			Date:              time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			Bedtime:           &bedtimeUTC,
			WakeTime:          &wakeUTC,
			DeepSleepMinutes:  deep,
			LightSleepMinutes: light,
			RemSleepMinutes:   rem,
			AwakeMinutes:      awake,
			DurationInSeconds: duration,
			SleepScore:        &score,
			LocalTimezone:     user.Timezone,
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).Create(&entry).Error
		if err != nil {
			return fmt.Errorf("failed to seed history for %s on %s: %w", user.ID, entry.Date.Format("2006-01-02"), err)
		}
	}
	return nil
}
