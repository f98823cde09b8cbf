package main

import (
	"fmt"
	"time"

	"maltlog/internal/model"
	"maltlog/pkg/config"
	"maltlog/pkg/database"
	"maltlog/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	users, err := seedUsers(db, log)
	if err != nil {
		return err
	}

	whiskies, err := seedWhiskies(db, log)
	if err != nil {
		return err
	}

	return seedReviews(db, log, users, whiskies)
}

func seedUsers(db *gorm.DB, log *logger.Logger) ([]model.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("maltlog-demo"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := []model.UserModel{
		{ID: uuid.New().String(), Email: "islay@maltlog.dev", Handle: "islayfan", Nickname: "Islay Fan", Password: string(hash), Role: "member", IsActive: true},
		{ID: uuid.New().String(), Email: "speyside@maltlog.dev", Handle: "speysider", Nickname: "Speysider", Password: string(hash), Role: "member", IsActive: true},
		{ID: uuid.New().String(), Email: "mod@maltlog.dev", Handle: "the_mod", Nickname: "The Mod", Password: string(hash), Role: "moderator", IsActive: true},
	}

	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			return nil, err
		}
	}

	log.Info("Seeded %d users", len(users))
	return users, nil
}

func seedWhiskies(db *gorm.DB, log *logger.Logger) ([]model.WhiskyModel, error) {
	whiskies := []model.WhiskyModel{
		{ID: uuid.New().String(), Name: "Ardbeg 10", Distillery: "Ardbeg", Region: "Islay", ABV: 46.0},
		{ID: uuid.New().String(), Name: "Lagavulin 16", Distillery: "Lagavulin", Region: "Islay", ABV: 43.0, Featured: true},
		{ID: uuid.New().String(), Name: "Glenfiddich 12", Distillery: "Glenfiddich", Region: "Speyside", ABV: 40.0},
		{ID: uuid.New().String(), Name: "Macallan 12 Sherry Oak", Distillery: "Macallan", Region: "Speyside", ABV: 43.0, Featured: true},
		{ID: uuid.New().String(), Name: "Highland Park 12", Distillery: "Highland Park", Region: "Islands", ABV: 40.0},
		{ID: uuid.New().String(), Name: "Redbreast 12", Distillery: "Midleton", Region: "Ireland", ABV: 40.0},
	}

	for i := range whiskies {
		if err := db.Where("name = ?", whiskies[i].Name).FirstOrCreate(&whiskies[i]).Error; err != nil {
			return nil, err
		}
	}

	log.Info("Seeded %d whiskies", len(whiskies))
	return whiskies, nil
}

func seedReviews(db *gorm.DB, log *logger.Logger, users []model.UserModel, whiskies []model.WhiskyModel) error {
	if len(users) == 0 || len(whiskies) == 0 {
		return nil
	}

	bodies := []string{
		"Big smoke, tar and sea salt. A fireplace in a glass.",
		"Dried fruit and oak, long sherried finish.",
		"Soft pear and honey, easy sipper.",
	}

	base := time.Now().Add(-30 * 24 * time.Hour)
	for i, body := range bodies {
		review := model.ReviewModel{
			ID:        uuid.New().String(),
			UserID:    users[i%len(users)].ID,
			WhiskyID:  whiskies[i%len(whiskies)].ID,
			Rating:    3.5 + 0.5*float64(i%3),
			Body:      body,
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}
		if err := db.Where("user_id = ? AND whisky_id = ?", review.UserID, review.WhiskyID).
			FirstOrCreate(&review).Error; err != nil {
			return err
		}
	}

	log.Info("Seeded %d reviews", len(bodies))
	return nil
}
