// Package seed fills a development database with users, photos, likes and
// favorites. Generated interactions obey the same rules the API enforces.
package seed

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gallery/internal/auth"
	"gallery/internal/models"
	"gallery/internal/policy"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "Gallery!Passw0rd"

// Options controls how much data the seeder creates.
type Options struct {
	Users         int
	PhotosPerUser int
	// PublicRatio is the share of photos created public, 0..1.
	PublicRatio float64
	// LikeRate and FavoriteRate are the chance a user interacts with an
	// eligible photo, 0..1.
	LikeRate     float64
	FavoriteRate float64
	// FastHash uses the minimum bcrypt cost.
	FastHash bool
	// RandomSeed makes output reproducible when non-zero.
	RandomSeed int64
}

// DefaultOptions is a small but lively gallery.
var DefaultOptions = Options{
	Users:         20,
	PhotosPerUser: 5,
	PublicRatio:   0.7,
	LikeRate:      0.3,
	FavoriteRate:  0.1,
}

// Summary counts what a run created.
type Summary struct {
	Users     int
	Photos    int
	Likes     int
	Favorites int
}

func (s Summary) String() string {
	return fmt.Sprintf("users=%d photos=%d likes=%d favorites=%d", s.Users, s.Photos, s.Likes, s.Favorites)
}

// Seeder writes generated data through a gorm handle.
type Seeder struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{db: db, opts: opts, faker: gofakeit.New(seed)}
}

// ClearAll removes every row the seeder can create, children first.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Favorite{}, &models.Like{}, &models.Photo{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run creates users, then their photos, then interactions between them.
func (s *Seeder) Run() (Summary, error) {
	var sum Summary

	users, err := s.createUsers()
	if err != nil {
		return sum, err
	}
	sum.Users = len(users)

	photos, err := s.createPhotos(users)
	if err != nil {
		return sum, err
	}
	sum.Photos = len(photos)

	sum.Likes, sum.Favorites, err = s.createInteractions(users, photos)
	if err != nil {
		return sum, err
	}

	slog.Info("seed complete", slog.String("summary", sum.String()))
	return sum, nil
}

func (s *Seeder) createUsers() ([]*models.User, error) {
	cost := bcrypt.DefaultCost
	if s.opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		name := s.faker.Name()
		users = append(users, &models.User{
			// the index keeps emails unique even when the faker repeats a name
			Email:       fmt.Sprintf("%s.%d@gallery.test", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i),
			DisplayName: name,
			Password:    string(hash),
		})
	}
	if len(users) == 0 {
		return users, nil
	}
	if err := s.db.CreateInBatches(users, 100).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

func (s *Seeder) createPhotos(users []*models.User) ([]*models.Photo, error) {
	photos := make([]*models.Photo, 0, len(users)*s.opts.PhotosPerUser)
	for _, u := range users {
		for i := 0; i < s.opts.PhotosPerUser; i++ {
			visibility := models.VisibilityPrivate
			if s.faker.Float64() < s.opts.PublicRatio {
				visibility = models.VisibilityPublic
			}
			photos = append(photos, &models.Photo{
				OwnerID:     u.ID,
				Visibility:  visibility,
				Title:       strings.TrimSuffix(s.faker.Sentence(4), "."),
				Description: s.faker.Paragraph(1, 2, 8, " "),
				ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", s.faker.UUID()),
			})
		}
	}
	if len(photos) == 0 {
		return photos, nil
	}
	if err := s.db.CreateInBatches(photos, 200).Error; err != nil {
		return nil, fmt.Errorf("create photos: %w", err)
	}
	return photos, nil
}

// createInteractions only likes public photos of other users and only
// favorites photos the user can see.
func (s *Seeder) createInteractions(users []*models.User, photos []*models.Photo) (int, int, error) {
	var likes []models.Like
	var favorites []models.Favorite

	for _, u := range users {
		actor := auth.PrincipalFor(u)
		for _, p := range photos {
			if p.IsPublic() && p.OwnerID != u.ID && s.faker.Float64() < s.opts.LikeRate {
				likes = append(likes, models.Like{UserID: u.ID, PhotoID: p.ID})
			}
			if policy.CanView(p, actor) && s.faker.Float64() < s.opts.FavoriteRate {
				favorites = append(favorites, models.Favorite{UserID: u.ID, PhotoID: p.ID})
			}
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(likes) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&likes, 500).Error; err != nil {
				return fmt.Errorf("create likes: %w", err)
			}
		}
		if len(favorites) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&favorites, 500).Error; err != nil {
				return fmt.Errorf("create favorites: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(likes), len(favorites), nil
}
