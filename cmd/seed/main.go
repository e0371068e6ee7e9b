// Command seed populates the database with demo users, photos and interactions.
package main

import (
	"flag"
	"log"

	"gallery/internal/config"
	"gallery/internal/database"
	"gallery/internal/seed"
)

func main() {
	opts := seed.DefaultOptions
	flag.IntVar(&opts.Users, "users", opts.Users, "Number of users to create")
	flag.IntVar(&opts.PhotosPerUser, "photos", opts.PhotosPerUser, "Photos per user")
	flag.Float64Var(&opts.PublicRatio, "public", opts.PublicRatio, "Share of public photos (0..1)")
	flag.Float64Var(&opts.LikeRate, "likes", opts.LikeRate, "Chance a user likes an eligible photo (0..1)")
	flag.Float64Var(&opts.FavoriteRate, "favorites", opts.FavoriteRate, "Chance a user favorites a visible photo (0..1)")
	flag.BoolVar(&opts.FastHash, "fast", false, "Hash passwords with the minimum bcrypt cost")
	flag.Int64Var(&opts.RandomSeed, "seed", 0, "Random seed for reproducible data (0 = time based)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, opts)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %s", sum)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
