package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"triviarena/internal/repository"
	"triviarena/internal/service"
)

// Loads the embedded starter question set into the content store so a fresh
// deployment has something to play before the content pipeline runs.
func main() {
	_ = godotenv.Load()
	logger := slog.New(tint.NewHandler(os.Stdout, nil))

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Error("failed to connect to mongodb", "err", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewQuestionRepo(client.Database("triviarena"))

	questionSvc, err := service.NewQuestionService(nil, logger)
	if err != nil {
		logger.Error("failed to load starter questions", "err", err)
		os.Exit(1)
	}
	questions := questionSvc.StarterQuestions()

	if err := repo.InsertMany(ctx, questions); err != nil {
		logger.Error("failed to insert questions", "err", err)
		os.Exit(1)
	}

	counts, err := repo.CountByDifficulty(ctx, "general")
	if err != nil {
		logger.Error("failed to count questions", "err", err)
		os.Exit(1)
	}
	logger.Info("seeded question collection", "inserted", len(questions),
		"easy", counts["easy"], "medium", counts["medium"], "hard", counts["hard"])
}
