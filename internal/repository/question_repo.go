package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"triviarena/internal/model"
)

// QuestionRepo serves trivia content for session selection.
type QuestionRepo interface {
	// GetByCollection returns active, non-expired questions for a
	// collection, excluding the given external IDs.
	GetByCollection(ctx context.Context, collection string, excludeIDs []string) ([]model.Question, error)
	CountByDifficulty(ctx context.Context, collection string) (map[model.Difficulty]int64, error)
	InsertMany(ctx context.Context, questions []model.Question) error
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) GetByCollection(ctx context.Context, collection string, excludeIDs []string) ([]model.Question, error) {
	filter := bson.M{
		"collection": collection,
		"active":     true,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$exists": false}},
			{"expiresAt": nil},
			{"expiresAt": bson.M{"$gt": time.Now()}},
		},
	}
	if len(excludeIDs) > 0 {
		filter["externalId"] = bson.M{"$nin": excludeIDs}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) CountByDifficulty(ctx context.Context, collection string) (map[model.Difficulty]int64, error) {
	counts := make(map[model.Difficulty]int64, len(model.Difficulties))
	for _, d := range model.Difficulties {
		n, err := r.collection.CountDocuments(ctx, bson.M{
			"collection": collection,
			"difficulty": d,
			"active":     true,
		})
		if err != nil {
			return nil, err
		}
		counts[d] = n
	}
	return counts, nil
}

func (r *questionRepo) InsertMany(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]interface{}, len(questions))
	for i := range questions {
		docs[i] = questions[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
