package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"libdb-finder/db"
	"libdb-finder/models"
)

const maxListLimit = 100

type AnalysisRunRepository struct {
	col *mongo.Collection
}

func NewAnalysisRunRepository(d *mongo.Database) *AnalysisRunRepository {
	return &AnalysisRunRepository{col: d.Collection(db.AnalysisRunsCollection)}
}

// Insert stores a finished run. CreatedAt is filled when zero.
func (r *AnalysisRunRepository) Insert(ctx context.Context, run *models.AnalysisRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, run)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		run.ID = id
	}
	return nil
}

// ListRecent returns the newest runs first. limit 은 1..100 으로 보정된다.
func (r *AnalysisRunRepository) ListRecent(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.AnalysisRun, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
