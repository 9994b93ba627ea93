package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// ApplicationRepository implements application.ApplicationRepository using MongoDB.
type ApplicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database, collectionName string) *ApplicationRepository {
	return &ApplicationRepository{collection: db.Collection(collectionName)}
}

func (r *ApplicationRepository) Insert(ctx context.Context, app *domain.Application) (string, error) {
	doc := newApplicationDocument(app)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", mapError("failed to insert application", err)
	}
	return doc.ID.Hex(), nil
}

func (r *ApplicationRepository) Query(ctx context.Context, query application.StoreQuery) ([]domain.Application, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}
	cursor, err := r.collection.Find(ctx, filter, buildFindOptions(query))
	if err != nil {
		return nil, mapError("failed to query applications", err)
	}
	defer cursor.Close(ctx)

	apps := make([]domain.Application, 0)
	for cursor.Next(ctx) {
		var doc ApplicationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapError("failed to decode application", err)
		}
		apps = append(apps, mapApplicationDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, mapError("failed to read applications", err)
	}
	return apps, nil
}
