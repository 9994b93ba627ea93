package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// ListingRepository implements application.ListingRepository using MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
}

// NewListingRepository creates a new Mongo-backed listing repository.
func NewListingRepository(db *mongo.Database, collectionName string) *ListingRepository {
	return &ListingRepository{collection: db.Collection(collectionName)}
}

func (r *ListingRepository) Insert(ctx context.Context, listing *domain.Listing) (string, error) {
	doc := newListingDocument(listing)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", mapError("failed to insert listing", err)
	}
	return doc.ID.Hex(), nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var doc ListingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, mapError("listing not found", err)
	}
	listing := mapListingDocument(doc)
	return &listing, nil
}

// UpdateFields は指定されたフィールドのみを $set で更新する。postedAt / companyId / applicationsCount は触らない。
func (r *ListingRepository) UpdateFields(ctx context.Context, id string, patch domain.ListingPatch, updatedAt time.Time) error {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": buildListingUpdate(patch, updatedAt)})
	if err != nil {
		return mapError("failed to update listing", err)
	}
	if result.MatchedCount == 0 {
		return domain.NotFound("listing not found", nil)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return mapError("failed to delete listing", err)
	}
	if result.DeletedCount == 0 {
		return domain.NotFound("listing not found", nil)
	}
	return nil
}

func (r *ListingRepository) Query(ctx context.Context, query application.StoreQuery) ([]domain.Listing, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}
	cursor, err := r.collection.Find(ctx, filter, buildFindOptions(query))
	if err != nil {
		return nil, mapError("failed to query listings", err)
	}
	defer cursor.Close(ctx)

	listings := make([]domain.Listing, 0)
	for cursor.Next(ctx) {
		var doc ListingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapError("failed to decode listing", err)
		}
		listings = append(listings, mapListingDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, mapError("failed to read listings", err)
	}
	return listings, nil
}

// IncrementApplications は $inc による単一リクエストで applicationsCount を加算する。
func (r *ListingRepository) IncrementApplications(ctx context.Context, id string, delta int) error {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"applicationsCount": delta}},
	)
	if err != nil {
		return mapError("failed to increment applications", err)
	}
	if result.MatchedCount == 0 {
		return domain.NotFound("listing not found", nil)
	}
	return nil
}

func buildListingUpdate(patch domain.ListingPatch, updatedAt time.Time) bson.M {
	set := bson.M{"updatedAt": updatedAt.UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Location != nil {
		set[domain.FieldLocation] = *patch.Location
	}
	if patch.JobType != nil {
		set[domain.FieldJobType] = *patch.JobType
	}
	if patch.ExperienceLevel != nil {
		set[domain.FieldExperienceLevel] = *patch.ExperienceLevel
	}
	if patch.Industry != nil {
		set[domain.FieldIndustry] = *patch.Industry
	}
	if patch.SalaryRange != nil {
		set[domain.FieldSalaryRange] = *patch.SalaryRange
	}
	if patch.Skills != nil {
		set["skills"] = append([]string{}, (*patch.Skills)...)
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsActive != nil {
		set[domain.FieldIsActive] = *patch.IsActive
	}
	return set
}
