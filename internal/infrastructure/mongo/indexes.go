package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes は一覧・絞り込み・応募照会で使う複合インデックスを作成する。
func EnsureIndexes(ctx context.Context, db *mongo.Database, listingCollection, applicationCollection string) error {
	listingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "postedAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_job_active_posted"),
		},
		{
			Keys: bson.D{
				{Key: "isActive", Value: 1},
				{Key: "location", Value: 1},
				{Key: "jobType", Value: 1},
				{Key: "postedAt", Value: -1},
			},
			Options: options.Index().SetName("idx_job_active_location_type_posted"),
		},
		{
			Keys:    bson.D{{Key: "companyId", Value: 1}, {Key: "postedAt", Value: -1}},
			Options: options.Index().SetName("idx_job_company_posted"),
		},
	}
	if _, err := db.Collection(listingCollection).Indexes().CreateMany(ctx, listingIndexes); err != nil {
		return err
	}

	applicationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "jobId", Value: 1}, {Key: "appliedAt", Value: -1}},
			Options: options.Index().SetName("idx_application_job_applied"),
		},
		{
			Keys:    bson.D{{Key: "applicantId", Value: 1}, {Key: "appliedAt", Value: -1}},
			Options: options.Index().SetName("idx_application_applicant_applied"),
		},
	}
	_, err := db.Collection(applicationCollection).Indexes().CreateMany(ctx, applicationIndexes)
	return err
}
