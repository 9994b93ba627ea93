package mongo

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// buildFilter は StoreQuery の等価条件とカーソルを Mongo のフィルタへ変換する。
// カーソル以降とは (orderField, _id) の降順でカーソルより後ろにあるドキュメントを指す。
func buildFilter(query application.StoreQuery) (bson.M, error) {
	filter := bson.M{}
	for _, eq := range query.Equals {
		filter[eq.Field] = eq.Value
	}
	if query.StartAfter == nil || query.StartAfter.IsZero() {
		return filter, nil
	}

	orderField := query.OrderBy.Field
	if orderField == "" {
		orderField = domain.FieldPostedAt
	}
	cursorID, err := primitive.ObjectIDFromHex(strings.TrimSpace(query.StartAfter.ID))
	if err != nil {
		return nil, domain.InvalidInput("invalid pagination cursor")
	}
	at := query.StartAfter.PostedAt.UTC()
	filter["$or"] = bson.A{
		bson.M{orderField: bson.M{"$lt": at}},
		bson.M{orderField: at, "_id": bson.M{"$lt": cursorID}},
	}
	return filter, nil
}

// buildFindOptions は並び順と件数上限を組み立てる。同時刻のドキュメントは _id 降順で並べる。
func buildFindOptions(query application.StoreQuery) *options.FindOptions {
	opts := options.Find()
	if query.OrderBy.Field != "" {
		direction := 1
		if query.OrderBy.Descending {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: query.OrderBy.Field, Value: direction}, {Key: "_id", Value: direction}})
	}
	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}
	return opts
}

func objectIDFromHex(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, domain.NotFound("listing not found", err)
	}
	return objectID, nil
}

// mapError はドライバのエラーを domain.Error に揃える。
func mapError(message string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.NotFound(message, err)
	}
	return domain.StoreUnavailable(message, err)
}
