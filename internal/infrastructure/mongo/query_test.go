package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

func TestBuildFilterEquality(t *testing.T) {
	filter, err := buildFilter(application.StoreQuery{
		Equals: []application.EqualityFilter{
			{Field: domain.FieldIsActive, Value: true},
			{Field: domain.FieldLocation, Value: "remote"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if filter[domain.FieldIsActive] != true || filter[domain.FieldLocation] != "remote" {
		t.Fatalf("unexpected filter: %v", filter)
	}
	if _, ok := filter["$or"]; ok {
		t.Fatal("no cursor means no $or clause")
	}
}

func TestBuildFilterCursor(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	filter, err := buildFilter(application.StoreQuery{
		OrderBy:    application.OrderBy{Field: domain.FieldPostedAt, Descending: true},
		StartAfter: &domain.Cursor{PostedAt: at, ID: oid.Hex()},
	})
	if err != nil {
		t.Fatal(err)
	}
	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-branch $or, got %v", filter["$or"])
	}
	before := or[0].(bson.M)[domain.FieldPostedAt].(bson.M)["$lt"]
	if before != at {
		t.Fatalf("first branch = %v", or[0])
	}
	tie := or[1].(bson.M)
	if tie[domain.FieldPostedAt] != at || tie["_id"].(bson.M)["$lt"] != oid {
		t.Fatalf("tie branch = %v", tie)
	}
}

func TestBuildFilterInvalidCursor(t *testing.T) {
	_, err := buildFilter(application.StoreQuery{
		StartAfter: &domain.Cursor{PostedAt: time.Now(), ID: "not-hex"},
	})
	if !domain.IsKind(err, domain.ErrKindInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestBuildFindOptions(t *testing.T) {
	opts := buildFindOptions(application.StoreQuery{
		OrderBy: application.OrderBy{Field: domain.FieldAppliedAt, Descending: true},
		Limit:   10,
	})
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 2 {
		t.Fatalf("sort = %v", opts.Sort)
	}
	if sort[0].Key != domain.FieldAppliedAt || sort[0].Value != -1 || sort[1].Key != "_id" || sort[1].Value != -1 {
		t.Fatalf("sort = %v", sort)
	}
	if opts.Limit == nil || *opts.Limit != 10 {
		t.Fatalf("limit = %v", opts.Limit)
	}

	unbounded := buildFindOptions(application.StoreQuery{})
	if unbounded.Sort != nil || unbounded.Limit != nil {
		t.Fatal("empty query should not set sort or limit")
	}
}

func TestBuildListingUpdate(t *testing.T) {
	title := "Staff Engineer"
	active := false
	updatedAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	set := buildListingUpdate(domain.ListingPatch{Title: &title, IsActive: &active}, updatedAt)
	if len(set) != 3 {
		t.Fatalf("unexpected $set: %v", set)
	}
	if set["title"] != title || set[domain.FieldIsActive] != false || set["updatedAt"] != updatedAt {
		t.Fatalf("unexpected $set: %v", set)
	}
	if _, ok := set[domain.FieldPostedAt]; ok {
		t.Fatal("postedAt must never be updated")
	}
}

func TestMapError(t *testing.T) {
	if mapError("x", nil) != nil {
		t.Fatal("nil stays nil")
	}
	if err := mapError("x", mongo.ErrNoDocuments); !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Fatalf("ErrNoDocuments -> %v", err)
	}
	if err := mapError("x", errors.New("server selection timeout")); !domain.IsKind(err, domain.ErrKindStoreUnavailable) {
		t.Fatalf("driver error -> %v", err)
	}
	forbidden := domain.Forbidden("nope")
	if err := mapError("x", forbidden); err != forbidden {
		t.Fatalf("domain errors pass through, got %v", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	listing := &domain.Listing{
		Title:     "Go Engineer",
		CompanyID: "c1",
		Skills:    []string{"Go"},
		PostedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("JST", 9*3600)),
		IsActive:  true,
	}
	doc := newListingDocument(listing)
	if doc.ID.IsZero() || doc.PostedAt.Location() != time.UTC {
		t.Fatalf("document not normalized: %+v", doc)
	}
	got := mapListingDocument(doc)
	if got.ID != doc.ID.Hex() || got.Title != listing.Title || !got.PostedAt.Equal(listing.PostedAt) {
		t.Fatalf("mapped listing = %+v", got)
	}
}

func TestObjectIDFromHex(t *testing.T) {
	if _, err := objectIDFromHex("zzz"); !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	oid := primitive.NewObjectID()
	got, err := objectIDFromHex(" " + oid.Hex() + " ")
	if err != nil || got != oid {
		t.Fatalf("objectIDFromHex() = %v, %v", got, err)
	}
}
