// Package crud holds the Mongo plumbing shared by the content stores:
// id parsing, ordered finds, selective $set from partial inputs, and
// delete-by-id with not-found reporting.
package crud

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is a typed handle on one collection.
type Collection[T any] struct {
	C *mongo.Collection
}

// New returns a typed handle on db.Collection(name).
func New[T any](db *mongo.Database, name string) Collection[T] {
	return Collection[T]{C: db.Collection(name)}
}

// ParseID converts a hex id. A malformed id is reported as
// mongo.ErrNoDocuments because it can never match a record.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, mongo.ErrNoDocuments
	}
	return oid, nil
}

// ByOrder is the list sort shared by every ordered entity.
var ByOrder = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}

// Newest sorts by creation time descending.
var Newest = bson.D{{Key: "created_at", Value: -1}}

// ActiveFilter returns {is_active: true} when activeOnly, else an empty filter.
func ActiveFilter(activeOnly bool) bson.M {
	if activeOnly {
		return bson.M{"is_active": true}
	}
	return bson.M{}
}

// Find returns all documents matching filter in sort order. The result is
// never nil so JSON encodes an empty list as [].
func (c Collection[T]) Find(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]T, error) {
	return c.FindPage(ctx, filter, sort, 0, limit)
}

// FindPage is Find starting after skip documents.
func (c Collection[T]) FindPage(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]T, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := c.C.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne returns the first document matching filter.
func (c Collection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var v T
	err := c.C.FindOne(ctx, filter).Decode(&v)
	return v, err
}

// Get returns the document with the given hex id.
func (c Collection[T]) Get(ctx context.Context, id string) (T, error) {
	oid, err := ParseID(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.FindOne(ctx, bson.M{"_id": oid})
}

// Insert writes v and returns it unchanged. Callers assign _id first.
func (c Collection[T]) Insert(ctx context.Context, v T) (T, error) {
	if _, err := c.C.InsertOne(ctx, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Set applies a selective $set to the document with the given id and
// returns the updated document. updated_at is always refreshed.
func (c Collection[T]) Set(ctx context.Context, id string, set bson.M) (T, error) {
	var zero T
	oid, err := ParseID(id)
	if err != nil {
		return zero, err
	}
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var v T
	err = c.C.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// Delete removes the document with the given id. A miss is mongo.ErrNoDocuments.
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := c.C.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the number of documents matching filter.
func (c Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return c.C.CountDocuments(ctx, filter)
}

// SetDoc turns a partial input into a $set document. Inputs use pointer
// fields tagged `bson:",omitempty"`, so only supplied fields survive.
func SetDoc(in any) (bson.M, error) {
	raw, err := bson.Marshal(in)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// Overlay applies the supplied fields of a partial input onto base.
// Fields the input leaves nil keep base's value.
func Overlay[T any](base T, in any) (T, error) {
	raw, err := bson.Marshal(in)
	if err != nil {
		return base, err
	}
	if err := bson.Unmarshal(raw, &base); err != nil {
		return base, err
	}
	return base, nil
}

// NextOrder returns the count of documents matching filter, the default
// order for a newly appended record.
func (c Collection[T]) NextOrder(ctx context.Context, filter bson.M) (int, error) {
	n, err := c.C.CountDocuments(ctx, filter)
	return int(n), err
}

// Flatten rewrites nested documents in set as dotted paths so a partial
// nested input merges into the stored sub-document instead of replacing it.
// Arrays are kept whole.
func Flatten(set bson.M) bson.M {
	out := bson.M{}
	flattenInto(out, "", set)
	return out
}

func flattenInto(out bson.M, prefix string, doc bson.M) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch sub := v.(type) {
		case bson.M:
			flattenInto(out, key, sub)
		case bson.D:
			flattenInto(out, key, sub.Map())
		default:
			out[key] = v
		}
	}
}
