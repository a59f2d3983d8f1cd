// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection set is idempotent.
Problems are aggregated so a single bad collection does not hide the rest.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, set := range desired() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

// orderedActive is the shared shape of the content collections:
// public lists filter on is_active and sort by order then created_at.
func orderedActive(coll string) indexSet {
	return indexSet{coll, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "order", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_" + coll + "_active_order_created"),
		},
	}}
}

func desired() []indexSet {
	team := orderedActive("team_members")
	team.models = append(team.models, mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetName("idx_team_members_type_order"),
	})

	partners := orderedActive("partners")
	partners.models = append(partners.models, mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetName("idx_partners_type_order"),
	})

	donations := orderedActive("donation_options")
	donations.models = append(donations.models, mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}},
		Options: options.Index().SetName("idx_donation_options_type"),
	})

	gallery := orderedActive("gallery_images")
	gallery.models = append(gallery.models, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetName("idx_gallery_images_category_order"),
	})

	initiatives := orderedActive("initiatives")
	initiatives.models = append(initiatives.models,
		mongo.IndexModel{
			// public list: order, then newest first
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "order", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_initiatives_active_order_newest"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_initiatives_slug"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_initiatives_category_status"),
		},
	)

	return []indexSet{
		{"admins", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_admins_email"),
			},
		}},
		team,
		orderedActive("advisors"),
		partners,
		initiatives,
		{"impact_posts", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_impact_posts_slug"),
			},
			{
				// public list: published + active, newest first
				Keys: bson.D{
					{Key: "is_published", Value: 1},
					{Key: "is_active", Value: 1},
					{Key: "published_at", Value: -1},
				},
				Options: options.Index().SetName("idx_impact_posts_published_active_date"),
			},
		}},
		orderedActive("impact_stats"),
		donations,
		gallery,
		{"slideshow_images", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "order", Value: 1}},
				Options: options.Index().SetName("idx_slideshow_images_order"),
			},
		}},
		{"messages", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_messages_created"),
			},
			{
				Keys:    bson.D{{Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_messages_read_created"),
			},
		}},
		{"analytics", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_analytics_session"),
			},
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_analytics_created"),
			},
			{
				Keys:    bson.D{{Key: "visitor_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_analytics_visitor_created"),
			},
		}},
		{"audit_events", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_audit_events_timestamp"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_audit_events_category_timestamp"),
			},
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

// ensureIndexSet creates each model unless an index with the same keys and
// uniqueness already exists. A same-key index with a different name or
// uniqueness is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range models {
		var name string
		var unique bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = boolVal(m.Options.Unique)
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if boolVal(ex.Unique) == unique && (name == "" || ex.Name == name) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
			zap.L().Info("dropped mismatched index",
				zap.String("collection", coll.Name()),
				zap.String("name", ex.Name),
				zap.String("keys", sig))
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil {
			if unique && isDuplicateKeyErr(err) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.Error(err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", created),
			zap.String("keys", sig),
			zap.Bool("unique", unique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
