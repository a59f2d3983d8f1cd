// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/duasite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and attaches JSON-Schema
// validators. Servers without collMod support are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("admins", adminsSchema())
	ensure("settings", nil)
	ensure("team_members", teamSchema())
	ensure("advisors", nameRequired("name", "title"))
	ensure("partners", partnersSchema())
	ensure("initiatives", initiativesSchema())
	ensure("impact_posts", impactPostsSchema())
	ensure("impact_stats", nameRequired("label", "value"))
	ensure("donation_options", donationsSchema())
	ensure("gallery_images", nameRequired("image_url"))
	ensure("slideshow_images", slideshowSchema())
	ensure("messages", nameRequired("name", "email", "subject", "message"))
	ensure("analytics", analyticsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if it was created by this call.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Debug("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrorMatches(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrorMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrorMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrorMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func enumOf(values []string) bson.A {
	out := bson.A{}
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func schema(required bson.A, props bson.M) bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   required,
			"properties": props,
		},
	}
}

// nameRequired requires each field to be a non-blank string.
func nameRequired(fields ...string) bson.M {
	req := bson.A{}
	props := bson.M{}
	for _, f := range fields {
		req = append(req, f)
		props[f] = nonBlank
	}
	return schema(req, props)
}

func adminsSchema() bson.M {
	return schema(bson.A{"email", "password_hash", "name", "role"}, bson.M{
		"email":         nonBlank,
		"password_hash": nonBlank,
		"name":          nonBlank,
		"role":          bson.M{"enum": bson.A{models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor}},
	})
}

func teamSchema() bson.M {
	return schema(bson.A{"name", "role", "type"}, bson.M{
		"name":  nonBlank,
		"role":  nonBlank,
		"type":  bson.M{"enum": enumOf(models.TeamTypes)},
		"order": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
	})
}

func partnersSchema() bson.M {
	return schema(bson.A{"name", "type"}, bson.M{
		"name": nonBlank,
		"type": bson.M{"enum": enumOf(models.PartnerTypes)},
	})
}

func initiativesSchema() bson.M {
	return schema(bson.A{"title", "slug", "description", "category", "status"}, bson.M{
		"title":       nonBlank,
		"slug":        bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
		"description": nonBlank,
		"category":    bson.M{"enum": enumOf(models.InitiativeCategories)},
		"status":      bson.M{"enum": enumOf(models.InitiativeStatuses)},
	})
}

func impactPostsSchema() bson.M {
	return schema(bson.A{"title", "slug", "content"}, bson.M{
		"title":      nonBlank,
		"slug":       bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
		"content":    nonBlank,
		"view_count": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
	})
}

func donationsSchema() bson.M {
	return schema(bson.A{"type", "name", "account_number"}, bson.M{
		"type":           bson.M{"enum": enumOf(models.DonationTypes)},
		"name":           nonBlank,
		"account_number": nonBlank,
	})
}

func slideshowSchema() bson.M {
	return schema(bson.A{"image_url", "order"}, bson.M{
		"image_url": nonBlank,
		"order":     bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0, "maximum": models.MaxSlides - 1},
	})
}

func analyticsSchema() bson.M {
	return schema(bson.A{"session_id", "visitor_id", "created_at"}, bson.M{
		"session_id": nonBlank,
		"visitor_id": nonBlank,
		"page_views": bson.M{"bsonType": "array"},
		"created_at": bson.M{"bsonType": "date"},
	})
}
