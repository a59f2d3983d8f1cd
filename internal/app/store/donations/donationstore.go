// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "donation_options"

type Input struct {
	Type          *string `json:"type" bson:"type,omitempty" validate:"omitempty,oneof=bank bkash nagad rocket upay other"`
	Name          *string `json:"name" bson:"name,omitempty"`
	AccountNumber *string `json:"accountNumber" bson:"account_number,omitempty"`
	AccountName   *string `json:"accountName" bson:"account_name,omitempty"`
	BankName      *string `json:"bankName" bson:"bank_name,omitempty"`
	BranchName    *string `json:"branchName" bson:"branch_name,omitempty"`
	RoutingNumber *string `json:"routingNumber" bson:"routing_number,omitempty"`
	Instructions  *string `json:"instructions" bson:"instructions,omitempty"`
	QRCode        *string `json:"qrCode" bson:"qr_code,omitempty" validate:"omitempty,httpurl"`
	Icon          *string `json:"icon" bson:"icon,omitempty"`
	Order         *int    `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive      *bool   `json:"isActive" bson:"is_active,omitempty"`
}

// Filter narrows List.
type Filter struct {
	ActiveOnly bool
	Type       string
}

type Store struct {
	c crud.Collection[models.DonationOption]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.DonationOption](db, Collection)}
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.DonationOption, error) {
	filter := crud.ActiveFilter(f.ActiveOnly)
	if f.Type != "" {
		filter["type"] = f.Type
	}
	return s.c.Find(ctx, filter, crud.ByOrder, 0)
}

// Create requires type, name and account number. Bank transfers also need
// the bank name.
func (s *Store) Create(ctx context.Context, in Input) (models.DonationOption, error) {
	if err := inputval.Require(
		inputval.Field{Name: "type", Value: in.Type},
		inputval.Field{Name: "name", Value: in.Name},
		inputval.Field{Name: "accountNumber", Value: in.AccountNumber},
	); err != nil {
		return models.DonationOption{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.DonationOption{}, err
	}
	if *in.Type == "bank" {
		if err := inputval.Require(inputval.Field{Name: "bankName", Value: in.BankName}); err != nil {
			return models.DonationOption{}, err
		}
	}
	now := time.Now().UTC()
	d, err := crud.Overlay(models.DonationOption{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err != nil {
		return models.DonationOption{}, err
	}
	return s.c.Insert(ctx, d)
}

func (s *Store) Get(ctx context.Context, id string) (models.DonationOption, error) {
	return s.c.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.DonationOption, error) {
	if err := inputval.NotBlank(
		inputval.Field{Name: "type", Value: in.Type},
		inputval.Field{Name: "name", Value: in.Name},
		inputval.Field{Name: "accountNumber", Value: in.AccountNumber},
	); err != nil {
		return models.DonationOption{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.DonationOption{}, err
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.DonationOption{}, err
	}
	return s.c.Set(ctx, id, set)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}
