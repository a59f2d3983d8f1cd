package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var DonationTypes = []string{"bank", "bkash", "nagad", "rocket", "upay", "other"}

// DonationOption describes one way to send money (mobile wallet or bank).
type DonationOption struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type          string             `bson:"type" json:"type"`
	Name          string             `bson:"name" json:"name"`
	AccountNumber string             `bson:"account_number" json:"accountNumber"`
	AccountName   string             `bson:"account_name,omitempty" json:"accountName,omitempty"`
	BankName      string             `bson:"bank_name,omitempty" json:"bankName,omitempty"`
	BranchName    string             `bson:"branch_name,omitempty" json:"branchName,omitempty"`
	RoutingNumber string             `bson:"routing_number,omitempty" json:"routingNumber,omitempty"`
	Instructions  string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	QRCode        string             `bson:"qr_code,omitempty" json:"qrCode,omitempty"`
	Icon          string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Order         int                `bson:"order" json:"order"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
