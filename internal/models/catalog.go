package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogItem is a design or a fabric, depending on which collection it
// lives in. The two share a shape; a cart line always pairs one of each.
type CatalogItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    StringList         `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsDeleted   bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt   *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Snapshot copies the fields a cart line keeps.
func (i CatalogItem) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		ID:       i.ID,
		Name:     i.Name,
		Category: i.Category,
		Price:    i.Price,
		ImageURL: i.ImageURL,
	}
}
