package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}

	roleIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "role", Value: 1}},
		Options: options.Index().SetName("role_index"),
	}
	if _, err := indexes.CreateOne(ctx, roleIndex); err != nil {
		log.Println("EnsureUserIndexes: role index error:", err)
		return err
	}
	return nil
}

// EnsureOrderIndexes creates the lookup indexes for order queries plus the
// unique checkoutKey index that makes order creation a conditional insert.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_index"),
		},
		{
			Keys:    bson.D{{Key: "tailorId", Value: 1}},
			Options: options.Index().SetName("tailorId_index"),
		},
		{
			Keys: bson.D{{Key: "checkoutKey", Value: 1}},
			Options: options.Index().
				SetName("checkoutKey_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"checkoutKey": bson.M{
						"$exists": true,
					},
				}),
		},
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	return nil
}

func EnsureCatalogIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	nameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_index"),
	}

	for _, collection := range []string{"designs", "fabrics"} {
		log.Printf("EnsureCatalogIndexes: creating name index on %s", collection)
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, nameIndex); err != nil {
			log.Printf("EnsureCatalogIndexes: %s index error: %v", collection, err)
			return err
		}
	}
	return nil
}
