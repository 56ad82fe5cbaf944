package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	ID        int64              `bson:"id"`
	Name      string             `bson:"name"`
	Image     string             `bson:"image"`
	Category  string             `bson:"category"`
	NewPrice  float64            `bson:"new_price"`
	OldPrice  float64            `bson:"old_price"`
	Date      time.Time          `bson:"date"`
	Available bool               `bson:"available"`
}
