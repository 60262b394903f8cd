package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Image is a binary document in one of the partitioned image collections.
// ID is the caller-assigned identifier content records point at; StorageID
// is what Mongo assigned and what bulk deletes operate on.
type Image struct {
	StorageID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ID          string             `bson:"id" json:"id"`
	Data        []byte             `bson:"data" json:"data"`
	ContentType string             `bson:"contentType" json:"contentType"`
}
