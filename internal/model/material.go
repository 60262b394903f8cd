package model

// Material is a product material option.
type Material struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
}
