package model

// Product is a catalog item. Image holds the caller-assigned id of a binary
// document in the products image partition.
type Product struct {
	ID       string  `bson:"id" json:"id"`
	Title    string  `bson:"title" json:"title"`
	Height   float64 `bson:"height" json:"height"`
	Width    float64 `bson:"width" json:"width"`
	Diameter float64 `bson:"diameter" json:"diameter"`
	ML       float64 `bson:"ml" json:"ml"`
	Material string  `bson:"material" json:"material"`
	Category string  `bson:"category" json:"category"`
	Image    string  `bson:"image" json:"image"`
}
