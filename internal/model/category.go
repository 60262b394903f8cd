package model

// Category groups products. Titles and descriptions come in en/ru/uz
// triples; Image references the categories image partition.
type Category struct {
	ID      string `bson:"id" json:"id"`
	TitleEn string `bson:"title_en" json:"title_en"`
	TitleRu string `bson:"title_ru" json:"title_ru"`
	TitleUz string `bson:"title_uz" json:"title_uz"`
	AboutEn string `bson:"aboutCategory_en" json:"aboutCategory_en"`
	AboutRu string `bson:"aboutCategory_ru" json:"aboutCategory_ru"`
	AboutUz string `bson:"aboutCategory_uz" json:"aboutCategory_uz"`
	Image   string `bson:"image" json:"image"`
}
