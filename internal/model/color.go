package model

// Color is a product color option with localized titles.
type Color struct {
	ID      string `bson:"id" json:"id"`
	TitleEn string `bson:"title_en" json:"title_en"`
	TitleRu string `bson:"title_ru" json:"title_ru"`
	TitleUz string `bson:"title_uz" json:"title_uz"`
}
