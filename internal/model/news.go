package model

// News is a company news entry. Image references the news image partition.
type News struct {
	ID            string `bson:"id" json:"id"`
	TitleEn       string `bson:"title_en" json:"title_en"`
	TitleRu       string `bson:"title_ru" json:"title_ru"`
	TitleUz       string `bson:"title_uz" json:"title_uz"`
	DescriptionEn string `bson:"description_en" json:"description_en"`
	DescriptionRu string `bson:"description_ru" json:"description_ru"`
	DescriptionUz string `bson:"description_uz" json:"description_uz"`
	PublishedDate string `bson:"published_date" json:"published_date"`
	Image         string `bson:"image" json:"image"`
}
