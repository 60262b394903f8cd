package model

// LocalizedText is an en/ru/uz value triple used by the settings document.
type LocalizedText struct {
	En string `bson:"en" json:"en"`
	Ru string `bson:"ru" json:"ru"`
	Uz string `bson:"uz" json:"uz"`
}

// MailPair holds the two mail addresses the site shows.
type MailPair struct {
	En string `bson:"en" json:"en"`
	Ru string `bson:"ru" json:"ru"`
}

// Settings is the singleton per-deployment contact/social document. The
// embedded catalog blob is never serialized to clients.
type Settings struct {
	ID          string        `bson:"id" json:"id"`
	AddressName LocalizedText `bson:"addressName" json:"addressName"`
	Gmail       MailPair      `bson:"gmail" json:"gmail"`
	Phone       []string      `bson:"phone" json:"phone"`
	Telegram    string        `bson:"telegram" json:"telegram"`
	Instagram   string        `bson:"instagram" json:"instagram"`
	Website     string        `bson:"website" json:"website"`
	Youtube     string        `bson:"youtube" json:"youtube"`
	VideoLink   string        `bson:"videoLink" json:"videoLink"`
	CatalogPDF  []byte        `bson:"catalogPDF,omitempty" json:"-"`
}
