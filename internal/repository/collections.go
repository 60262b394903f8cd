package repository

// Database and collection names. Images live in a database of their own,
// partitioned by the resource kind that owns them.
const (
	DBAdmins  = "adminsDB"
	DBContent = "contentDB"
	DBCompany = "companyDB"
	DBImages  = "images"

	CollAdmins        = "admins"
	CollProducts      = "products"
	CollCategories    = "categories"
	CollMaterials     = "materials"
	CollColors        = "colors"
	CollManufacturers = "manufacturers"
	CollNews          = "news"
	CollSettings      = "settings"
)

// Image partition kinds. Each is a collection in the images database.
const (
	KindProducts   = "products"
	KindCategories = "categories"
	KindNews       = "news"
	KindAbout      = "about"
	KindPartners   = "partners"
	KindAdmins     = "admins"
)

// ImageKinds enumerates the valid image partitions for request validation.
var ImageKinds = map[string]bool{
	KindProducts:   true,
	KindCategories: true,
	KindNews:       true,
	KindAbout:      true,
	KindPartners:   true,
	KindAdmins:     true,
}
