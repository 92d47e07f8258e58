package catalog

// Category is one browsable product grouping.
type Category struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// ProductColor is one colorway of a product, with the sizes it ships in.
type ProductColor struct {
	ID       string   `json:"id" bson:"id"`
	Name     string   `json:"name" bson:"name"`
	ImageURL string   `json:"imageUrl" bson:"imageUrl"`
	Sizes    []string `json:"sizes" bson:"sizes"`
}

// ProductSize is one size option of a product.
type ProductSize struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Product is the catalog record the importer writes and the cart snapshots.
type Product struct {
	ID         string         `json:"id" bson:"id"`
	Name       string         `json:"name" bson:"name"`
	Price      float64        `json:"price" bson:"price"`
	CategoryID string         `json:"categoryId" bson:"categoryId"`
	ImagesURLs []string       `json:"imagesUrls" bson:"imagesUrls"`
	Colors     []ProductColor `json:"colors" bson:"colors"`
	Sizes      []ProductSize  `json:"sizes" bson:"sizes"`
}
