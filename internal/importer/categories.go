package importer

// sourceCategory points at one listing page of the upstream fashion site.
type sourceCategory struct {
	ID   string
	Key  string
	Name string
}

var defaultCategories = []sourceCategory{
	{ID: "1", Key: "ladies/shop-by-product/accessories", Name: "Accesories"},
	{ID: "2", Key: "ladies/shop-by-product/basics", Name: "Basics"},
	{ID: "3", Key: "ladies/shop-by-product/blazers-and-waistcoats", Name: "Blazers and Waistcoasts"},
	{ID: "4", Key: "ladies/shop-by-product/cardigans-and-jumpers", Name: "Cardigans & Jumpers"},
	{ID: "5", Key: "ladies/shop-by-product/dresses", Name: "Dresses"},
	{ID: "6", Key: "ladies/shop-by-product/jackets-and-coats", Name: "Jackets & Coats"},
	{ID: "7", Key: "ladies/shop-by-product/jeans", Name: "Jeans"},
	{ID: "8", Key: "ladies/shop-by-product/jumpsuits", Name: "Jumpsuits"},
	{ID: "9", Key: "ladies/shop-by-product/nightwear", Name: "Nightwear"},
	{ID: "10", Key: "ladies/shop-by-product/skirts", Name: "Skirts"},
	{ID: "11", Key: "ladies/shop-by-product/shorts", Name: "Shorts"},
	{ID: "12", Key: "ladies/shop-by-product/sportswear", Name: "Sportswear"},
	{ID: "13", Key: "ladies/shop-by-product/swimwear", Name: "Swimwear"},
	{ID: "14", Key: "ladies/shop-by-product/tops", Name: "Tops"},
	{ID: "15", Key: "ladies/shop-by-product/trousers", Name: "Trousers"},
}
