package catalog

import "stylebot/internal/domain"

// DefaultProducts devuelve el catalogo sembrado. En una aplicacion real
// esto vendria de una base de datos o API de e-commerce.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod_001",
			Name:        "Classic Cotton Tee - Black",
			Description: "A comfortable and versatile black cotton t-shirt, perfect for everyday wear.",
			Category:    "Apparel",
			Tags:        []string{"t-shirt", "cotton", "basic", "black", "top"},
			Price:       25.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Tee",
		},
		{
			ID:          "prod_002",
			Name:        "Slim Fit Denim Jeans - Blue",
			Description: "Modern slim fit jeans in a classic blue wash, made with stretch denim for comfort.",
			Category:    "Apparel",
			Tags:        []string{"jeans", "denim", "slim fit", "blue", "pants"},
			Price:       60.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Jeans",
		},
		{
			ID:          "prod_003",
			Name:        "Minimalist Leather Sneakers - White",
			Description: "Clean and stylish white leather sneakers with a minimalist design.",
			Category:    "Footwear",
			Tags:        []string{"sneakers", "leather", "white", "minimalist", "shoes"},
			Price:       90.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Sneaker",
		},
		{
			ID:          "prod_004",
			Name:        "Lightweight Linen Shirt - Beige",
			Description: "A breathable linen shirt in a neutral beige, ideal for warmer weather.",
			Category:    "Apparel",
			Tags:        []string{"shirt", "linen", "beige", "summer", "top"},
			Price:       45.00,
			ImageURL:    "https://placehold.co/300x300.png?text=LShirt",
		},
		{
			ID:          "prod_005",
			Name:        "Canvas Tote Bag - Navy",
			Description: "Durable canvas tote bag in navy blue, spacious enough for daily essentials.",
			Category:    "Accessories",
			Tags:        []string{"bag", "tote", "canvas", "navy", "accessory"},
			Price:       30.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Tote",
		},
		{
			ID:          "prod_006",
			Name:        "Wool Beanie - Charcoal",
			Description: "A warm wool beanie in a versatile charcoal grey color.",
			Category:    "Accessories",
			Tags:        []string{"hat", "beanie", "wool", "charcoal", "winter"},
			Price:       20.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Beanie",
		},
		{
			ID:          "prod_007",
			Name:        "Vintage Wash Denim Jacket",
			Description: "A classic denim jacket with a comfortable vintage wash. Perfect for layering.",
			Category:    "Apparel",
			Tags:        []string{"jacket", "denim", "outerwear", "vintage"},
			Price:       75.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Jacket",
		},
		{
			ID:          "prod_008",
			Name:        "Silk Scarf - Floral Print",
			Description: "A luxurious silk scarf with an elegant floral print. Adds a touch of color to any outfit.",
			Category:    "Accessories",
			Tags:        []string{"scarf", "silk", "floral", "accessory"},
			Price:       35.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Scarf",
		},
		{
			ID:          "prod_009",
			Name:        "Comfortable Joggers - Grey Marl",
			Description: "Soft and comfortable joggers in a grey marl. Ideal for lounging or casual outings.",
			Category:    "Apparel",
			Tags:        []string{"joggers", "sweatpants", "casual", "loungewear"},
			Price:       50.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Joggers",
		},
		{
			ID:          "prod_010",
			Name:        "Leather Belt - Brown",
			Description: "A classic brown leather belt with a silver buckle. A wardrobe staple.",
			Category:    "Accessories",
			Tags:        []string{"belt", "leather", "brown", "accessory"},
			Price:       40.00,
			ImageURL:    "https://placehold.co/300x300.png?text=Belt",
		},
	}
}
