package products

import (
	"github.com/museshop/backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// sampleCatalog is the starter inventory inserted into empty databases so a
// fresh install has something to browse.
func sampleCatalog() []models.Product {
	return []models.Product{
		{
			Name:        "Fender",
			Price:       money("779.00"),
			Stock:       10,
			ImageURL:    "/images/products/fender-acoustic.jpg",
			Description: "A high-quality acoustic guitar from Fender, known for its rich tone and excellent playability. Perfect for both beginners and experienced players.",
			Category:    "Acoustic Guitar",
		},
		{
			Name:        "Cremona",
			Price:       money("1200.00"),
			Stock:       8,
			ImageURL:    "/images/products/cremona-violin.jpg",
			Description: "The Cremona violin is crafted from fine tonewoods, offering a superior sound that is both warm and projecting. An excellent choice for intermediate violinists.",
			Category:    "Violin",
		},
		{
			Name:        "Ibanez",
			Price:       money("1550.00"),
			Stock:       15,
			ImageURL:    "/images/products/ibanez-electric.jpg",
			Description: "This Ibanez electric guitar is built for speed and performance. With a sleek design and powerful pickups, it's ideal for rock and metal genres.",
			Category:    "Electric Guitar",
		},
	}
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
