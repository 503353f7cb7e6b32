package catalog

import "abils-mall/internal/domain"

// SeedProducts returns the demo catalog used by the in-memory store
// and the seed migration.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            1,
			Name:          "Wireless Bluetooth Headphones with Noise Cancellation",
			Description:   "Premium wireless headphones with active noise cancellation, 30-hour battery life, and superior sound quality.",
			Price:         6985,
			OriginalPrice: 134985,
			Category:      "Electronics",
			Badge:         "Bestseller",
			Image:         "/static/images/headphones.jpg",
			Images: []string{
				"/static/images/headphones.jpg",
				"/static/images/headphones1.jpg",
				"/static/images/headphones2.jpg",
			},
			Rating:      4.5,
			RatingCount: 1243,
			Specifications: map[string]string{
				"Battery Life":       "30 hours",
				"Connectivity":       "Bluetooth 5.0",
				"Noise Cancellation": "Active",
				"Water Resistance":   "IPX4",
				"Weight":             "250g",
				"Color":              "Black",
			},
			Stock: 45,
		},
		{
			ID:            2,
			Name:          "Smart Watch Fitness Tracker with Heart Rate Monitor",
			Description:   "Advanced smartwatch with fitness tracking, heart rate monitoring, sleep tracking, and smartphone notifications.",
			Price:         14985,
			OriginalPrice: 194985,
			Category:      "Electronics",
			Badge:         "New",
			Image:         "/static/images/smartwatch.jpg",
			Images: []string{
				"/static/images/smartwatch.jpg",
				"/static/images/smartwatch1.jpg",
			},
			Rating:      4.2,
			RatingCount: 856,
			Specifications: map[string]string{
				"Display":          "1.3\" AMOLED",
				"Battery Life":     "7 days",
				"Water Resistance": "5 ATM",
				"GPS":              "Built-in",
				"Compatibility":    "iOS & Android",
			},
			Stock: 32,
		},
		{
			ID:          3,
			Name:        "Leather Office Chair with Lumbar Support",
			Description: "Ergonomic high-back office chair with adjustable lumbar support and breathable padding.",
			Price:       42500,
			Category:    "Furniture",
			Badge:       "Sale",
			Image:       "/static/images/chair.jpg",
			Images:      []string{"/static/images/chair.jpg"},
			Rating:      4.7,
			RatingCount: 312,
			Stock:       12,
		},
		{
			ID:          4,
			Name:        "Stainless Steel Electric Kettle 1.7L",
			Description: "Fast-boil cordless kettle with auto shut-off and boil-dry protection.",
			Price:       8900,
			Category:    "Home & Kitchen",
			Image:       "/static/images/kettle.jpg",
			Images:      []string{"/static/images/kettle.jpg"},
			Rating:      4.1,
			RatingCount: 98,
			Stock:       60,
		},
	}
}
