package stub

import (
	"crickmart/internal/domain"

	"github.com/shopspring/decimal"
)

// seedProducts returns the development catalog. Ids are stable so local
// carts survive stub restarts.
func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ProductID:       "bat-gm-diamond",
			ProductName:     "GM Diamond 808 English Willow Bat",
			Price:           decimal.NewFromFloat(289.99),
			ProductCategory: 1,
			ProductBrand:    1,
			ProductStyle:    2,
			Description:     "Grade 1 English willow, full profile with a mid-to-low sweet spot.",
			Size:            "SH",
			Weight:          "2lb 9oz",
			Images:          []string{"/img/bat-gm-diamond-1.jpeg", "/img/bat-gm-diamond-2.jpeg"},
		},
		{
			ProductID:       "bat-gm-diamond-lh",
			ProductName:     "GM Diamond 808 English Willow Bat (LH)",
			Price:           decimal.NewFromFloat(289.99),
			ProductCategory: 1,
			ProductBrand:    1,
			ProductStyle:    1,
			Description:     "Left-handed pick of the Diamond 808.",
			Size:            "SH",
			Weight:          "2lb 9oz",
			Images:          []string{"/img/bat-gm-diamond-1.jpeg"},
		},
		{
			ProductID:       "bat-sg-savage",
			ProductName:     "SG Savage Xtreme Kashmir Willow Bat",
			Price:           decimal.NewFromFloat(94.50),
			ProductCategory: 1,
			ProductBrand:    2,
			ProductStyle:    2,
			Description:     "Kashmir willow with thick edges for club play.",
			Size:            "SH",
			Weight:          "2lb 11oz",
			Images:          []string{"/img/bat-sg-savage-1.jpeg"},
		},
		{
			ProductID:       "ball-kb-turf",
			ProductName:     "Kookaburra Turf Red Cricket Ball",
			Price:           decimal.NewFromFloat(32.00),
			ProductCategory: 2,
			ProductBrand:    3,
			Description:     "Four-piece alum tanned leather, first-class match ball.",
			Weight:          "156g",
			Images:          []string{"/img/ball-kb-turf-1.jpeg"},
		},
		{
			ProductID:       "gloves-gn-legend",
			ProductName:     "Gray-Nicolls Legend Batting Gloves",
			Price:           decimal.NewFromFloat(119.00),
			ProductCategory: 3,
			ProductBrand:    4,
			ProductStyle:    2,
			Description:     "Premium calf leather palm with flexible side bolsters.",
			Size:            "Adult",
			Images:          []string{"/img/gloves-gn-legend-1.jpeg"},
		},
		{
			ProductID:       "pads-mrf-genius",
			ProductName:     "MRF Genius Batting Pads",
			Price:           decimal.NewFromFloat(84.99),
			ProductCategory: 4,
			ProductBrand:    6,
			ProductStyle:    2,
			Description:     "Lightweight cane-reinforced pads with moulded knee.",
			Size:            "Adult",
			Images:          []string{"/img/pads-mrf-genius-1.jpeg"},
		},
		{
			ProductID:       "helmet-spartan",
			ProductName:     "Spartan Titanium Grille Helmet",
			Price:           decimal.NewFromFloat(139.95),
			ProductCategory: 5,
			ProductBrand:    7,
			Description:     "Titanium grille with adjustable rear dial.",
			Size:            "L",
			Images:          []string{"/img/helmet-spartan-1.jpeg"},
		},
		{
			ProductID:       "shoes-nb-ck4040",
			ProductName:     "New Balance CK4040 Spikes",
			Price:           decimal.NewFromFloat(129.99),
			ProductCategory: 6,
			ProductBrand:    5,
			Description:     "All-rounder spikes with REVlite midsole.",
			Size:            "UK 10",
			Images:          []string{"/img/shoes-nb-ck4040-1.jpeg"},
		},
	}
}
