package store

import "github.com/oba-crm/backend/internal/models"

// DefaultMarkets is the static OBA market directory used to seed a fresh
// store.
func DefaultMarkets() []models.Market {
	return []models.Market{
		{ID: "M001", Name: "OBA 28 May", Location: "Bakı, 28 May metrosu", Phone: "994501234567"},
		{ID: "M002", Name: "OBA Nərimanov", Location: "Bakı, Nərimanov rayonu", Phone: "994501234568"},
		{ID: "M003", Name: "OBA Xətai", Location: "Bakı, Xətai rayonu", Phone: "994501234569"},
		{ID: "M004", Name: "OBA Gənclik", Location: "Bakı, Gənclik metrosu", Phone: "994501234570"},
		{ID: "M005", Name: "OBA Sumqayıt", Location: "Sumqayıt şəhəri", Phone: "994501234571"},
	}
}
