package model

// DistanceTranche is one distance-range pricing tier. Tranches are fixed and
// ordered and partition [0, +inf): the first tier starts at zero and the last
// one is open-ended, so every non-negative distance matches exactly one tier.
type DistanceTranche struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	LowerKm   float64 `json:"lower_km"`
	UpperKm   float64 `json:"upper_km"` // ignored when Unbounded
	PerKm     bool    `json:"is_per_km"`
	Unbounded bool    `json:"unbounded"`
}

var DistanceTranches = []DistanceTranche{
	{ID: "1-10", Label: "1 à 10 km", LowerKm: 0, UpperKm: 10},
	{ID: "11-20", Label: "11 à 20 km", LowerKm: 11, UpperKm: 20},
	{ID: "21-30", Label: "21 à 30 km", LowerKm: 21, UpperKm: 30},
	{ID: "31-40", Label: "31 à 40 km", LowerKm: 31, UpperKm: 40},
	{ID: "41-50", Label: "41 à 50 km", LowerKm: 41, UpperKm: 50},
	{ID: "51-60", Label: "51 à 60 km", LowerKm: 51, UpperKm: 60},
	{ID: "61-70", Label: "61 à 70 km", LowerKm: 61, UpperKm: 70},
	{ID: "71-80", Label: "71 à 80 km", LowerKm: 71, UpperKm: 80},
	{ID: "81-90", Label: "81 à 90 km", LowerKm: 81, UpperKm: 90},
	{ID: "91-100", Label: "91 à 100 km", LowerKm: 91, UpperKm: 100},
	{ID: "101-200", Label: "101 à 200 km", LowerKm: 101, UpperKm: 200, PerKm: true},
	{ID: "201-300", Label: "201 à 300 km", LowerKm: 201, UpperKm: 300, PerKm: true},
	{ID: "301-400", Label: "301 à 400 km", LowerKm: 301, UpperKm: 400, PerKm: true},
	{ID: "401-500", Label: "401 à 500 km", LowerKm: 401, UpperKm: 500, PerKm: true},
	{ID: "501-700", Label: "501 à 700 km", LowerKm: 501, UpperKm: 700, PerKm: true},
	{ID: "701+", Label: "701 km et plus", LowerKm: 701, PerKm: true, Unbounded: true},
}

// TrancheFor selects the tier containing the given distance. Tranches are
// ordered, so the first tier whose upper bound is not exceeded wins; the
// final open-ended tier catches everything beyond it.
func TrancheFor(distanceKm float64) (DistanceTranche, bool) {
	if distanceKm < 0 {
		return DistanceTranche{}, false
	}
	for _, tranche := range DistanceTranches {
		if tranche.Unbounded || distanceKm <= tranche.UpperKm {
			return tranche, true
		}
	}
	return DistanceTranche{}, false
}

func TrancheByID(id string) (DistanceTranche, bool) {
	for _, tranche := range DistanceTranches {
		if tranche.ID == id {
			return tranche, true
		}
	}
	return DistanceTranche{}, false
}

// VehicleCategory is a member of the closed, curated category set.
type VehicleCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

const (
	CategoryCitadine       = "citadine"
	CategoryBerline        = "berline"
	CategorySUV            = "suv"
	CategoryUtilitaire3m3  = "utilitaire_3m3"
	CategoryUtilitaire6m3  = "utilitaire_6m3"
	CategoryUtilitaire10m3 = "utilitaire_10m3"
	CategoryUtilitaire14m3 = "utilitaire_14m3"
	CategoryUtilitaire20m3 = "utilitaire_20m3"
)

var VehicleCategories = []VehicleCategory{
	{ID: CategoryCitadine, Label: "Citadine"},
	{ID: CategoryBerline, Label: "Berline"},
	{ID: CategorySUV, Label: "SUV / 4x4"},
	{ID: CategoryUtilitaire3m3, Label: "Utilitaire 3m³"},
	{ID: CategoryUtilitaire6m3, Label: "Utilitaire 6m³"},
	{ID: CategoryUtilitaire10m3, Label: "Utilitaire 10m³"},
	{ID: CategoryUtilitaire14m3, Label: "Utilitaire 14m³"},
	{ID: CategoryUtilitaire20m3, Label: "Utilitaire 20m³"},
}

func CategoryByID(id string) (VehicleCategory, bool) {
	for _, category := range VehicleCategories {
		if category.ID == id {
			return category, true
		}
	}
	return VehicleCategory{}, false
}

// equivalenceGroups declares sets of categories that always share identical
// tariffs. Declared as data so further groups can be added without touching
// the commit logic.
var equivalenceGroups = [][]string{
	{CategoryCitadine, CategoryBerline},
}

// EquivalentCategories returns the other members of the category's
// equivalence group, or nil when the category stands alone.
func EquivalentCategories(categoryID string) []string {
	for _, group := range equivalenceGroups {
		for _, member := range group {
			if member != categoryID {
				continue
			}
			twins := make([]string, 0, len(group)-1)
			for _, other := range group {
				if other != categoryID {
					twins = append(twins, other)
				}
			}
			return twins
		}
	}
	return nil
}
