package services

import "github.com/terraincognita07/nutrilog/internal/models"

const kilojoulesPerKilocalorie = 4.184

// ExtractedNutrients holds nutrient amounts for one portion of a product.
type ExtractedNutrients struct {
	Calorii  float64 `json:"calorii"`
	Sare     float64 `json:"sare"`
	Zahar    float64 `json:"zahar"`
	Grasimi  float64 `json:"grasimi"`
	Proteine float64 `json:"proteine"`
	Fibre    float64 `json:"fibre"`
}

// ExtractNutrients reads a product nutrient table keyed the Open Food Facts
// way. Per nutrient the per-serving value wins, then the per-100g value scaled
// to the portion, then the bare value. Missing nutrients count as zero.
func ExtractNutrients(raw map[string]float64, portionGrams float64) ExtractedNutrients {
	if portionGrams <= 0 {
		portionGrams = models.DefaultPortionSize
	}
	value := func(name string) float64 {
		if amount, ok := raw[name+"_serving"]; ok {
			return amount
		}
		if amount, ok := raw[name+"_100g"]; ok {
			return amount * portionGrams / 100
		}
		return raw[name]
	}

	calories := value("energy-kcal")
	if calories == 0 {
		calories = value("energy") / kilojoulesPerKilocalorie
	}

	return ExtractedNutrients{
		Calorii:  calories,
		Sare:     value("salt"),
		Zahar:    value("sugars"),
		Grasimi:  value("fat"),
		Proteine: value("proteins"),
		Fibre:    value("fiber"),
	}
}

// Rounded applies journal precision: salt to milligrams, the rest to 0.01.
func (nutrients ExtractedNutrients) Rounded() ExtractedNutrients {
	return ExtractedNutrients{
		Calorii:  roundTo(nutrients.Calorii, 2),
		Sare:     roundTo(nutrients.Sare, 3),
		Zahar:    roundTo(nutrients.Zahar, 2),
		Grasimi:  roundTo(nutrients.Grasimi, 2),
		Proteine: roundTo(nutrients.Proteine, 2),
		Fibre:    roundTo(nutrients.Fibre, 2),
	}
}
