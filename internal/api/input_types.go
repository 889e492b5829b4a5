package api

import (
	"github.com/terraincognita07/nutrilog/internal/services"
)

type entryPayload struct {
	Date        string             `json:"date"`
	Product     string             `json:"product"`
	Brand       string             `json:"brand"`
	PortionSize float64            `json:"portionSize"`
	Calorii     float64            `json:"calorii"`
	Sare        float64            `json:"sare"`
	Zahar       float64            `json:"zahar"`
	Grasimi     float64            `json:"grasimi"`
	Proteine    float64            `json:"proteine"`
	Fibre       float64            `json:"fibre"`
	Nutriments  map[string]float64 `json:"nutriments"`
	NutriScore  string             `json:"nutriscore"`
	Nova        string             `json:"nova"`
}

func (payload entryPayload) toInput() services.EntryInput {
	return services.EntryInput{
		Date:        payload.Date,
		Product:     payload.Product,
		Brand:       payload.Brand,
		PortionSize: payload.PortionSize,
		Nutrients: services.ExtractedNutrients{
			Calorii:  payload.Calorii,
			Sare:     payload.Sare,
			Zahar:    payload.Zahar,
			Grasimi:  payload.Grasimi,
			Proteine: payload.Proteine,
			Fibre:    payload.Fibre,
		},
		RawNutrients: payload.Nutriments,
		NutriScore:   payload.NutriScore,
		Nova:         payload.Nova,
	}
}

type moodPayload struct {
	Mood string `json:"mood"`
}

type scanPayload struct {
	NutriScore string `json:"nutriscore"`
}

type searchPayload struct {
	Query string `json:"query"`
}
