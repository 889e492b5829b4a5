package models

type SearchEntry struct {
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"`
}

// CartItem mirrors a store offer saved to the shopping cart. Pret is kept as
// free text because stores publish prices in mixed formats.
type CartItem struct {
	Titlu   string `json:"titlu,omitempty"`
	Magazin string `json:"magazin,omitempty"`
	Pret    string `json:"pret,omitempty"`
	Imagine string `json:"imagine,omitempty"`
}

// CartUsage counts cart additions per store name.
type CartUsage map[string]int
