package dto

// RawTransaction is a provider record before normalization. The core fields
// are common to every source; provider-specific fields (notably the filer
// name, whose field name differs per source) live in Fields keyed by the
// provider's own field name.
type RawTransaction struct {
	TransactionDate  string
	Type             string
	Amount           string
	Ticker           string
	AssetDescription string
	Party            string
	Fields           map[string]string
}

// HouseTransaction is the House Stock Watcher wire format.
type HouseTransaction struct {
	TransactionDate  string `json:"transaction_date"`
	DisclosureDate   string `json:"disclosure_date"`
	Ticker           string `json:"ticker"`
	AssetDescription string `json:"asset_description"`
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	Representative   string `json:"representative"`
	Party            string `json:"party"`
}

// SenateTransaction is the Senate Stock Watcher wire format. Identical to the
// House shape except the filer field is named "senator".
type SenateTransaction struct {
	TransactionDate  string `json:"transaction_date"`
	DisclosureDate   string `json:"disclosure_date"`
	Ticker           string `json:"ticker"`
	AssetDescription string `json:"asset_description"`
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	Senator          string `json:"senator"`
	Party            string `json:"party"`
}
