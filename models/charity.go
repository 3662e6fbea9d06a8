package models

// Charity is a search result from The Giving Block directory (proxied, never
// stored).
type Charity struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	LogoURL     *string  `json:"logo_url,omitempty"`
	Categories  []string `json:"categories"`
}

// DonationAddress is a charity's deposit address for one token.
type DonationAddress struct {
	CharityID string `json:"charity_id"`
	Token     string `json:"token"`
	Address   string `json:"address"`
	Network   string `json:"network"`
}
