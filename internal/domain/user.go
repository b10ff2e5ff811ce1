package domain

// Session is the fake local login stub. There is no authentication behind
// it; it only personalizes the greeting.
type Session struct {
	Name string `json:"name"`
}

// Preferences are small per-user toggles cached between visits.
type Preferences struct {
	WeatherCity string `json:"weatherCity,omitempty"`
	LastTab     string `json:"lastTab,omitempty"`
}

// Favorite is a quick re-add shortcut for a frequently bought item.
type Favorite struct {
	Name     string `json:"name"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon,omitempty"`
}
