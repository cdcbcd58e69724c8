package model

// Category is the label the classifier assigns to a history.
type Category string

const (
	CategoryBreakout Category = "BREAKOUT"
	CategoryCooldown Category = "COOLDOWN"
	CategoryStable   Category = "STABLE"
	CategoryLow      Category = "LOW"
	// CategoryNone marks "nothing classified yet". The engine never returns it.
	CategoryNone Category = "NONE"
)

// CategoryProfile is the display metadata bound to a Category.
type CategoryProfile struct {
	Range string `json:"range"`
	Label string `json:"label"`
	Color string `json:"color"` // hex colour for terminal output
	Badge string `json:"badge"` // CSS class for the web form
	Icon  string `json:"icon"`  // chat prefix
}

// PredictionResult is the final output of the strategy engine.
type PredictionResult struct {
	Category Category        `json:"category"`
	Profile  CategoryProfile `json:"profile"`
	History  History         `json:"history"`
}
