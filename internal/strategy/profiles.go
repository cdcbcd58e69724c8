package strategy

import "MultiplierSentinel/internal/model"

var profiles = map[model.Category]model.CategoryProfile{
	model.CategoryBreakout: {Range: "3.00x – 8.00x", Label: "Breakout likely", Color: "#22C55E", Badge: "badge-breakout", Icon: "🚀"},
	model.CategoryCooldown: {Range: "1.00x – 1.50x", Label: "Cooling down", Color: "#38BDF8", Badge: "badge-cooldown", Icon: "🧊"},
	model.CategoryStable:   {Range: "2.00x – 3.50x", Label: "Stable range", Color: "#F59E0B", Badge: "badge-stable", Icon: "⚖️"},
	model.CategoryLow:      {Range: "1.00x – 2.00x", Label: "Low multiplier", Color: "#F43F5E", Badge: "badge-low", Icon: "📉"},
	model.CategoryNone:     {Range: "–", Label: "Awaiting input", Color: "#94A3B8", Badge: "badge-none", Icon: "⏳"},
}

var categoryOrder = []model.Category{
	model.CategoryBreakout,
	model.CategoryCooldown,
	model.CategoryStable,
	model.CategoryLow,
	model.CategoryNone,
}

// Profile returns the display metadata for c. Unknown categories get the NONE profile.
func Profile(c model.Category) model.CategoryProfile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return profiles[model.CategoryNone]
}

// Categories lists every category in display order, NONE last.
func Categories() []model.Category {
	out := make([]model.Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}
