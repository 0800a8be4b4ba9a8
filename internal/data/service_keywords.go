package data

// ServiceKeyword is one weighted entry in a service category table.
type ServiceKeyword struct {
	Term   string
	Weight float64
}

// defaultServiceKeywords maps service categories to weighted keyword lists.
// Weights reflect how strongly a term alone implies that trade.
var defaultServiceKeywords = map[string][]ServiceKeyword{
	"plumbing": {
		{Term: "plumber", Weight: 1.0},
		{Term: "plumbing", Weight: 0.9},
		{Term: "geyser", Weight: 0.8},
		{Term: "burst pipe", Weight: 0.8},
		{Term: "drain", Weight: 0.6},
		{Term: "leak", Weight: 0.5},
	},
	"electrical": {
		{Term: "electrician", Weight: 1.0},
		{Term: "electrical", Weight: 0.8},
		{Term: "wiring", Weight: 0.7},
		{Term: "db board", Weight: 0.7},
		{Term: "coc certificate", Weight: 0.7},
		{Term: "load shedding", Weight: 0.4},
		{Term: "inverter", Weight: 0.6},
		{Term: "solar", Weight: 0.5},
	},
	"building": {
		{Term: "builder", Weight: 1.0},
		{Term: "building", Weight: 0.6},
		{Term: "renovation", Weight: 0.8},
		{Term: "paving", Weight: 0.7},
		{Term: "tiling", Weight: 0.7},
		{Term: "painter", Weight: 0.9},
		{Term: "painting", Weight: 0.6},
		{Term: "waterproofing", Weight: 0.8},
		{Term: "handyman", Weight: 0.9},
	},
	"garden": {
		{Term: "gardener", Weight: 1.0},
		{Term: "garden service", Weight: 0.9},
		{Term: "tree felling", Weight: 0.8},
		{Term: "landscaping", Weight: 0.8},
		{Term: "irrigation", Weight: 0.7},
		{Term: "lawn", Weight: 0.5},
	},
	"security": {
		{Term: "armed response", Weight: 0.9},
		{Term: "alarm", Weight: 0.6},
		{Term: "cctv", Weight: 0.8},
		{Term: "electric fence", Weight: 0.8},
		{Term: "security gate", Weight: 0.7},
		{Term: "locksmith", Weight: 1.0},
	},
	"cleaning": {
		{Term: "cleaner", Weight: 0.9},
		{Term: "cleaning service", Weight: 0.9},
		{Term: "domestic worker", Weight: 0.8},
		{Term: "carpet cleaning", Weight: 0.8},
		{Term: "pest control", Weight: 0.9},
		{Term: "fumigation", Weight: 0.8},
	},
	"automotive": {
		{Term: "mechanic", Weight: 1.0},
		{Term: "panel beater", Weight: 0.9},
		{Term: "tow truck", Weight: 0.8},
		{Term: "windscreen", Weight: 0.7},
		{Term: "tyres", Weight: 0.6},
		{Term: "car service", Weight: 0.7},
	},
	"appliances": {
		{Term: "appliance repair", Weight: 0.9},
		{Term: "fridge repair", Weight: 0.9},
		{Term: "washing machine", Weight: 0.6},
		{Term: "aircon", Weight: 0.7},
		{Term: "air conditioning", Weight: 0.7},
		{Term: "dstv installer", Weight: 0.9},
		{Term: "wifi", Weight: 0.4},
		{Term: "fibre", Weight: 0.5},
	},
	"roofing": {
		{Term: "roofer", Weight: 1.0},
		{Term: "roofing", Weight: 0.9},
		{Term: "gutters", Weight: 0.7},
		{Term: "ceiling", Weight: 0.5},
		{Term: "thatch", Weight: 0.7},
	},
	"pool": {
		{Term: "pool service", Weight: 0.9},
		{Term: "pool pump", Weight: 0.8},
		{Term: "pool cleaner", Weight: 0.9},
		{Term: "pool repairs", Weight: 0.8},
	},
}

// DefaultServiceKeywords returns the built-in category keyword tables.
// Callers must not mutate the returned map.
func DefaultServiceKeywords() map[string][]ServiceKeyword {
	return defaultServiceKeywords
}
