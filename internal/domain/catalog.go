package domain

// Destination is one selectable trek in the wizard's first step.
type Destination struct {
	ID           string
	Label        string
	DurationHint string
}

// FallbackDestinations is the static catalog used when the listing API is
// unreachable. It always ends with the custom sentinel.
func FallbackDestinations() []Destination {
	return []Destination{
		{ID: "everest_base_camp", Label: "Everest Base Camp Trek", DurationHint: "12-14 days"},
		{ID: "annapurna_circuit", Label: "Annapurna Circuit Trek", DurationHint: "15-20 days"},
		{ID: "annapurna_base_camp", Label: "Annapurna Base Camp Trek", DurationHint: "7-12 days"},
		{ID: "langtang_valley", Label: "Langtang Valley Trek", DurationHint: "7-10 days"},
		{ID: "manaslu_circuit", Label: "Manaslu Circuit Trek", DurationHint: "14-18 days"},
		{ID: "upper_mustang", Label: "Upper Mustang Trek", DurationHint: "12-16 days"},
		{ID: "gokyo_lakes", Label: "Gokyo Lakes Trek", DurationHint: "12-15 days"},
		{ID: "poon_hill", Label: "Ghorepani Poon Hill Trek", DurationHint: "4-6 days"},
		{ID: "kanchenjunga_base_camp", Label: "Kanchenjunga Base Camp Trek", DurationHint: "20-24 days"},
		{ID: "mardi_himal", Label: "Mardi Himal Trek", DurationHint: "5-7 days"},
		CustomDestination(),
	}
}

// CustomDestination is the catalog entry for a free-text destination.
func CustomDestination() Destination {
	return Destination{ID: CustomDestinationID, Label: "Custom destination (describe below)"}
}
