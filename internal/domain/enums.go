package domain

type GroupType string

const (
	GroupSolo      GroupType = "solo"
	GroupCouple    GroupType = "couple"
	GroupFriends   GroupType = "friends"
	GroupFamily    GroupType = "family"
	GroupCorporate GroupType = "corporate"
	GroupSchool    GroupType = "school"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceNovice       ExperienceLevel = "novice"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExperienced  ExperienceLevel = "experienced"
	ExperienceExpert       ExperienceLevel = "expert"
)

type FitnessLevel string

const (
	FitnessLow       FitnessLevel = "low"
	FitnessModerate  FitnessLevel = "moderate"
	FitnessGood      FitnessLevel = "good"
	FitnessVeryGood  FitnessLevel = "very_good"
	FitnessExcellent FitnessLevel = "excellent"
)

type Accommodation string

const (
	AccommodationCamping  Accommodation = "camping"
	AccommodationTeahouse Accommodation = "teahouse"
	AccommodationLodge    Accommodation = "lodge"
	AccommodationHotel    Accommodation = "hotel"
	AccommodationHomestay Accommodation = "homestay"
)

type MealPreference string

const (
	MealVegetarian    MealPreference = "vegetarian"
	MealVegan         MealPreference = "vegan"
	MealNonVegetarian MealPreference = "non_vegetarian"
	MealGlutenFree    MealPreference = "gluten_free"
	MealLactoseFree   MealPreference = "lactose_free"
	MealHalal         MealPreference = "halal"
	MealKosher        MealPreference = "kosher"
)

type Transport string

const (
	TransportPrivateVehicle Transport = "private_vehicle"
	TransportPublicBus      Transport = "public_bus"
	TransportFlight         Transport = "flight"
	TransportHelicopter     Transport = "helicopter"
)

type BudgetRange string

const (
	BudgetEconomy  BudgetRange = "budget"
	BudgetStandard BudgetRange = "standard"
	BudgetComfort  BudgetRange = "comfort"
	BudgetLuxury   BudgetRange = "luxury"
)

// Canonical option sets, in display order. Validation and the step forms
// both read from these so the two never drift apart.
var (
	GroupTypes       = []GroupType{GroupSolo, GroupCouple, GroupFriends, GroupFamily, GroupCorporate, GroupSchool}
	ExperienceLevels = []ExperienceLevel{ExperienceBeginner, ExperienceNovice, ExperienceIntermediate, ExperienceExperienced, ExperienceExpert}
	FitnessLevels    = []FitnessLevel{FitnessLow, FitnessModerate, FitnessGood, FitnessVeryGood, FitnessExcellent}
	Accommodations   = []Accommodation{AccommodationCamping, AccommodationTeahouse, AccommodationLodge, AccommodationHotel, AccommodationHomestay}
	MealPreferences  = []MealPreference{MealVegetarian, MealVegan, MealNonVegetarian, MealGlutenFree, MealLactoseFree, MealHalal, MealKosher}
	Transports       = []Transport{TransportPrivateVehicle, TransportPublicBus, TransportFlight, TransportHelicopter}
	BudgetRanges     = []BudgetRange{BudgetEconomy, BudgetStandard, BudgetComfort, BudgetLuxury}
)

func isOneOf[T comparable](v T, set []T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (g GroupType) Valid() bool       { return isOneOf(g, GroupTypes) }
func (e ExperienceLevel) Valid() bool { return isOneOf(e, ExperienceLevels) }
func (f FitnessLevel) Valid() bool    { return isOneOf(f, FitnessLevels) }
func (a Accommodation) Valid() bool   { return isOneOf(a, Accommodations) }
func (m MealPreference) Valid() bool  { return isOneOf(m, MealPreferences) }
func (t Transport) Valid() bool       { return isOneOf(t, Transports) }
func (b BudgetRange) Valid() bool     { return isOneOf(b, BudgetRanges) }
