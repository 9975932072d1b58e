package store

import "github.com/mile-high-maps/nearby-cli/internal/model"

// sampleItems is the static fallback data set, one non-empty group per
// category. These stand in whenever a live source fails or returns nothing
// usable, so the map always has something to show.
var sampleItems = map[model.CategoryKey][]model.Item{
	model.CategorySitePlans: {
		{Name: "Broadway Mixed-Use SDP", Details: "Approved 2025", Lat: 39.7206, Lng: -104.9873},
		{Name: "RiNo Yard Redevelopment SDP", Details: "Under review", Lat: 39.7594, Lng: -104.9808},
		{Name: "Lowry East Parcel SDP", Details: "Concept submitted", Lat: 39.7145, Lng: -104.8922},
	},
	model.CategoryConstruction: {
		{Name: "Colfax Streetscape", Details: "Roadway + ADA upgrades", Lat: 39.7402, Lng: -104.9563},
		{Name: "South Platte Greenway Improvements", Details: "Trail enhancement", Lat: 39.7526, Lng: -105.006},
		{Name: "Auraria Utilities Relocation", Details: "Underground utility work", Lat: 39.7432, Lng: -105.0068},
	},
	model.CategoryRNOs: {
		{Name: "Capitol Hill United Neighborhoods", Details: "RNO #102", Lat: 39.7318, Lng: -104.9806},
		{Name: "Five Points Business District", Details: "RNO #247", Lat: 39.7598, Lng: -104.9775},
		{Name: "West Highland Neighbors", Details: "RNO #367", Lat: 39.7647, Lng: -105.045},
	},
	model.CategoryGrocery: {
		{Name: "King Soopers - Speer", Details: "1155 E 9th Ave", Lat: 39.7316, Lng: -104.9739},
		{Name: "Safeway - Corona", Details: "560 N Corona St", Lat: 39.7266, Lng: -104.9747},
		{Name: "Natural Grocers - Colfax", Details: "1433 N Washington St", Lat: 39.7402, Lng: -104.9781},
	},
	model.CategoryTransit: {
		{Name: "Union Station (RTD)", Details: "Rail + bus hub", Lat: 39.7527, Lng: -105.0008},
		{Name: "16th & California", Details: "Free MallRide stop", Lat: 39.7448, Lng: -104.9903},
		{Name: "Broadway & Alameda", Details: "Frequent bus corridor", Lat: 39.7101, Lng: -104.987},
	},
	model.CategoryLibraries: {
		{Name: "Denver Central Library", Details: "10 W 14th Ave Pkwy", Lat: 39.7377, Lng: -104.9882},
		{Name: "Ross-Cherry Creek Library", Details: "305 Milwaukee St", Lat: 39.7207, Lng: -104.9539},
		{Name: "Eugene Field Branch", Details: "810 S University Blvd", Lat: 39.7026, Lng: -104.9595},
	},
	model.CategoryRestaurants: {
		{Name: "Mercantile Dining & Provision", Details: "1701 Wynkoop St", Lat: 39.753, Lng: -105.0005},
		{Name: "Potager", Details: "1109 N Ogden St", Lat: 39.7347, Lng: -104.9745},
		{Name: "Cart-Driver RiNo", Details: "2500 Larimer St", Lat: 39.7581, Lng: -104.9844},
	},
}

// SampleItems returns a copy of the fallback samples for a category.
func SampleItems(key model.CategoryKey) []model.Item {
	return append([]model.Item(nil), sampleItems[key]...)
}
