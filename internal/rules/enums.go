package rules

// Enum domains shared across entity rule sets. These are fixed by the data
// contract; they are not configurable at runtime.
var (
	Genders       = []string{"F", "M", "O"}
	LoyaltyTiers  = []string{"Bronze", "Silver", "Gold", "Platinum"}
	Channels      = []string{"InStore", "Online", "Mobile"}
	Regions       = []string{"North", "South", "East", "West", "Central"}
	StoreTypes    = []string{"Mall", "Street", "Outlet", "OnlineHub"}
	Categories    = []string{"Grocery", "Electronics", "Clothing", "Home", "Beauty", "Sports"}
	Discountables = []string{"0", "1"}
)
