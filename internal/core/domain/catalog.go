package domain

// IssueCategories is the closed list of categories a report may use.
var IssueCategories = []string{
	"Infrastructure (Potholes, Roads)",
	"Sanitation (Garbage, Debris)",
	"Utilities (Water, Power, Gas)",
	"Public Safety",
	"Parks & Recreation",
	"Other",
}

// Cities is the set of municipalities the platform serves. It populates the
// city selectors during registration and city-admin provisioning.
var Cities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
}

// ValidCategory reports whether c is one of IssueCategories.
func ValidCategory(c string) bool {
	for _, cat := range IssueCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// ValidCity reports whether c is one of Cities.
func ValidCity(c string) bool {
	for _, city := range Cities {
		if city == c {
			return true
		}
	}
	return false
}
