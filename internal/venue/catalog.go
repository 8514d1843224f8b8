package venue

// catalog maps venue names, as the backend stores them, to their static metadata
var catalog = map[string]Metadata{
	"Swingers (NYC)": {
		BaseName:     "Swingers",
		Location:     "Nomad",
		Neighborhood: "Midtown",
		Description:  "Adults-only mini-golf paired with street-food style dining and bar service",
		City:         "NYC",
		Image:        "Swingers.webp",
	},
	"Electric Shuffle (NYC)": {
		BaseName:     "Electric Shuffle",
		Location:     "Nomad",
		Neighborhood: "Midtown",
		Description:  "Technology-enabled shuffleboard with TV screens and restaurant service",
		City:         "NYC",
		Image:        "Electric Shuffle.webp",
	},
	"Puttery (NYC)": {
		BaseName:     "Puttery",
		Location:     "Meatpacking",
		Neighborhood: "Downtown",
		Description:  "21+ indoor mini-golf positioned around cocktails and full-service dining.",
		City:         "NYC",
		Image:        "Puttery.webp",
	},
	"Five Iron Golf (NYC - FiDi)": {
		BaseName:     "Five Iron Golf",
		Location:     "Financial District",
		Neighborhood: "Downtown",
		Description:  "Indoor golf simulator venues offering practice, leagues, and bar service",
		City:         "NYC",
		Image:        "FiveIron.webp",
	},
	"Five Iron Golf (NYC - Flatiron)": {
		BaseName:     "Five Iron Golf",
		Location:     "Flatiron",
		Neighborhood: "Midtown",
		Description:  "Indoor golf simulator venues offering practice, leagues, and bar service",
		City:         "NYC",
		Image:        "FiveIron.webp",
	},
	"Five Iron Golf (NYC - Grand Central)": {
		BaseName:     "Five Iron Golf",
		Location:     "Midtown East",
		Neighborhood: "Midtown",
		Description:  "Indoor golf simulator venues offering practice, leagues, and bar service",
		City:         "NYC",
		Image:        "FiveIron.webp",
	},
	"Five Iron Golf (NYC - Herald Square)": {
		BaseName:     "Five Iron Golf",
		Location:     "Herald Square",
		Neighborhood: "Midtown",
		Description:  "Indoor golf simulator venues offering practice, leagues, and bar service",
		City:         "NYC",
		Image:        "FiveIron.webp",
	},
	"Five Iron Golf (NYC - Long Island City)": {
		BaseName:     "Five Iron Golf",
		Location:     "Long Island City",
		Neighborhood: "Brooklyn/Queens",
		Description:  "Indoor golf simulator venues offering practice, leagues, and bar service",
		City:         "NYC",
		Image:        "FiveIron.webp",
	},
	"Five Iron Golf (NYC - Upper East Side)": {
		BaseName:     "Five Iron Golf",
		Location:     "Upper East Side",
		Neighborhood: "Uptown",
		Description:  "Indoor golf simulator venues offering practice, leagues, and bar service",
		City:         "NYC",
		Image:        "FiveIron.webp",
	},
	"Five Iron Golf (NYC - Rockefeller Center)": {
		BaseName:     "Five Iron Golf",
		Location:     "Rockefeller Center",
		Neighborhood: "Midtown",
		Description:  "Indoor golf simulator venues offering practice, leagues, and bar service",
		City:         "NYC",
		Image:        "FiveIron.webp",
	},
	"SPIN (NYC - Flatiron)": {
		BaseName:     "SPIN New York",
		Location:     "Flatiron",
		Neighborhood: "Midtown",
		Description:  "Table-tennis-centered social club with bar, events, and group bookings.",
		City:         "NYC",
		Image:        "spin_flatrion.webp",
	},
	"SPIN (NYC - Midtown)": {
		BaseName:     "SPIN New York",
		Location:     "Midtown East",
		Neighborhood: "Midtown",
		Description:  "Table-tennis-centered social club with bar, events, and group bookings.",
		City:         "NYC",
		Image:        "spin_midtown.webp",
	},
	"T-Squared Social": {
		BaseName:     "T-Squared Social",
		Location:     "Midtown East",
		Neighborhood: "Midtown",
		Description:  "Sports bar centered on multi-sport simulators, games, and large-screen viewing",
		City:         "NYC",
		Image:        "tsquaredsocial.webp",
	},
	"Lucky Strike (Times Square)": {
		BaseName:     "Lucky Strike Bowling",
		Location:     "Times Square",
		Neighborhood: "Midtown",
		Description:  "Bowling-based entertainment venue with arcade games and bar space",
		City:         "NYC",
		Image:        "LuckyStrike.webp",
	},
	"Lucky Strike (Chelsea Piers)": {
		BaseName:     "Lucky Strike Bowling",
		Location:     "Chelsea Piers",
		Neighborhood: "Midtown",
		Description:  "F1-themed racing simulators with elevated food and drink",
		City:         "NYC",
		Image:        "LuckyStrike.webp",
	},
	"The Lawn Club (Financial District)": {
		BaseName:     "The Lawn Club",
		Location:     "Financial District",
		Neighborhood: "Downtown",
		Description:  "Indoor lawn games (bocce, cornhole, croquet) and bar",
		City:         "NYC",
		Activities:   []string{"Croquet Lawns", "Curling Lawns", "Indoor Gaming"},
	},
	"Lawn Club (Croquet Lawns)": {
		BaseName:     "The Lawn Club",
		Location:     "Financial District",
		Neighborhood: "Downtown",
		Description:  "Indoor lawn games (bocce, cornhole, croquet) and bar",
		City:         "NYC",
		Image:        "LawnClubCroquetNewYork.webp",
		Activities:   []string{"Croquet Lawns", "Curling Lawns", "Indoor Gaming"},
	},
	"Lawn Club (Curling Lawns)": {
		BaseName:     "The Lawn Club",
		Location:     "Financial District",
		Neighborhood: "Downtown",
		Description:  "Indoor lawn games (bocce, cornhole, croquet) and bar",
		City:         "NYC",
		Image:        "LawnClubCurlingNewYork.jpg",
		Activities:   []string{"Croquet Lawns", "Curling Lawns", "Indoor Gaming"},
	},
	"Lawn Club (Indoor Gaming)": {
		BaseName:     "The Lawn Club",
		Location:     "Financial District",
		Neighborhood: "Downtown",
		Description:  "Indoor lawn games (bocce, cornhole, croquet) and bar",
		City:         "NYC",
		Image:        "LawnClub.webp",
		Activities:   []string{"Croquet Lawns", "Curling Lawns", "Indoor Gaming"},
	},
	"Kick Axe (Brooklyn)": {
		BaseName:     "Kick Axe",
		Location:     "Gowanus",
		Neighborhood: "Brooklyn/Queens",
		Description:  "Lodge-style axe-throwing bar with events",
		City:         "NYC",
		Image:        "kickaxe.webp",
	},
	"Chelsea Piers Golf": {
		BaseName:     "Chelsea Piers",
		Location:     "Chelsea",
		Neighborhood: "Midtown",
		Description:  "Large-scale golf practice facility with river views",
		City:         "NYC",
		Image:        "daysmart.webp",
	},
	"Topgolf Chigwell": {
		BaseName:     "Topgolf",
		Location:     "Chigwell",
		Neighborhood: "",
		Description:  "Large-format, technology-enabled driving range combining golf games with food and beverage",
		City:         "London",
		Image:        "topgolfchigwell.webp",
	},
	"Puttshack (Bank)": {
		BaseName:     "Puttshack",
		Location:     "Bank",
		Neighborhood: "The City",
		Description:  "Tech-enabled crazy golf",
		City:         "London",
		Image:        "Puttshack.webp",
	},
	"Puttshack (Lakeside)": {
		BaseName:     "Puttshack",
		Location:     "Westfield",
		Neighborhood: "",
		Description:  "Tech-enabled crazy golf",
		City:         "London",
		Image:        "Puttshack.webp",
	},
	"Puttshack (White City)": {
		BaseName:     "Puttshack",
		Location:     "White City",
		Neighborhood: "",
		Description:  "Tech-enabled crazy golf",
		City:         "London",
		Image:        "Puttshack.webp",
	},
	"Puttshack (Watford)": {
		BaseName:     "Puttshack",
		Location:     "Watford",
		Neighborhood: "",
		Description:  "Tech-enabled crazy golf",
		City:         "London",
		Image:        "Puttshack.webp",
	},
	"Swingers (London)": {
		BaseName:     "Swingers",
		Location:     "Oxford Circus",
		Neighborhood: "West End",
		Description:  "Adults-only mini-golf paired with street-food style dining and bar service",
		City:         "London",
		Image:        "Swingers.webp",
	},
	"Flight Club Darts (Shoreditch)": {
		BaseName:     "Flight Club",
		Location:     "Shoreditch",
		Neighborhood: "The City",
		Description:  "Tech-enabled social darts with automated scoring and group games",
		City:         "London",
		Image:        "Flight Club.webp",
	},
	"Flight Club Darts (Bloomsbury)": {
		BaseName:     "Flight Club",
		Location:     "Bloomsbury",
		Neighborhood: "West End",
		Description:  "Tech-enabled social darts with automated scoring and group games",
		City:         "London",
		Image:        "Flight Club.webp",
	},
	"Flight Club Darts (Victoria)": {
		BaseName:     "Flight Club",
		Location:     "Victoria",
		Neighborhood: "Westminster",
		Description:  "Tech-enabled social darts with automated scoring and group games",
		City:         "London",
		Image:        "Flight Club.webp",
	},
	"Flight Club Darts (Angel)": {
		BaseName:     "Flight Club",
		Location:     "Islington",
		Neighborhood: "The City",
		Description:  "Tech-enabled social darts with automated scoring and group games",
		City:         "London",
		Image:        "Flight Club.webp",
	},
	"Electric Shuffle (London)": {
		BaseName:     "Electric Shuffle",
		Location:     "Canary Wharf",
		Neighborhood: "Canary Wharf",
		Description:  "Technology-enabled shuffleboard with TV screens and restaurant service",
		City:         "London",
		Image:        "Electric Shuffle.webp",
	},
	"Electric Shuffle (London Bridge)": {
		BaseName:     "Electric Shuffle",
		Location:     "London Bridge",
		Neighborhood: "The City",
		Description:  "Technology-enabled shuffleboard with TV screens and restaurant service",
		City:         "London",
	},
	"Electric Shuffle (King's Cross)": {
		BaseName:     "Electric Shuffle",
		Location:     "King's Cross",
		Neighborhood: "",
		Description:  "Technology-enabled shuffleboard with TV screens and restaurant service",
		City:         "London",
	},
	"Clays Bar (Canary Wharf)": {
		BaseName:     "Clays",
		Location:     "Canary Wharf",
		Neighborhood: "Canary Wharf",
		Description:  "Virtual clay shooting using simulated targets in an indoor bar environment",
		City:         "London",
		Image:        "Clays.webp",
	},
	"Clays Bar (The City)": {
		BaseName:     "Clays",
		Location:     "Moorgate",
		Neighborhood: "The City",
		Description:  "Virtual clay shooting using simulated targets in an indoor bar environment",
		City:         "London",
		Image:        "Clays.webp",
	},
	"Clays Bar (Soho)": {
		BaseName:     "Clays",
		Location:     "Soho",
		Neighborhood: "West End",
		Description:  "Virtual clay shooting using simulated targets in an indoor bar environment",
		City:         "London",
		Image:        "Clays.webp",
	},
	"F1 Arcade": {
		BaseName:     "F1 Arcade",
		Location:     "St Paul's",
		Neighborhood: "The City",
		Description:  "F1-themed racing simulators with elevated food and drink",
		City:         "London",
		Image:        "F1 Arcade.webp",
	},
	"Fair Game (Canary Wharf)": {
		BaseName:     "Fairgame",
		Location:     "Canary Wharf",
		Neighborhood: "Canary Wharf",
		Description:  "Competitive fairground games in an adult social setting",
		City:         "London",
		Image:        "Fairgame.webp",
	},
	"Fair Game (City)": {
		BaseName:     "Fairgame",
		Location:     "St Paul's",
		Neighborhood: "The City",
		Description:  "Competitive fairground games in an adult social setting",
		City:         "London",
		Image:        "Fairgame.webp",
	},
	"Bounce": {
		BaseName:     "Bounce",
		Location:     "Farringdon",
		Neighborhood: "The City",
		Description:  "Table-tennis-led social venue with food, drink, and group play",
		City:         "London",
		Image:        "Bounce.webp",
	},
	"All Star Lanes (Holborn)": {
		BaseName:     "All Star Lanes",
		Location:     "Holborn",
		Neighborhood: "West End",
		Description:  "Boutique bowling concept combined with karaoke, dining, and bar space",
		City:         "London",
		Image:        "AllStarLanes.webp",
	},
	"All Star Lanes (Shoreditch)": {
		BaseName:     "All Star Lanes",
		Location:     "Shoreditch",
		Neighborhood: "The City",
		Description:  "Boutique bowling concept combined with karaoke, dining, and bar space",
		City:         "London",
	},
	"All Star Lanes (White City)": {
		BaseName:     "All Star Lanes",
		Location:     "White City",
		Neighborhood: "",
		Description:  "Boutique bowling concept combined with karaoke, dining, and bar space",
		City:         "London",
		Image:        "AllStarLanes.webp",
	},
	"All Star Lanes (Stratford)": {
		BaseName:     "All Star Lanes",
		Location:     "Stratford",
		Neighborhood: "",
		Description:  "Boutique bowling concept combined with karaoke, dining, and bar space",
		City:         "London",
		Image:        "AllStarLanes.webp",
	},
	"Hijingo": {
		BaseName:     "Hijingo",
		Location:     "Shoreditch",
		Neighborhood: "The City",
		Description:  "Technology-driven bingo experience adapted for nightlife and group entertainment",
		City:         "London",
		Image:        "hijingo.webp",
	},
}

// images holds card images for venue names that have no catalog entry
var images = map[string]string{
	"Easybowl (NYC)":              "Frames.webp",
	"Clays Bar (Birmingham)":      "Clays.webp",
	"All Star Lanes (Brick Lane)": "AllStarLanes.webp",
}
