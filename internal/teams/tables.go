package teams

// Team is a single franchise entry in the registry. ID is the canonical
// identifier every alias resolves to, in the form "{sport}-{abbrev}".
type Team struct {
	ID       string
	Sport    string // "nfl", "nba", "nhl", "mlb"
	City     string
	Nickname string
	Abbrev   string   // lowercase slug abbreviation, e.g. "gb"
	Aliases  []string // extra free-text aliases beyond city and nickname
}

// builtinTeams is the default franchise table. Config can extend it with
// additional leagues or override individual entries by ID.
var builtinTeams = []Team{
	// NFL
	{ID: "nfl-ari", Sport: "nfl", City: "Arizona", Nickname: "Cardinals", Abbrev: "ari"},
	{ID: "nfl-atl", Sport: "nfl", City: "Atlanta", Nickname: "Falcons", Abbrev: "atl"},
	{ID: "nfl-bal", Sport: "nfl", City: "Baltimore", Nickname: "Ravens", Abbrev: "bal"},
	{ID: "nfl-buf", Sport: "nfl", City: "Buffalo", Nickname: "Bills", Abbrev: "buf"},
	{ID: "nfl-car", Sport: "nfl", City: "Carolina", Nickname: "Panthers", Abbrev: "car"},
	{ID: "nfl-chi", Sport: "nfl", City: "Chicago", Nickname: "Bears", Abbrev: "chi"},
	{ID: "nfl-cin", Sport: "nfl", City: "Cincinnati", Nickname: "Bengals", Abbrev: "cin"},
	{ID: "nfl-cle", Sport: "nfl", City: "Cleveland", Nickname: "Browns", Abbrev: "cle"},
	{ID: "nfl-dal", Sport: "nfl", City: "Dallas", Nickname: "Cowboys", Abbrev: "dal"},
	{ID: "nfl-den", Sport: "nfl", City: "Denver", Nickname: "Broncos", Abbrev: "den"},
	{ID: "nfl-det", Sport: "nfl", City: "Detroit", Nickname: "Lions", Abbrev: "det"},
	{ID: "nfl-gb", Sport: "nfl", City: "Green Bay", Nickname: "Packers", Abbrev: "gb"},
	{ID: "nfl-hou", Sport: "nfl", City: "Houston", Nickname: "Texans", Abbrev: "hou"},
	{ID: "nfl-ind", Sport: "nfl", City: "Indianapolis", Nickname: "Colts", Abbrev: "ind"},
	{ID: "nfl-jax", Sport: "nfl", City: "Jacksonville", Nickname: "Jaguars", Abbrev: "jax", Aliases: []string{"jags"}},
	{ID: "nfl-kc", Sport: "nfl", City: "Kansas City", Nickname: "Chiefs", Abbrev: "kc"},
	{ID: "nfl-lv", Sport: "nfl", City: "Las Vegas", Nickname: "Raiders", Abbrev: "lv"},
	{ID: "nfl-lac", Sport: "nfl", City: "Los Angeles", Nickname: "Chargers", Abbrev: "lac"},
	{ID: "nfl-lar", Sport: "nfl", City: "Los Angeles", Nickname: "Rams", Abbrev: "lar"},
	{ID: "nfl-mia", Sport: "nfl", City: "Miami", Nickname: "Dolphins", Abbrev: "mia"},
	{ID: "nfl-min", Sport: "nfl", City: "Minnesota", Nickname: "Vikings", Abbrev: "min"},
	{ID: "nfl-ne", Sport: "nfl", City: "New England", Nickname: "Patriots", Abbrev: "ne", Aliases: []string{"pats"}},
	{ID: "nfl-no", Sport: "nfl", City: "New Orleans", Nickname: "Saints", Abbrev: "no"},
	{ID: "nfl-nyg", Sport: "nfl", City: "New York", Nickname: "Giants", Abbrev: "nyg"},
	{ID: "nfl-nyj", Sport: "nfl", City: "New York", Nickname: "Jets", Abbrev: "nyj"},
	{ID: "nfl-phi", Sport: "nfl", City: "Philadelphia", Nickname: "Eagles", Abbrev: "phi"},
	{ID: "nfl-pit", Sport: "nfl", City: "Pittsburgh", Nickname: "Steelers", Abbrev: "pit"},
	{ID: "nfl-sea", Sport: "nfl", City: "Seattle", Nickname: "Seahawks", Abbrev: "sea"},
	{ID: "nfl-sf", Sport: "nfl", City: "San Francisco", Nickname: "49ers", Abbrev: "sf", Aliases: []string{"niners"}},
	{ID: "nfl-tb", Sport: "nfl", City: "Tampa Bay", Nickname: "Buccaneers", Abbrev: "tb", Aliases: []string{"bucs"}},
	{ID: "nfl-ten", Sport: "nfl", City: "Tennessee", Nickname: "Titans", Abbrev: "ten"},
	{ID: "nfl-was", Sport: "nfl", City: "Washington", Nickname: "Commanders", Abbrev: "was"},

	// NBA
	{ID: "nba-atl", Sport: "nba", City: "Atlanta", Nickname: "Hawks", Abbrev: "atl"},
	{ID: "nba-bos", Sport: "nba", City: "Boston", Nickname: "Celtics", Abbrev: "bos"},
	{ID: "nba-bkn", Sport: "nba", City: "Brooklyn", Nickname: "Nets", Abbrev: "bkn"},
	{ID: "nba-cha", Sport: "nba", City: "Charlotte", Nickname: "Hornets", Abbrev: "cha"},
	{ID: "nba-chi", Sport: "nba", City: "Chicago", Nickname: "Bulls", Abbrev: "chi"},
	{ID: "nba-cle", Sport: "nba", City: "Cleveland", Nickname: "Cavaliers", Abbrev: "cle", Aliases: []string{"cavs"}},
	{ID: "nba-dal", Sport: "nba", City: "Dallas", Nickname: "Mavericks", Abbrev: "dal", Aliases: []string{"mavs"}},
	{ID: "nba-den", Sport: "nba", City: "Denver", Nickname: "Nuggets", Abbrev: "den"},
	{ID: "nba-det", Sport: "nba", City: "Detroit", Nickname: "Pistons", Abbrev: "det"},
	{ID: "nba-gsw", Sport: "nba", City: "Golden State", Nickname: "Warriors", Abbrev: "gsw"},
	{ID: "nba-hou", Sport: "nba", City: "Houston", Nickname: "Rockets", Abbrev: "hou"},
	{ID: "nba-ind", Sport: "nba", City: "Indiana", Nickname: "Pacers", Abbrev: "ind"},
	{ID: "nba-lac", Sport: "nba", City: "Los Angeles", Nickname: "Clippers", Abbrev: "lac"},
	{ID: "nba-lal", Sport: "nba", City: "Los Angeles", Nickname: "Lakers", Abbrev: "lal"},
	{ID: "nba-mem", Sport: "nba", City: "Memphis", Nickname: "Grizzlies", Abbrev: "mem"},
	{ID: "nba-mia", Sport: "nba", City: "Miami", Nickname: "Heat", Abbrev: "mia"},
	{ID: "nba-mil", Sport: "nba", City: "Milwaukee", Nickname: "Bucks", Abbrev: "mil"},
	{ID: "nba-min", Sport: "nba", City: "Minnesota", Nickname: "Timberwolves", Abbrev: "min", Aliases: []string{"wolves"}},
	{ID: "nba-nop", Sport: "nba", City: "New Orleans", Nickname: "Pelicans", Abbrev: "nop", Aliases: []string{"pels"}},
	{ID: "nba-nyk", Sport: "nba", City: "New York", Nickname: "Knicks", Abbrev: "nyk"},
	{ID: "nba-okc", Sport: "nba", City: "Oklahoma City", Nickname: "Thunder", Abbrev: "okc"},
	{ID: "nba-orl", Sport: "nba", City: "Orlando", Nickname: "Magic", Abbrev: "orl"},
	{ID: "nba-phi", Sport: "nba", City: "Philadelphia", Nickname: "76ers", Abbrev: "phi", Aliases: []string{"sixers"}},
	{ID: "nba-phx", Sport: "nba", City: "Phoenix", Nickname: "Suns", Abbrev: "phx"},
	{ID: "nba-por", Sport: "nba", City: "Portland", Nickname: "Trail Blazers", Abbrev: "por", Aliases: []string{"blazers"}},
	{ID: "nba-sac", Sport: "nba", City: "Sacramento", Nickname: "Kings", Abbrev: "sac"},
	{ID: "nba-sas", Sport: "nba", City: "San Antonio", Nickname: "Spurs", Abbrev: "sas"},
	{ID: "nba-tor", Sport: "nba", City: "Toronto", Nickname: "Raptors", Abbrev: "tor"},
	{ID: "nba-uta", Sport: "nba", City: "Utah", Nickname: "Jazz", Abbrev: "uta"},
	{ID: "nba-was", Sport: "nba", City: "Washington", Nickname: "Wizards", Abbrev: "was"},

	// NHL
	{ID: "nhl-ana", Sport: "nhl", City: "Anaheim", Nickname: "Ducks", Abbrev: "ana"},
	{ID: "nhl-bos", Sport: "nhl", City: "Boston", Nickname: "Bruins", Abbrev: "bos"},
	{ID: "nhl-buf", Sport: "nhl", City: "Buffalo", Nickname: "Sabres", Abbrev: "buf"},
	{ID: "nhl-cgy", Sport: "nhl", City: "Calgary", Nickname: "Flames", Abbrev: "cgy"},
	{ID: "nhl-car", Sport: "nhl", City: "Carolina", Nickname: "Hurricanes", Abbrev: "car", Aliases: []string{"canes"}},
	{ID: "nhl-chi", Sport: "nhl", City: "Chicago", Nickname: "Blackhawks", Abbrev: "chi"},
	{ID: "nhl-col", Sport: "nhl", City: "Colorado", Nickname: "Avalanche", Abbrev: "col", Aliases: []string{"avs"}},
	{ID: "nhl-cbj", Sport: "nhl", City: "Columbus", Nickname: "Blue Jackets", Abbrev: "cbj"},
	{ID: "nhl-dal", Sport: "nhl", City: "Dallas", Nickname: "Stars", Abbrev: "dal"},
	{ID: "nhl-det", Sport: "nhl", City: "Detroit", Nickname: "Red Wings", Abbrev: "det"},
	{ID: "nhl-edm", Sport: "nhl", City: "Edmonton", Nickname: "Oilers", Abbrev: "edm"},
	{ID: "nhl-fla", Sport: "nhl", City: "Florida", Nickname: "Panthers", Abbrev: "fla"},
	{ID: "nhl-lak", Sport: "nhl", City: "Los Angeles", Nickname: "Kings", Abbrev: "lak"},
	{ID: "nhl-min", Sport: "nhl", City: "Minnesota", Nickname: "Wild", Abbrev: "min"},
	{ID: "nhl-mtl", Sport: "nhl", City: "Montreal", Nickname: "Canadiens", Abbrev: "mtl", Aliases: []string{"habs"}},
	{ID: "nhl-nsh", Sport: "nhl", City: "Nashville", Nickname: "Predators", Abbrev: "nsh", Aliases: []string{"preds"}},
	{ID: "nhl-njd", Sport: "nhl", City: "New Jersey", Nickname: "Devils", Abbrev: "njd"},
	{ID: "nhl-nyi", Sport: "nhl", City: "New York", Nickname: "Islanders", Abbrev: "nyi", Aliases: []string{"isles"}},
	{ID: "nhl-nyr", Sport: "nhl", City: "New York", Nickname: "Rangers", Abbrev: "nyr"},
	{ID: "nhl-ott", Sport: "nhl", City: "Ottawa", Nickname: "Senators", Abbrev: "ott", Aliases: []string{"sens"}},
	{ID: "nhl-phi", Sport: "nhl", City: "Philadelphia", Nickname: "Flyers", Abbrev: "phi"},
	{ID: "nhl-pit", Sport: "nhl", City: "Pittsburgh", Nickname: "Penguins", Abbrev: "pit", Aliases: []string{"pens"}},
	{ID: "nhl-sjs", Sport: "nhl", City: "San Jose", Nickname: "Sharks", Abbrev: "sjs"},
	{ID: "nhl-sea", Sport: "nhl", City: "Seattle", Nickname: "Kraken", Abbrev: "sea"},
	{ID: "nhl-stl", Sport: "nhl", City: "St. Louis", Nickname: "Blues", Abbrev: "stl", Aliases: []string{"st louis"}},
	{ID: "nhl-tbl", Sport: "nhl", City: "Tampa Bay", Nickname: "Lightning", Abbrev: "tbl", Aliases: []string{"bolts"}},
	{ID: "nhl-tor", Sport: "nhl", City: "Toronto", Nickname: "Maple Leafs", Abbrev: "tor", Aliases: []string{"leafs"}},
	{ID: "nhl-uta", Sport: "nhl", City: "Utah", Nickname: "Mammoth", Abbrev: "uta"},
	{ID: "nhl-van", Sport: "nhl", City: "Vancouver", Nickname: "Canucks", Abbrev: "van"},
	{ID: "nhl-vgk", Sport: "nhl", City: "Vegas", Nickname: "Golden Knights", Abbrev: "vgk", Aliases: []string{"knights"}},
	{ID: "nhl-wpg", Sport: "nhl", City: "Winnipeg", Nickname: "Jets", Abbrev: "wpg"},
	{ID: "nhl-wsh", Sport: "nhl", City: "Washington", Nickname: "Capitals", Abbrev: "wsh", Aliases: []string{"caps"}},

	// MLB
	{ID: "mlb-ari", Sport: "mlb", City: "Arizona", Nickname: "Diamondbacks", Abbrev: "ari", Aliases: []string{"dbacks", "d-backs"}},
	{ID: "mlb-atl", Sport: "mlb", City: "Atlanta", Nickname: "Braves", Abbrev: "atl"},
	{ID: "mlb-bal", Sport: "mlb", City: "Baltimore", Nickname: "Orioles", Abbrev: "bal"},
	{ID: "mlb-bos", Sport: "mlb", City: "Boston", Nickname: "Red Sox", Abbrev: "bos"},
	{ID: "mlb-chc", Sport: "mlb", City: "Chicago", Nickname: "Cubs", Abbrev: "chc"},
	{ID: "mlb-cws", Sport: "mlb", City: "Chicago", Nickname: "White Sox", Abbrev: "cws"},
	{ID: "mlb-cin", Sport: "mlb", City: "Cincinnati", Nickname: "Reds", Abbrev: "cin"},
	{ID: "mlb-cle", Sport: "mlb", City: "Cleveland", Nickname: "Guardians", Abbrev: "cle"},
	{ID: "mlb-col", Sport: "mlb", City: "Colorado", Nickname: "Rockies", Abbrev: "col"},
	{ID: "mlb-det", Sport: "mlb", City: "Detroit", Nickname: "Tigers", Abbrev: "det"},
	{ID: "mlb-hou", Sport: "mlb", City: "Houston", Nickname: "Astros", Abbrev: "hou"},
	{ID: "mlb-kc", Sport: "mlb", City: "Kansas City", Nickname: "Royals", Abbrev: "kc"},
	{ID: "mlb-laa", Sport: "mlb", City: "Los Angeles", Nickname: "Angels", Abbrev: "laa"},
	{ID: "mlb-lad", Sport: "mlb", City: "Los Angeles", Nickname: "Dodgers", Abbrev: "lad"},
	{ID: "mlb-mia", Sport: "mlb", City: "Miami", Nickname: "Marlins", Abbrev: "mia"},
	{ID: "mlb-mil", Sport: "mlb", City: "Milwaukee", Nickname: "Brewers", Abbrev: "mil"},
	{ID: "mlb-min", Sport: "mlb", City: "Minnesota", Nickname: "Twins", Abbrev: "min"},
	{ID: "mlb-nym", Sport: "mlb", City: "New York", Nickname: "Mets", Abbrev: "nym"},
	{ID: "mlb-nyy", Sport: "mlb", City: "New York", Nickname: "Yankees", Abbrev: "nyy", Aliases: []string{"yanks"}},
	{ID: "mlb-ath", Sport: "mlb", City: "Sacramento", Nickname: "Athletics", Abbrev: "ath"},
	{ID: "mlb-phi", Sport: "mlb", City: "Philadelphia", Nickname: "Phillies", Abbrev: "phi"},
	{ID: "mlb-pit", Sport: "mlb", City: "Pittsburgh", Nickname: "Pirates", Abbrev: "pit"},
	{ID: "mlb-sd", Sport: "mlb", City: "San Diego", Nickname: "Padres", Abbrev: "sd"},
	{ID: "mlb-sf", Sport: "mlb", City: "San Francisco", Nickname: "Giants", Abbrev: "sf"},
	{ID: "mlb-sea", Sport: "mlb", City: "Seattle", Nickname: "Mariners", Abbrev: "sea"},
	{ID: "mlb-stl", Sport: "mlb", City: "St. Louis", Nickname: "Cardinals", Abbrev: "stl", Aliases: []string{"st louis"}},
	{ID: "mlb-tb", Sport: "mlb", City: "Tampa Bay", Nickname: "Rays", Abbrev: "tb"},
	{ID: "mlb-tex", Sport: "mlb", City: "Texas", Nickname: "Rangers", Abbrev: "tex"},
	{ID: "mlb-tor", Sport: "mlb", City: "Toronto", Nickname: "Blue Jays", Abbrev: "tor", Aliases: []string{"jays"}},
	{ID: "mlb-wsh", Sport: "mlb", City: "Washington", Nickname: "Nationals", Abbrev: "wsh", Aliases: []string{"nats"}},
}

// sportPreference orders leagues for city disambiguation when no sport
// context is available: the city's most common franchise wins.
var sportPreference = []string{"nfl", "nba", "nhl", "mlb"}

// sportVocabulary are tokens whose presence marks a text as sports-flavored.
// Short abbreviation matches ("min", "gb") are only honored when at least one
// of these appears, so ticker-style fragments in unrelated text (weather,
// statistics) do not produce phantom teams.
var sportVocabulary = []string{
	"nfl", "nba", "nhl", "mlb", "ncaa",
	"game", "match", "winner", "win", "wins", "beat", "beats", "defeat",
	"vs", "versus",
	"spread", "moneyline", "playoff", "playoffs", "finals", "super bowl",
	"football", "basketball", "hockey", "baseball",
}
