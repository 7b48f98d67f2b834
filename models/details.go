package models

// Genre is a resolved genre entry from the provider's fixed enumeration.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
}

type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path,omitempty"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type WatchProviderItem struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path,omitempty"`
}

// WatchProvidersByType groups offerings for one country by monetization model.
type WatchProvidersByType struct {
	Link     string              `json:"link"`
	Flatrate []WatchProviderItem `json:"flatrate,omitempty"`
	Rent     []WatchProviderItem `json:"rent,omitempty"`
	Buy      []WatchProviderItem `json:"buy,omitempty"`
	Ads      []WatchProviderItem `json:"ads,omitempty"`
	Free     []WatchProviderItem `json:"free,omitempty"`
}

type WatchProviders struct {
	Results map[string]WatchProvidersByType `json:"results"`
}

// MovieDetails extends the list-view record with the fields only the detail
// resource carries, runtime included.
type MovieDetails struct {
	CatalogItem
	Genres              []Genre             `json:"genres"`
	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	Status              string              `json:"status,omitempty"`
}

type Season struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date,omitempty"`
}

type Episode struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview,omitempty"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	StillPath     string  `json:"still_path,omitempty"`
	AirDate       string  `json:"air_date,omitempty"`
	Runtime       int     `json:"runtime"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
}

type TVDetails struct {
	CatalogItem
	Genres              []Genre             `json:"genres"`
	EpisodeRunTime      []int               `json:"episode_run_time,omitempty"`
	NumberOfSeasons     int                 `json:"number_of_seasons"`
	NumberOfEpisodes    int                 `json:"number_of_episodes"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	Status              string              `json:"status,omitempty"`
	Seasons             []Season            `json:"seasons,omitempty"`
}
