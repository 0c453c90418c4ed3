package domain

// Genre classifies a movie.
type Genre struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}

// Director is embedded in every movie document.
type Director struct {
	Name string `json:"name" bson:"name"`
	Bio  string `json:"bio" bson:"bio"`
}

// Movie is a catalog entry. The catalog is read-only through this API.
type Movie struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Genre       Genre    `json:"genre" bson:"genre"`
	Director    Director `json:"director" bson:"director"`
	Actors      []string `json:"actors" bson:"actors"`
	ImageURL    string   `json:"image_url" bson:"image_url"`
	Featured    bool     `json:"featured" bson:"featured"`
}
