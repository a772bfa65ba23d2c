package domain

import "time"

const (
	RequestStatusOpen      = "OPEN"
	RequestStatusCompleted = "COMPLETED"
)

// Address is a plain postal address, owned by the record embedding it.
type Address struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	StateCode string `json:"stateCode"`
	ZipCode   string `json:"zipCode"`
}

// Request is a shoe cleaning/repair job posted by a collector.
type Request struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	JobDescription       string    `json:"jobDescription"`
	Budget               int       `json:"budget"`
	ShoeSize             float64   `json:"shoeSize"`
	Brand                string    `json:"brand"`
	ShoeName             string    `json:"shoeName"`
	ReleaseYear          int       `json:"releaseYear"`
	PreviouslyWorkedWith string    `json:"previouslyWorkedWith"`
	Service              string    `json:"service"`
	Subtypes             []string  `json:"subtypes"`
	Address              Address   `json:"ownerAddress"`
	Pictures             []string  `json:"pictures"`
	RecommendedPrice     int       `json:"recommendedPrice,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
}
