package domain

// DogStatusSuccess is the status value the dog API sends on success
const DogStatusSuccess = "success"

// DogImage is the random image endpoint response
type DogImage struct {
	Message string `json:"message"` // Image URL
	Status  string `json:"status"`
}
