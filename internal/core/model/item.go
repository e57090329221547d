package model

// RawCandidate is a catalog record as handed back by a retrieval backend.
// Keys and value types are not guaranteed; see normalize.Item.
type RawCandidate map[string]interface{}

// Keys used by the menu catalog.
const (
	KeyCategory    = "Category"
	KeyName        = "Name"
	KeyDescription = "Description"
	KeyPrice       = "Price"
	KeyOldPrice    = "Old_Price"
	KeyImageURL    = "Image_URL"
	KeySimilarity  = "similarity"
	KeySourceFile  = "source_file"
)

type NormalizedItem struct {
	Category    string  `json:"Category"`
	Name        string  `json:"Name"`
	Description string  `json:"Description"`
	Price       float64 `json:"Price"`
	OldPrice    float64 `json:"Old_Price"`
	ImageURL    string  `json:"Image_URL"`
	Similarity  float64 `json:"similarity"`
	SourceTag   string  `json:"source_file"`
}
