package grooming

// Species identifies the animal kind accepted by the classifier.
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// SizeBucket is the coarse size classification used on booking forms.
type SizeBucket string

const (
	SizeSmall  SizeBucket = "small"
	SizeMedium SizeBucket = "medium"
	SizeLarge  SizeBucket = "large"
	SizeGiant  SizeBucket = "giant"
)

// Intensity is an ordinal grooming-effort tier. Higher values mean longer,
// harder appointments.
type Intensity int

const (
	IntensityLight Intensity = iota
	IntensityModerate
	IntensityDemanding
	IntensityIntensive
)

// String returns the canonical tier name.
func (i Intensity) String() string {
	switch i {
	case IntensityLight:
		return "LIGHT"
	case IntensityModerate:
		return "MODERATE"
	case IntensityDemanding:
		return "DEMANDING"
	case IntensityIntensive:
		return "INTENSIVE"
	default:
		return "MODERATE"
	}
}

// MarshalJSON renders the tier as its canonical name.
func (i Intensity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// Minutes returns the fixed appointment duration for the tier.
func (i Intensity) Minutes() int {
	switch i {
	case IntensityLight:
		return 45
	case IntensityModerate:
		return 60
	case IntensityDemanding:
		return 90
	case IntensityIntensive:
		return 120
	default:
		return 60
	}
}

// Confidence describes how much breed-text signal backed a classification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Classification is the classifier output.
type Classification struct {
	Intensity  Intensity  `json:"intensity"`
	Confidence Confidence `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}

// PetProfile is the booking-form input for duration estimation.
type PetProfile struct {
	Species Species    `json:"species"`
	Breed   string     `json:"breed"`
	Size    SizeBucket `json:"size"`
}

// DurationEstimate is the estimator output used to size calendar slots.
type DurationEstimate struct {
	Minutes    int        `json:"minutes"`
	Intensity  Intensity  `json:"intensity"`
	Confidence Confidence `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}

// EstimateRequest is the HTTP payload for duration estimation. Size is kept
// free-form on purpose; unknown buckets fall back to the standard duration.
type EstimateRequest struct {
	Species string `json:"species" validate:"required,oneof=dog cat"`
	Breed   string `json:"breed" validate:"required,min=1"`
	Size    string `json:"size" validate:"required"`
}
