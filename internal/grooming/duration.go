package grooming

// Approximate weights (lbs) per size bucket, used to feed the classifier when
// only a booking-form size is known.
var dogWeightForSize = map[SizeBucket]float64{
	SizeSmall:  15,
	SizeMedium: 35,
	SizeLarge:  65,
	SizeGiant:  100,
}

var catWeightForSize = map[SizeBucket]float64{
	SizeSmall:  6,
	SizeMedium: 10,
	SizeLarge:  15,
}

// EstimateDuration estimates the grooming-appointment duration for a pet.
//
// An unrecognized size bucket does not fail the estimate: booking pages must
// always be able to size a slot, so the estimator falls back to the MODERATE
// tier's duration with a reason noting the fallback.
func EstimateDuration(pet PetProfile) DurationEstimate {
	weight, ok := weightForSize(pet.Species, pet.Size)
	if !ok {
		return DurationEstimate{
			Minutes:    IntensityModerate.Minutes(),
			Intensity:  IntensityModerate,
			Confidence: ConfidenceLow,
			Reasons:    []string{"unrecognized size; using the standard appointment length"},
		}
	}

	classification := Classify(pet.Breed, weight, pet.Species)

	return DurationEstimate{
		Minutes:    classification.Intensity.Minutes(),
		Intensity:  classification.Intensity,
		Confidence: classification.Confidence,
		Reasons:    classification.Reasons,
	}
}

// DefaultDuration returns the moderate-tier appointment length in minutes,
// for callers with no pet data at all.
func DefaultDuration() int {
	return IntensityModerate.Minutes()
}

func weightForSize(species Species, size SizeBucket) (float64, bool) {
	if species == SpeciesCat {
		weight, ok := catWeightForSize[size]
		return weight, ok
	}
	weight, ok := dogWeightForSize[size]
	return weight, ok
}
