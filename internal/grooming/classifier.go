package grooming

// Dog weight thresholds (lbs) for deriving the size bucket used by the
// classifier's size adjustment.
const (
	dogSmallMaxLbs  = 25
	dogMediumMaxLbs = 50
	dogLargeMaxLbs  = 80
)

// Classify assigns a grooming intensity tier from breed text, weight, and
// species. It is a pure function: identical inputs always produce identical
// output.
//
// Breed tables are checked in priority order (INTENSIVE, then DEMANDING, then
// LIGHT); no match leaves the MODERATE baseline. The size adjustment applies
// to dogs only and moves the tier at most one step on the ordinal scale.
func Classify(breed string, weightLbs float64, species Species) Classification {
	intensity := IntensityModerate
	reasons := make([]string, 0, 2)
	breedMatched := false

	if rule, ok := matchBreed(intensiveBreeds, breed); ok {
		intensity = IntensityIntensive
		reasons = append(reasons, rule.reason)
		breedMatched = true
	} else if rule, ok := matchBreed(demandingBreeds, breed); ok {
		intensity = IntensityDemanding
		reasons = append(reasons, rule.reason)
		breedMatched = true
	} else if rule, ok := matchBreed(lightBreeds, breed); ok {
		intensity = IntensityLight
		reasons = append(reasons, rule.reason)
		breedMatched = true
	} else {
		reasons = append(reasons, "no breed match; using the moderate baseline")
	}

	sizeAdjusted := false
	if species == SpeciesDog {
		intensity, sizeAdjusted = adjustForDogSize(intensity, weightLbs, &reasons)
	}

	return Classification{
		Intensity:  intensity,
		Confidence: classifyConfidence(breedMatched, sizeAdjusted),
		Reasons:    reasons,
	}
}

// adjustForDogSize applies the single-step dog-size adjustment:
// giant moves the tier up one step (capped at INTENSIVE), large lifts a
// LIGHT base to MODERATE, small drops a MODERATE base to LIGHT.
func adjustForDogSize(intensity Intensity, weightLbs float64, reasons *[]string) (Intensity, bool) {
	switch sizeFromDogWeight(weightLbs) {
	case SizeGiant:
		if intensity < IntensityIntensive {
			*reasons = append(*reasons, "giant size adds handling and drying time")
			return intensity + 1, true
		}
	case SizeLarge:
		if intensity == IntensityLight {
			*reasons = append(*reasons, "large size lifts an otherwise easy coat")
			return IntensityModerate, true
		}
	case SizeSmall:
		if intensity == IntensityModerate {
			*reasons = append(*reasons, "small size shortens an average groom")
			return IntensityLight, true
		}
	}
	return intensity, false
}

// sizeFromDogWeight maps a dog's weight in pounds to a size bucket.
func sizeFromDogWeight(weightLbs float64) SizeBucket {
	switch {
	case weightLbs <= 0:
		return SizeMedium
	case weightLbs < dogSmallMaxLbs:
		return SizeSmall
	case weightLbs < dogMediumMaxLbs:
		return SizeMedium
	case weightLbs < dogLargeMaxLbs:
		return SizeLarge
	default:
		return SizeGiant
	}
}

// classifyConfidence reflects how much signal backed the result: a breed-text
// match is high, a size-adjusted baseline is medium, a bare baseline is low.
func classifyConfidence(breedMatched, sizeAdjusted bool) Confidence {
	switch {
	case breedMatched:
		return ConfidenceHigh
	case sizeAdjusted:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
