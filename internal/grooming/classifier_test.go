package grooming

import (
	"reflect"
	"testing"
)

func TestClassifyBreedTables(t *testing.T) {
	cases := []struct {
		name    string
		breed   string
		weight  float64
		species Species
		want    Intensity
	}{
		{"newfoundland is intensive", "Newfoundland", 130, SpeciesDog, IntensityIntensive},
		{"saint bernard abbreviated", "St. Bernard", 140, SpeciesDog, IntensityIntensive},
		{"goldendoodle is demanding", "Goldendoodle", 45, SpeciesDog, IntensityDemanding},
		{"cockapoo matches the poo suffix", "Cockapoo", 18, SpeciesDog, IntensityDemanding},
		{"poodle is demanding", "Standard Poodle", 45, SpeciesDog, IntensityDemanding},
		{"persian cat is demanding", "Persian", 8, SpeciesCat, IntensityDemanding},
		{"beagle is light", "Beagle", 22, SpeciesDog, IntensityLight},
		{"case insensitive", "BEAGLE", 22, SpeciesDog, IntensityLight},
		{"unknown breed stays moderate", "Mixed Breed", 35, SpeciesDog, IntensityModerate},
		{"domestic shorthair cat is light", "Domestic Shorthair", 10, SpeciesCat, IntensityLight},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.breed, tc.weight, tc.species)
			if got.Intensity != tc.want {
				t.Errorf("Classify(%q, %v, %q).Intensity = %v, want %v",
					tc.breed, tc.weight, tc.species, got.Intensity, tc.want)
			}
			if len(got.Reasons) == 0 {
				t.Errorf("Classify(%q) returned no reasons", tc.breed)
			}
		})
	}
}

func TestClassifySizeAdjustmentDogOnly(t *testing.T) {
	cases := []struct {
		name    string
		breed   string
		weight  float64
		species Species
		want    Intensity
	}{
		{"giant pushes demanding to intensive", "Standard Poodle", 95, SpeciesDog, IntensityIntensive},
		{"giant cannot exceed intensive", "Newfoundland", 150, SpeciesDog, IntensityIntensive},
		{"large lifts light to moderate", "Greyhound", 70, SpeciesDog, IntensityModerate},
		{"large does not lift demanding", "Goldendoodle", 65, SpeciesDog, IntensityDemanding},
		{"small pulls moderate to light", "Mixed Breed", 12, SpeciesDog, IntensityLight},
		{"small does not pull demanding", "Maltese", 8, SpeciesDog, IntensityDemanding},
		{"cats get no size adjustment", "Mixed Breed", 6, SpeciesCat, IntensityModerate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.breed, tc.weight, tc.species)
			if got.Intensity != tc.want {
				t.Errorf("Classify(%q, %v, %q).Intensity = %v, want %v",
					tc.breed, tc.weight, tc.species, got.Intensity, tc.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := []struct {
		breed   string
		weight  float64
		species Species
	}{
		{"Goldendoodle", 65, SpeciesDog},
		{"Unknown Mutt", 40, SpeciesDog},
		{"Persian", 8, SpeciesCat},
	}

	for _, in := range inputs {
		first := Classify(in.breed, in.weight, in.species)
		for i := 0; i < 10; i++ {
			again := Classify(in.breed, in.weight, in.species)
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("Classify(%q) not deterministic: %+v vs %+v", in.breed, first, again)
			}
		}
	}
}

func TestClassifySizeMonotonicForDogs(t *testing.T) {
	weights := []float64{
		dogWeightForSize[SizeSmall],
		dogWeightForSize[SizeMedium],
		dogWeightForSize[SizeLarge],
		dogWeightForSize[SizeGiant],
	}

	breeds := []string{"Poodle", "Beagle", "Mixed Breed", "Newfoundland", "Greyhound"}

	for _, breed := range breeds {
		previous := IntensityLight
		for i, weight := range weights {
			got := Classify(breed, weight, SpeciesDog).Intensity
			if i > 0 && got < previous {
				t.Errorf("Classify(%q) intensity decreased from %v to %v as size grew", breed, previous, got)
			}
			previous = got
		}
	}
}

func TestClassifyConfidence(t *testing.T) {
	if got := Classify("Goldendoodle", 65, SpeciesDog).Confidence; got != ConfidenceHigh {
		t.Errorf("breed match confidence = %v, want high", got)
	}
	if got := Classify("Mixed Breed", 95, SpeciesDog).Confidence; got != ConfidenceMedium {
		t.Errorf("size-adjusted baseline confidence = %v, want medium", got)
	}
	if got := Classify("Mixed Breed", 35, SpeciesDog).Confidence; got != ConfidenceLow {
		t.Errorf("bare baseline confidence = %v, want low", got)
	}
}
