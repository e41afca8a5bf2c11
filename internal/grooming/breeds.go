package grooming

import "regexp"

// breedRule maps a breed-text pattern to a classification reason. Rules are
// evaluated in table order; the first match in the first table wins, so the
// tables must be checked INTENSIVE → DEMANDING → LIGHT.
type breedRule struct {
	pattern *regexp.Regexp
	reason  string
}

// intensiveBreeds are giant heavy-coat breeds that dominate a full slot.
var intensiveBreeds = []breedRule{
	{regexp.MustCompile(`(?i)newfoundland`), "Newfoundlands carry a dense double coat on a giant frame"},
	{regexp.MustCompile(`(?i)st\.?\s*bernard|saint\s*bernard`), "Saint Bernards need extensive dematting and drying time"},
	{regexp.MustCompile(`(?i)great\s*pyrenees`), "Great Pyrenees coats are thick, weatherproof, and slow to dry"},
	{regexp.MustCompile(`(?i)bernese`), "Bernese Mountain Dogs have long, heavy tri-color coats"},
	{regexp.MustCompile(`(?i)malamute`), "Alaskan Malamutes blow dense undercoat year-round"},
	{regexp.MustCompile(`(?i)tibetan\s*mastiff`), "Tibetan Mastiffs combine bulk with an extreme double coat"},
	{regexp.MustCompile(`(?i)leonberger`), "Leonbergers are large with a long water-resistant coat"},
	{regexp.MustCompile(`(?i)old\s*english\s*sheepdog`), "Old English Sheepdogs need full-body dematting"},
}

// demandingBreeds are doodles, double coats, and high-maintenance toy breeds.
var demandingBreeds = []breedRule{
	{regexp.MustCompile(`(?i)doodle|[a-z]poo\b|poo[- ]?mix`), "Doodle coats mat quickly and need full clips"},
	{regexp.MustCompile(`(?i)poodle`), "Poodle coats grow continuously and need regular clipping"},
	{regexp.MustCompile(`(?i)bichon`), "Bichon coats need scissoring and frequent detangling"},
	{regexp.MustCompile(`(?i)husky`), "Huskies shed a heavy double coat"},
	{regexp.MustCompile(`(?i)samoyed`), "Samoyeds carry a profuse white double coat"},
	{regexp.MustCompile(`(?i)chow`), "Chow Chows have dense coats and often need extra handling"},
	{regexp.MustCompile(`(?i)german\s*shepherd`), "German Shepherds shed heavily from a thick undercoat"},
	{regexp.MustCompile(`(?i)golden\s*retriever`), "Golden Retrievers need feathering trims and deshedding"},
	{regexp.MustCompile(`(?i)collie|sheltie|shetland`), "Collie-type coats need thorough line brushing"},
	{regexp.MustCompile(`(?i)australian\s*shepherd|aussie`), "Australian Shepherds carry a full working double coat"},
	{regexp.MustCompile(`(?i)shih\s*tzu|lhasa`), "Drop-coated toy breeds mat without frequent grooming"},
	{regexp.MustCompile(`(?i)maltese`), "Maltese coats are long, fine, and tangle-prone"},
	{regexp.MustCompile(`(?i)yorkshire|yorkie`), "Yorkie coats are silky and high-maintenance"},
	{regexp.MustCompile(`(?i)pomeranian`), "Pomeranians need careful work on a dense toy coat"},
	{regexp.MustCompile(`(?i)keeshond`), "Keeshonden have a thick standoff coat"},
	{regexp.MustCompile(`(?i)persian`), "Persian cats need full-coat dematting and eye-area care"},
	{regexp.MustCompile(`(?i)himalayan`), "Himalayan coats mat like a Persian's"},
	{regexp.MustCompile(`(?i)maine\s*coon`), "Maine Coons are large cats with heavy semi-long coats"},
	{regexp.MustCompile(`(?i)ragdoll`), "Ragdoll coats are plush and knot behind the legs"},
}

// lightBreeds are short-coat, hairless, or otherwise quick-groom breeds.
var lightBreeds = []breedRule{
	{regexp.MustCompile(`(?i)beagle`), "Beagles have short, easy-care coats"},
	{regexp.MustCompile(`(?i)boxer`), "Boxers need only a quick bath and brush"},
	{regexp.MustCompile(`(?i)bulldog`), "Bulldog coats are short; fold cleaning is the main task"},
	{regexp.MustCompile(`(?i)pug`), "Pugs have short coats with minimal trimming"},
	{regexp.MustCompile(`(?i)boston\s*terrier`), "Boston Terriers have fine single coats"},
	{regexp.MustCompile(`(?i)chihuahua`), "Smooth-coat Chihuahuas groom quickly"},
	{regexp.MustCompile(`(?i)dachshund`), "Smooth Dachshunds need little coat work"},
	{regexp.MustCompile(`(?i)whippet|greyhound`), "Sighthound coats are nearly maintenance-free"},
	{regexp.MustCompile(`(?i)doberman`), "Dobermans have sleek single coats"},
	{regexp.MustCompile(`(?i)pointer|vizsla|weimaraner`), "Short-coated sporting breeds bathe and dry fast"},
	{regexp.MustCompile(`(?i)basenji`), "Basenjis self-groom and carry a fine short coat"},
	{regexp.MustCompile(`(?i)great\s*dane`), "Great Danes have short coats despite their size"},
	{regexp.MustCompile(`(?i)sphynx`), "Hairless cats need only skin care and a wipe-down"},
	{regexp.MustCompile(`(?i)shorthair`), "Shorthair cats need minimal coat work"},
	{regexp.MustCompile(`(?i)devon\s*rex|cornish\s*rex`), "Rex coats are thin and quick to finish"},
}

// matchBreed returns the first rule in the table matching the breed text.
func matchBreed(rules []breedRule, breed string) (breedRule, bool) {
	for _, rule := range rules {
		if rule.pattern.MatchString(breed) {
			return rule, true
		}
	}
	return breedRule{}, false
}
