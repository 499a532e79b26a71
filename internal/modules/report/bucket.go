package report

import "strings"

// FlavorBucket is the canonical flavor classification derived from a
// product's free-text variant label. Buckets form a small closed set per
// category; they are derived on read and never persisted.
type FlavorBucket string

const (
	BucketUnclassified FlavorBucket = "unclassified"

	// Donut family.
	BucketChocolate        FlavorBucket = "chocolate"
	BucketSprinkled        FlavorBucket = "sprinkled"
	BucketGlazed           FlavorBucket = "glazed"
	BucketChocolateCoconut FlavorBucket = "chocolate_coconut"
	BucketSprinkledGlazed  FlavorBucket = "sprinkled_glazed"
	BucketGlazedCoconut    FlavorBucket = "glazed_coconut"

	// Filled family.
	BucketPineapple  FlavorBucket = "pineapple"
	BucketStrawberry FlavorBucket = "strawberry"
	BucketCream      FlavorBucket = "cream"
)

// Canonical category names. Line items carry whatever the catalog manager
// typed; CanonicalCategory folds that to one of these.
const (
	CategoryDonut      = "donut"
	CategoryMiniDonut  = "mini donut"
	CategoryFilled     = "filled"
	CategoryMiniFilled = "mini filled"
)

// classifierRule matches a variant label when every term group matches; a
// term group matches when any of its alternative substrings is present.
// Alternatives cover both the English and Spanish spellings catalog managers
// actually type.
type classifierRule struct {
	Bucket FlavorBucket
	Terms  [][]string
}

var (
	termChocolate = []string{"choc"}
	termCoconut   = []string{"coco"}
	termSprinkled = []string{"sprink", "gragea", "grajea"}
	termGlazed    = []string{"glaz", "glasea"}
)

// donutRules is an ordered priority list: compound rules come strictly before
// the simple rules they are a superset of. A label matching "choc" and "coco"
// must land in the compound bucket, never in plain chocolate. Order matters;
// do not sort or regroup.
var donutRules = []classifierRule{
	{BucketChocolateCoconut, [][]string{termChocolate, termCoconut}},
	{BucketSprinkledGlazed, [][]string{termSprinkled, termGlazed}},
	{BucketGlazedCoconut, [][]string{termGlazed, termCoconut}},
	{BucketChocolate, [][]string{termChocolate}},
	{BucketSprinkled, [][]string{termSprinkled}},
	{BucketGlazed, [][]string{termGlazed}},
}

var filledRules = []classifierRule{
	{BucketPineapple, [][]string{{"pineapple", "piña", "pina"}}},
	{BucketStrawberry, [][]string{{"strawberry", "fresa"}}},
	{BucketCream, [][]string{{"cream", "crema"}}},
}

// rulesByCategory maps a canonical category to its ordered rule list. Both
// sizes of a family share one flavor set.
var rulesByCategory = map[string][]classifierRule{
	CategoryDonut:      donutRules,
	CategoryMiniDonut:  donutRules,
	CategoryFilled:     filledRules,
	CategoryMiniFilled: filledRules,
}

// CanonicalCategory folds a free-text category name to its canonical form.
func CanonicalCategory(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), " ")
}

// Classify maps a (category, variant label) pair to its flavor bucket. It is
// pure and never fails: unknown categories and unmatched labels fall into
// BucketUnclassified, which still counts toward category and route totals but
// is excluded from per-flavor breakdowns.
func Classify(category, variantLabel string) FlavorBucket {
	rules, ok := rulesByCategory[CanonicalCategory(category)]
	if !ok {
		return BucketUnclassified
	}
	label := strings.ToLower(variantLabel)
	for _, rule := range rules {
		if ruleMatches(rule, label) {
			return rule.Bucket
		}
	}
	return BucketUnclassified
}

// CategoryBuckets returns the closed bucket set for a category, in rule
// priority order. Unknown categories have no buckets.
func CategoryBuckets(category string) []FlavorBucket {
	rules := rulesByCategory[CanonicalCategory(category)]
	buckets := make([]FlavorBucket, 0, len(rules))
	for _, rule := range rules {
		buckets = append(buckets, rule.Bucket)
	}
	return buckets
}

func ruleMatches(rule classifierRule, label string) bool {
	for _, group := range rule.Terms {
		if !groupMatches(group, label) {
			return false
		}
	}
	return true
}

func groupMatches(alternatives []string, label string) bool {
	for _, alt := range alternatives {
		if strings.Contains(label, alt) {
			return true
		}
	}
	return false
}
