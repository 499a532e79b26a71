package report

import (
	"sort"
	"strings"
)

// Dimension is an axis items can be grouped along.
type Dimension string

const (
	DimRoute    Dimension = "route"
	DimClient   Dimension = "client"
	DimProduct  Dimension = "product"
	DimCategory Dimension = "category"
	DimBucket   Dimension = "bucket"
)

// AggregateCell is the output unit of aggregation: summed quantity and
// monetary amount for one grouping key. Amounts sum the line totals captured
// at order time, never quantity times the current catalog price.
type AggregateCell struct {
	Key      string  `json:"key"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// keySeparator joins dimension values into a grouping key. Dimension values
// are uuids or canonical lower-case names, none of which contain "|".
const keySeparator = "|"

// Sum groups items along the requested dimensions and sums quantity and
// amount per group. The grouping key is the ordered tuple of dimension
// values joined with "|"; an empty dimension list pools everything into a
// single grand-total cell keyed "".
//
// Grouping by product or bucket excludes items whose product reference could
// not be resolved; every other grouping keeps them, so raw route, client and
// category totals always account for every line.
func Sum(items []IndexedItem, dims ...Dimension) map[string]AggregateCell {
	classified := dimsNeedResolution(dims)
	out := make(map[string]AggregateCell)
	for _, item := range items {
		if classified && !item.Resolved {
			continue
		}
		key := groupKey(item, dims)
		cell := out[key]
		cell.Key = key
		cell.Quantity += item.Quantity
		cell.Amount += item.Amount
		out[key] = cell
	}
	return out
}

// GrandTotal sums all items into one cell.
func GrandTotal(items []IndexedItem) AggregateCell {
	return Sum(items)[""]
}

// SortedKeys returns the cell keys in lexicographic order so repeated runs
// and rendered reports come out byte-identical.
func SortedKeys(cells map[string]AggregateCell) []string {
	keys := make([]string, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dimsNeedResolution(dims []Dimension) bool {
	for _, d := range dims {
		if d == DimProduct || d == DimBucket {
			return true
		}
	}
	return false
}

func groupKey(item IndexedItem, dims []Dimension) string {
	if len(dims) == 0 {
		return ""
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		switch d {
		case DimRoute:
			parts[i] = item.RouteID.String()
		case DimClient:
			parts[i] = item.ClientID.String()
		case DimProduct:
			parts[i] = item.ProductID.String()
		case DimCategory:
			parts[i] = item.Category
		case DimBucket:
			parts[i] = string(item.Bucket)
		}
	}
	return strings.Join(parts, keySeparator)
}
