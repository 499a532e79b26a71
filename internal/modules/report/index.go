package report

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hornoazul/panaderia-backend/internal/modules/catalog"
	"github.com/hornoazul/panaderia-backend/internal/modules/order"
	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

// Snapshot is an immutable point-in-time copy of orders and catalogs handed
// to the engine for one computation pass. The engine never fetches data
// itself and never mutates a snapshot.
type Snapshot struct {
	Version  string
	Orders   []*order.Order
	Products []*catalog.Product
	Routes   []*route.Route
	Clients  []*route.Client
}

// IndexedItem is one order line flattened with its resolved back-references
// and flavor classification. RouteID is uuid.Nil for route-less orders.
// Resolved is false when the line's product reference is missing from the
// snapshot catalog: such items stay in raw totals (so revenue is never
// silently lost) but are excluded from per-product and per-flavor views.
type IndexedItem struct {
	OrderID   uuid.UUID
	ClientID  uuid.UUID
	RouteID   uuid.UUID
	ProductID uuid.UUID
	Category  string
	Bucket    FlavorBucket
	Quantity  int
	Amount    float64
	Resolved  bool
}

// BuildIndex normalizes a snapshot into a flat, classified item list.
// Classification uses the denormalized category and variant label captured at
// order time, so historical orders classify identically even after catalog
// edits.
func BuildIndex(snap *Snapshot, logger zerolog.Logger) []IndexedItem {
	known := make(map[uuid.UUID]bool, len(snap.Products))
	for _, p := range snap.Products {
		known[p.ID] = true
	}

	var items []IndexedItem
	for _, o := range snap.Orders {
		routeID := uuid.Nil
		if o.RouteID != nil {
			routeID = *o.RouteID
		}
		for _, line := range o.Items {
			resolved := known[line.ProductID]
			if !resolved {
				logger.Warn().
					Str("order_id", o.ID.String()).
					Str("product_id", line.ProductID.String()).
					Str("product_name", line.ProductName).
					Msg("order line references unknown product; kept in raw totals only")
			}
			items = append(items, IndexedItem{
				OrderID:   o.ID,
				ClientID:  o.ClientID,
				RouteID:   routeID,
				ProductID: line.ProductID,
				Category:  CanonicalCategory(line.Category),
				Bucket:    Classify(line.Category, line.VariantLabel),
				Quantity:  line.Quantity,
				Amount:    line.LineTotal,
				Resolved:  resolved,
			})
		}
	}
	return items
}
