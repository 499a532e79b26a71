package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hornoazul/panaderia-backend/internal/modules/catalog"
	"github.com/hornoazul/panaderia-backend/internal/modules/order"
	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

var (
	fixtureRoute1 = &route.Route{ID: uuid.MustParse("aaaaaaa1-0000-0000-0000-000000000001"), Code: "R1", Name: "Centro", IsActive: true}
	fixtureRoute2 = &route.Route{ID: uuid.MustParse("aaaaaaa2-0000-0000-0000-000000000002"), Code: "R2", Name: "Norte", IsActive: true}

	fixtureClient1 = &route.Client{ID: uuid.MustParse("bbbbbbb1-0000-0000-0000-000000000001"), Name: "Tienda Lupita", RouteID: &fixtureRoute1.ID, IsActive: true}
	fixtureClient2 = &route.Client{ID: uuid.MustParse("bbbbbbb2-0000-0000-0000-000000000002"), Name: "Abarrotes Sol", RouteID: &fixtureRoute2.ID, IsActive: true}

	fixtureChocDonut = &catalog.Product{
		ID: uuid.MustParse("ccccccc1-0000-0000-0000-000000000001"),
		Name: "Chocolate Donut", Category: "Donut", VariantLabel: "chocolate", RegularPrice: 10, IsActive: true,
	}
	fixtureChocCocoDonut = &catalog.Product{
		ID: uuid.MustParse("ccccccc2-0000-0000-0000-000000000002"),
		Name: "Chocolate Coconut Donut", Category: "Donut", VariantLabel: "chocolate con coco", RegularPrice: 12, IsActive: true,
	}
	fixtureGlazedDonut = &catalog.Product{
		ID: uuid.MustParse("ccccccc3-0000-0000-0000-000000000003"),
		Name: "Glazed Donut", Category: "Donut", VariantLabel: "glaseada", RegularPrice: 9, IsActive: true,
	}
	fixturePineFilled = &catalog.Product{
		ID: uuid.MustParse("ccccccc4-0000-0000-0000-000000000004"),
		Name: "Pineapple Filled", Category: "Filled", VariantLabel: "relleno de piña", RegularPrice: 15, IsActive: true,
	}
	fixtureStrawFilled = &catalog.Product{
		ID: uuid.MustParse("ccccccc5-0000-0000-0000-000000000005"),
		Name: "Strawberry Filled", Category: "Filled", VariantLabel: "relleno de fresa", RegularPrice: 15, IsActive: true,
	}
)

func fixtureProducts() []*catalog.Product {
	return []*catalog.Product{fixtureChocDonut, fixtureChocCocoDonut, fixtureGlazedDonut, fixturePineFilled, fixtureStrawFilled}
}

func fixtureRoutes() []*route.Route {
	return []*route.Route{fixtureRoute1, fixtureRoute2}
}

func lineFor(p *catalog.Product, qty int) *order.OrderLineItem {
	return &order.OrderLineItem{
		ID:           uuid.New(),
		ProductID:    p.ID,
		ProductName:  p.Name,
		Category:     p.Category,
		VariantLabel: p.VariantLabel,
		Quantity:     qty,
		UnitPrice:    p.RegularPrice,
		LineTotal:    p.RegularPrice * float64(qty),
	}
}

func orderFor(rt *route.Route, client *route.Client, lines ...*order.OrderLineItem) *order.Order {
	o := &order.Order{
		ID:            uuid.New(),
		ClientID:      client.ID,
		OrderDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:        order.StatusPending,
		PaymentMethod: order.PaymentCash,
		Items:         lines,
	}
	if rt != nil {
		o.RouteID = &rt.ID
	}
	for _, l := range lines {
		l.OrderID = o.ID
		o.Total += l.LineTotal
	}
	return o
}

func fixtureSnapshot(orders ...*order.Order) *Snapshot {
	return &Snapshot{
		Version:  "test-v1",
		Orders:   orders,
		Products: fixtureProducts(),
		Routes:   fixtureRoutes(),
		Clients:  []*route.Client{fixtureClient1, fixtureClient2},
	}
}

func testSession(snap *Snapshot) *Session {
	return NewSession(snap, nil, DefaultPacking, zerolog.Nop())
}
