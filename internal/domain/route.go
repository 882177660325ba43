package domain

// Route is the ordered list of deliveries assigned to one truck. The order
// is the driver's intended visiting order. Routes are projections of the
// per-truck delivery list; an absent list is an empty route.
type Route struct {
	TruckID    string     `json:"truckId"`
	Deliveries []Delivery `json:"deliveries"`
}

// RouteProgress summarizes completion state for one truck's route.
type RouteProgress struct {
	Total       int
	Delivered   int
	Pending     int
	ProgressPct float64
}

// Progress derives per-route counters from the delivery list.
func Progress(deliveries []Delivery) RouteProgress {
	p := RouteProgress{Total: len(deliveries)}
	for _, d := range deliveries {
		if d.Delivered() {
			p.Delivered++
		}
	}
	p.Pending = p.Total - p.Delivered
	if p.Total > 0 {
		p.ProgressPct = float64(p.Delivered) / float64(p.Total) * 100
	}
	return p
}
