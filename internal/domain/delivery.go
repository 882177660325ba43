package domain

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Prefix every invoice reference must carry.
const InvoicePrefix = "FE00"

var ErrAlreadyDelivered = errors.New("delivery already completed")

// Completion records the moment and place a delivery was handed over.
// Its presence on a Delivery is what "delivered" means: timestamp and
// location can never be set independently of each other.
type Completion struct {
	DeliveredAt time.Time   `json:"deliveredAt"`
	Location    Coordinates `json:"location"`
}

// TimeLabel renders the completion time the way drivers report it (3:04 PM).
func (c Completion) TimeLabel() string {
	return c.DeliveredAt.Format("3:04 PM")
}

// Delivery is a single client drop-off task assigned to a truck.
//
// A nil Completion means the delivery is pending. Once completed the record
// is immutable; there is no undo path back to pending.
type Delivery struct {
	ID           string
	ClientID     string
	ClientName   string
	Address      string
	IsPackaged   bool
	Observations string
	InvoiceRef   string
	Meters       float64
	Completion   *Completion
}

func (d *Delivery) Delivered() bool { return d.Completion != nil }

// MarkDelivered transitions a pending delivery to delivered, committing
// time and location together.
func (d *Delivery) MarkDelivered(at time.Time, loc Coordinates) error {
	if d.Completion != nil {
		return ErrAlreadyDelivered
	}
	d.Completion = &Completion{DeliveredAt: at, Location: loc}
	return nil
}

// deliveryJSON is the persisted wire shape. The delivered flag, timestamp
// and location are flattened so stored lists stay readable as plain records.
type deliveryJSON struct {
	ID           string       `json:"id"`
	ClientID     string       `json:"clientId"`
	ClientName   string       `json:"clientName"`
	Address      string       `json:"address"`
	IsPackaged   bool         `json:"isPackaged"`
	Observations string       `json:"observations"`
	InvoiceRef   string       `json:"invoiceRef"`
	Meters       float64      `json:"meters"`
	Delivered    bool         `json:"delivered"`
	DeliveredAt  *time.Time   `json:"deliveredAt"`
	Location     *Coordinates `json:"location"`
}

func (d Delivery) MarshalJSON() ([]byte, error) {
	out := deliveryJSON{
		ID:           d.ID,
		ClientID:     d.ClientID,
		ClientName:   d.ClientName,
		Address:      d.Address,
		IsPackaged:   d.IsPackaged,
		Observations: d.Observations,
		InvoiceRef:   d.InvoiceRef,
		Meters:       d.Meters,
	}
	if d.Completion != nil {
		out.Delivered = true
		at := d.Completion.DeliveredAt
		loc := d.Completion.Location
		out.DeliveredAt = &at
		out.Location = &loc
	}
	return json.Marshal(out)
}

func (d *Delivery) UnmarshalJSON(data []byte) error {
	var in deliveryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	d.ID = in.ID
	d.ClientID = in.ClientID
	d.ClientName = in.ClientName
	d.Address = in.Address
	d.IsPackaged = in.IsPackaged
	d.Observations = in.Observations
	d.InvoiceRef = in.InvoiceRef
	d.Meters = in.Meters

	// A record claiming delivered without both timestamp and location is
	// treated as pending; the three fields only ever move together.
	d.Completion = nil
	if in.Delivered && in.DeliveredAt != nil && in.Location != nil {
		d.Completion = &Completion{DeliveredAt: *in.DeliveredAt, Location: *in.Location}
	}
	return nil
}

// PendingFirst returns the list partitioned pending-then-delivered,
// preserving relative order within each partition. The result is a new
// slice; the input is not modified.
func PendingFirst(deliveries []Delivery) []Delivery {
	out := make([]Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if !d.Delivered() {
			out = append(out, d)
		}
	}
	for _, d := range deliveries {
		if d.Delivered() {
			out = append(out, d)
		}
	}
	return out
}

// NormalizeInvoiceRef prepends the invoice prefix to non-empty input that
// does not already start with it. A prefix buried elsewhere in the string
// is left alone.
func NormalizeInvoiceRef(ref string) string {
	if ref == "" {
		return ref
	}
	if !strings.HasPrefix(ref, InvoicePrefix) {
		return InvoicePrefix + ref
	}
	return ref
}

// ParseMeters parses free-form meters input: digits and a single decimal
// point are kept, fractional digits beyond two are truncated, and anything
// unparseable yields 0.
func ParseMeters(raw string) float64 {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(raw, ",", "") {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	parts := strings.SplitN(b.String(), ".", 3)
	s := parts[0]
	if len(parts) > 1 {
		frac := parts[1]
		if len(frac) > 2 {
			frac = frac[:2]
		}
		s = parts[0] + "." + frac
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FormatMeters renders a meters value with exactly two decimals and
// thousands grouping (1,234.50), regardless of stored precision.
func FormatMeters(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	frac := s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
