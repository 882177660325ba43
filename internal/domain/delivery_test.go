package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestMarkDelivered(t *testing.T) {
	d := Delivery{ID: "d1", ClientName: "Acme"}
	at := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	loc := Coordinates{Latitude: 19.43, Longitude: -99.13}

	if err := d.MarkDelivered(at, loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Delivered() {
		t.Fatal("delivery should be delivered")
	}
	if d.Completion.DeliveredAt != at || d.Completion.Location != loc {
		t.Fatalf("completion = %+v, want {%v %v}", d.Completion, at, loc)
	}

	// second transition is hard-blocked
	if err := d.MarkDelivered(at.Add(time.Hour), loc); err != ErrAlreadyDelivered {
		t.Fatalf("err = %v, want ErrAlreadyDelivered", err)
	}
	if !d.Completion.DeliveredAt.Equal(at) {
		t.Fatal("blocked transition must not touch the record")
	}
}

func TestDeliveryJSONRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)
	list := []Delivery{
		{
			ID:           "d1",
			ClientID:     "c1",
			ClientName:   "Acme, S.A.",
			Address:      "123 Main St",
			IsPackaged:   true,
			Observations: "handle with care",
			InvoiceRef:   "FE0012345",
			Meters:       120.5,
		},
		{
			ID:         "d2",
			ClientID:   "c2",
			ClientName: "Beta Corp",
			Address:    "456 Oak Ave",
			Completion: &Completion{
				DeliveredAt: at,
				Location:    Coordinates{Latitude: 19.4, Longitude: -99.1},
			},
		},
	}

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got []Delivery
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(got, list) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, list)
	}
}

func TestDeliveryJSONPartialCompletionTreatedAsPending(t *testing.T) {
	// delivered flag without location: the trio only moves together.
	raw := `{"id":"d1","delivered":true,"deliveredAt":"2026-03-02T09:05:00Z","location":null}`

	var d Delivery
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Delivered() {
		t.Fatal("record without location must come back pending")
	}
}

func TestPendingFirst(t *testing.T) {
	done := &Completion{DeliveredAt: time.Now(), Location: Coordinates{}}
	list := []Delivery{
		{ID: "a", Completion: done},
		{ID: "b"},
		{ID: "c", Completion: done},
		{ID: "d"},
		{ID: "e"},
	}

	got := PendingFirst(list)

	order := make([]string, 0, len(got))
	for _, d := range got {
		order = append(order, d.ID)
	}
	want := []string{"b", "d", "e", "a", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}

	// input untouched
	if list[0].ID != "a" || list[1].ID != "b" {
		t.Fatal("input slice was reordered")
	}
}

func TestNormalizeInvoiceRef(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"12345", "FE0012345"},
		{"FE0012345", "FE0012345"},
		{"xFE009", "FE00xFE009"},
	}
	for _, c := range cases {
		if got := NormalizeInvoiceRef(c.in); got != c.want {
			t.Errorf("NormalizeInvoiceRef(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseMeters(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"120.5", 120.5},
		{"120.559", 120.55},
		{"1,250.75", 1250.75},
		{"12.3.4", 12.3},
		{"abc", 0},
		{"", 0},
		{"19 m", 19},
	}
	for _, c := range cases {
		if got := ParseMeters(c.in); got != c.want {
			t.Errorf("ParseMeters(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatMeters(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{120.5, "120.50"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
	}
	for _, c := range cases {
		if got := FormatMeters(c.in); got != c.want {
			t.Errorf("FormatMeters(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestProgress(t *testing.T) {
	done := &Completion{DeliveredAt: time.Now(), Location: Coordinates{}}

	p := Progress([]Delivery{{ID: "a", Completion: done}, {ID: "b"}, {ID: "c"}, {ID: "d", Completion: done}})
	if p.Total != 4 || p.Delivered != 2 || p.Pending != 2 || p.ProgressPct != 50 {
		t.Fatalf("progress = %+v", p)
	}

	empty := Progress(nil)
	if empty.Total != 0 || empty.ProgressPct != 0 {
		t.Fatalf("empty progress = %+v", empty)
	}
}
