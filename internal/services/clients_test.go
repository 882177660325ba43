package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestImportCSV(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	ctx := context.Background()

	csvText := "\"Acme, S.A.\",123 Main St\nBeta Corp,456 Oak Ave\n"

	n, err := svc.ImportCSV(ctx, strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported = %d, want 2", n)
	}

	got := svc.List(ctx)
	if len(got) != 2 {
		t.Fatalf("clients = %+v", got)
	}
	if got[0].SocialReason != "Acme, S.A." || got[0].Address != "123 Main St" {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].SocialReason != "Beta Corp" || got[1].Address != "456 Oak Ave" {
		t.Fatalf("second = %+v", got[1])
	}
	if got[0].ID == got[1].ID {
		t.Fatal("imported clients must get distinct ids")
	}
}

func TestImportCSVJoinsExtraAddressFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	ctx := context.Background()

	n, err := svc.ImportCSV(ctx, strings.NewReader("Gamma,Av. Juarez 10,Col. Centro,CDMX\nonly-one-field\n"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported = %d, want 1 (short row skipped)", n)
	}

	got := svc.List(ctx)
	if got[0].Address != "Av. Juarez 10, Col. Centro, CDMX" {
		t.Fatalf("address = %q", got[0].Address)
	}
}

func TestAddDeleteSearchClients(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "", "addr"); !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}

	acme, err := svc.Add(ctx, "Acme, S.A.", "123 Main St")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "Beta Corp", "456 Oak Ave"); err != nil {
		t.Fatalf("add: %v", err)
	}

	found := svc.Search(ctx, "acme")
	if len(found) != 1 || found[0].ID != acme.ID {
		t.Fatalf("search = %+v", found)
	}
	if got := svc.Search(ctx, ""); len(got) != 0 {
		t.Fatalf("empty search = %+v", got)
	}

	if err := svc.Delete(ctx, acme.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, acme.ID); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("err = %v, want ErrClientNotFound", err)
	}

	if err := svc.Clear(ctx, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v, want ErrConfirmationRequired", err)
	}
	if err := svc.Clear(ctx, true); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := svc.List(ctx); len(got) != 0 {
		t.Fatalf("clients = %+v", got)
	}
}
