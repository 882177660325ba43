package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/state"
)

// ClientService manages the client roster: manual CRUD, bulk import, and
// lookups for the assignment form.
type ClientService struct {
	db *state.DB
}

func NewClientService(db *state.DB) *ClientService {
	return &ClientService{db: db}
}

func (s *ClientService) List(ctx context.Context) []domain.Client {
	return s.db.Clients(ctx)
}

func (s *ClientService) Add(ctx context.Context, socialReason, address string) (domain.Client, error) {
	socialReason = strings.TrimSpace(socialReason)
	address = strings.TrimSpace(address)
	if socialReason == "" || address == "" {
		return domain.Client{}, validationErr("social reason and address are required")
	}

	client := domain.Client{ID: uuid.NewString(), SocialReason: socialReason, Address: address}
	s.db.SaveClients(ctx, append(s.db.Clients(ctx), client))
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, clientID string) error {
	clients := s.db.Clients(ctx)
	for i, c := range clients {
		if c.ID == clientID {
			s.db.SaveClients(ctx, append(clients[:i:i], clients[i+1:]...))
			return nil
		}
	}
	return ErrClientNotFound
}

// Clear wipes the whole roster.
func (s *ClientService) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	s.db.SaveClients(ctx, []domain.Client{})
	return nil
}

// Search returns clients whose social reason contains term
// (case-insensitive). An empty term matches nothing.
func (s *ClientService) Search(ctx context.Context, term string) []domain.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []domain.Client{}
	}

	out := []domain.Client{}
	for _, c := range s.db.Clients(ctx) {
		if strings.Contains(strings.ToLower(c.SocialReason), term) {
			out = append(out, c)
		}
	}
	return out
}

// ImportCSV bulk-imports clients from newline-delimited rows of
// socialReason,address. Fields may be double-quoted to embed literal
// commas; everything after the first field is joined into the address.
func (s *ClientService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows := [][]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("import clients: parse csv: %w", err)
		}
		rows = append(rows, record)
	}

	return s.ImportRows(ctx, rows)
}

// ImportRows appends one client per usable row. Rows with fewer than two
// non-empty fields are skipped, not failed: bulk imports are forgiving.
func (s *ClientService) ImportRows(ctx context.Context, rows [][]string) (int, error) {
	imported := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		fields := make([]string, 0, len(row))
		for _, f := range row {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) < 2 {
			continue
		}

		imported = append(imported, domain.Client{
			ID:           uuid.NewString(),
			SocialReason: fields[0],
			Address:      strings.Join(fields[1:], ", "),
		})
	}

	if len(imported) == 0 {
		return 0, nil
	}

	s.db.SaveClients(ctx, append(s.db.Clients(ctx), imported...))
	return len(imported), nil
}
