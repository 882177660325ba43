package domain

// Client is a delivery recipient. Deduplication is not enforced; two
// clients may share a social reason and address but never an ID.
type Client struct {
	ID           string `json:"id"`
	SocialReason string `json:"socialReason"`
	Address      string `json:"address"`
}
