package repository

import "github.com/blizon/ops-dashboard/internal/domain"

// ClientRepository stores clients, newest first
type ClientRepository = Collection[domain.ClientID, domain.Client]

func NewClientRepository(seed []domain.Client) *ClientRepository {
	return newCollection(domain.KindClient, seed,
		func(c domain.Client) domain.ClientID { return c.ID },
		func(c domain.Client) string { return c.Name },
		domain.Client.Clone,
	)
}
