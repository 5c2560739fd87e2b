package repository

import "github.com/blizon/ops-dashboard/internal/domain"

// ContractRepository stores contracts with their owned milestones, newest first
type ContractRepository = Collection[domain.ContractID, domain.Contract]

func NewContractRepository(seed []domain.Contract) *ContractRepository {
	return newCollection(domain.KindContract, seed,
		func(c domain.Contract) domain.ContractID { return c.ID },
		func(c domain.Contract) string { return c.Title },
		domain.Contract.Clone,
	)
}
