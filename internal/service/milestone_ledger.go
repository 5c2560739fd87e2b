package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/idgen"
	"github.com/blizon/ops-dashboard/internal/mapper"
	"github.com/blizon/ops-dashboard/internal/metrics"
)

const (
	msgMilestoneFields   = "Please fill in all milestone fields"
	msgMilestoneRequired = "Please add at least one milestone to the contract"
	msgTotalValueDerived = "Total value is derived from milestones"
)

// MilestoneLedger binds a draft's milestone list to its total value.
// After the first add or remove, TotalValue equals the sum of the milestone
// amounts and is only ever moved by the amount of the milestone touched.
type MilestoneLedger struct {
	ids     idgen.Generator
	metrics *metrics.Metrics
}

func NewMilestoneLedger(ids idgen.Generator, m *metrics.Metrics) *MilestoneLedger {
	return &MilestoneLedger{ids: ids, metrics: m}
}

// SetFields applies header edits to a draft. A TotalValue edit is accepted
// only until the ledger has touched the draft.
func (l *MilestoneLedger) SetFields(d *domain.ContractDraft, req *domain.ContractFieldsRequest) error {
	if req.TotalValue != nil && d.LedgerTouched && !req.TotalValue.Equal(d.TotalValue) {
		return domain.NewValidationError(msgTotalValueDerived, map[string]string{
			"totalValue": "Cannot be edited once milestones have been added or removed",
		})
	}
	if req.TotalValue != nil && req.TotalValue.IsNegative() {
		return domain.NewValidationError("invalid contract", map[string]string{
			"totalValue": "Must not be negative",
		})
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.ClientID != nil {
		d.ClientID = *req.ClientID
	}
	if req.ProjectID != nil {
		d.ProjectID = *req.ProjectID
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.StartDate != nil {
		d.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		d.EndDate = *req.EndDate
	}
	if req.TotalValue != nil {
		d.TotalValue = *req.TotalValue
	}
	if req.Documents != nil {
		d.Documents = append([]string(nil), req.Documents...)
	}
	return nil
}

// AddMilestone validates in, appends it with a fresh id and raises the
// total by its amount. A zero amount counts as missing.
func (l *MilestoneLedger) AddMilestone(d *domain.ContractDraft, in domain.MilestoneInput) (domain.ContractMilestone, error) {
	m := domain.ContractMilestone{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Amount:      in.Amount,
		Attachments: append([]string(nil), in.Attachments...),
	}
	err := l.appendMilestone(d, m)
	l.metrics.RecordLedger("add", err)
	if err != nil {
		return domain.ContractMilestone{}, err
	}
	return d.Milestones[len(d.Milestones)-1].Clone(), nil
}

// RemoveMilestone drops the milestone at index and lowers the total by its
// amount. The remaining milestones keep their relative order.
func (l *MilestoneLedger) RemoveMilestone(d *domain.ContractDraft, index int) (domain.ContractMilestone, error) {
	if index < 0 || index >= len(d.Milestones) {
		err := &domain.IndexOutOfRangeError{Index: index, Len: len(d.Milestones)}
		l.metrics.RecordLedger("remove", err)
		return domain.ContractMilestone{}, err
	}

	l.touch(d)
	removed := d.Milestones[index]
	d.Milestones = append(d.Milestones[:index:index], d.Milestones[index+1:]...)
	d.TotalValue = d.TotalValue.Sub(removed.Amount)
	l.metrics.RecordLedger("remove", nil)
	return removed, nil
}

// Finalize turns a draft into a contract record. A creation draft needs at
// least one milestone and gets a new contract id; an edit draft keeps the id
// of the contract it was opened from and may have no milestones left.
// The stored total is always the milestone sum.
func (l *MilestoneLedger) Finalize(d *domain.ContractDraft) (domain.Contract, error) {
	if d.Mode != domain.DraftModeEdit && len(d.Milestones) == 0 {
		err := domain.NewValidationError(msgMilestoneRequired, map[string]string{
			"milestones": "At least one milestone is required",
		})
		l.metrics.RecordLedger("finalize", err)
		return domain.Contract{}, err
	}

	fields := make(map[string]string)
	if strings.TrimSpace(d.Title) == "" {
		fields["title"] = domain.GetValidationMessage("required")
	}
	if strings.TrimSpace(d.Description) == "" {
		fields["description"] = domain.GetValidationMessage("required")
	}
	if d.StartDate.IsZero() {
		fields["startDate"] = domain.GetValidationMessage("required")
	}
	if d.EndDate.IsZero() {
		fields["endDate"] = domain.GetValidationMessage("required")
	}
	if len(fields) > 0 {
		err := domain.NewValidationError("invalid contract", fields)
		l.metrics.RecordLedger("finalize", err)
		return domain.Contract{}, err
	}

	id := d.ContractID
	if d.Mode != domain.DraftModeEdit || id == "" {
		id = domain.ContractID(l.ids.Generate("contract"))
	}
	d.TotalValue = domain.SumMilestones(d.Milestones)
	d.LedgerTouched = true
	l.metrics.RecordLedger("finalize", nil)
	return mapper.ContractFromDraft(id, d), nil
}

// appendMilestone keeps m.ID and m.IsCompleted when set, which lets a full
// contract record be replayed through the ledger.
func (l *MilestoneLedger) appendMilestone(d *domain.ContractDraft, m domain.ContractMilestone) error {
	if err := validateMilestone(m); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = domain.MilestoneID(l.ids.Generate("milestone"))
	}

	l.touch(d)
	d.Milestones = append(d.Milestones, m)
	d.TotalValue = d.TotalValue.Add(m.Amount)
	return nil
}

// touch reconciles a manually entered total with the milestones already on
// the draft the first time the ledger mutates it.
func (l *MilestoneLedger) touch(d *domain.ContractDraft) {
	if d.LedgerTouched {
		return
	}
	d.TotalValue = domain.SumMilestones(d.Milestones)
	d.LedgerTouched = true
}

func validateMilestone(m domain.ContractMilestone) error {
	fields := make(map[string]string)
	if m.Title == "" {
		fields["title"] = domain.GetValidationMessage("required")
	}
	if m.Description == "" {
		fields["description"] = domain.GetValidationMessage("required")
	}
	if m.DueDate.IsZero() {
		fields["dueDate"] = domain.GetValidationMessage("required")
	}
	switch {
	case m.Amount.IsZero():
		fields["amount"] = domain.GetValidationMessage("required")
	case m.Amount.LessThan(decimal.Zero):
		fields["amount"] = "Must not be negative"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(msgMilestoneFields, fields)
	}
	return nil
}
