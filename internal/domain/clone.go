package domain

// Clone helpers give the store and its callers independent copies, so a
// snapshot handed out can never alias store-owned slices.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (c Client) Clone() Client { return c }

func (p Project) Clone() Project {
	if p.TeamMemberIDs != nil {
		ids := make([]TeamMemberID, len(p.TeamMemberIDs))
		copy(ids, p.TeamMemberIDs)
		p.TeamMemberIDs = ids
	}
	p.Documents = cloneStrings(p.Documents)
	return p
}

func (m TeamMember) Clone() TeamMember { return m }

func (i Intern) Clone() Intern { return i }

func (m ContractMilestone) Clone() ContractMilestone {
	m.Attachments = cloneStrings(m.Attachments)
	return m
}

func cloneMilestones(in []ContractMilestone) []ContractMilestone {
	if in == nil {
		return nil
	}
	out := make([]ContractMilestone, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

func (c Contract) Clone() Contract {
	c.Milestones = cloneMilestones(c.Milestones)
	c.Documents = cloneStrings(c.Documents)
	return c
}

func (d ContractDraft) Clone() ContractDraft {
	d.Milestones = cloneMilestones(d.Milestones)
	d.Documents = cloneStrings(d.Documents)
	return d
}
