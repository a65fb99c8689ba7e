package usecase

// AccessPolicy classifies a caller as privileged (unlimited usage, no credit
// deduction) or standard (subject to ledger rules). Privileged callers are a
// fixed set supplied at startup from configuration.
type AccessPolicy struct {
	privileged map[int64]struct{}
}

func NewAccessPolicy(ids []int64) *AccessPolicy {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &AccessPolicy{privileged: m}
}

func (p *AccessPolicy) IsPrivileged(tgID int64) bool {
	_, ok := p.privileged[tgID]
	return ok
}
