package usecase

import "testing"

func TestAccessPolicy_IsPrivileged(t *testing.T) {
	policy := NewAccessPolicy([]int64{7, 42})

	if !policy.IsPrivileged(7) || !policy.IsPrivileged(42) {
		t.Error("configured ids must be privileged")
	}
	if policy.IsPrivileged(8) {
		t.Error("unknown id must not be privileged")
	}
}

func TestAccessPolicy_EmptySet(t *testing.T) {
	policy := NewAccessPolicy(nil)
	if policy.IsPrivileged(7) {
		t.Error("empty policy must privilege nobody")
	}
}
