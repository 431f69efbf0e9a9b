package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("farmer")
	require.NoError(t, err)
	assert.Equal(t, UserRoleFarmer, role)

	role, err = ParseUserRole("trader")
	require.NoError(t, err)
	assert.Equal(t, UserRoleTrader, role)

	_, err = ParseUserRole("admin")
	assert.Error(t, err)

	_, err = ParseUserRole("")
	assert.Error(t, err)
}

func TestParseContractStatus(t *testing.T) {
	for _, s := range []string{"open", "negotiating", "fulfilled", "cancelled"} {
		parsed, err := ParseContractStatus(s)
		require.NoError(t, err)
		assert.Equal(t, ContractStatus(s), parsed)
	}

	_, err := ParseContractStatus("closed")
	assert.Error(t, err)

	_, err = ParseContractStatus("OPEN")
	assert.Error(t, err, "status parsing is case sensitive")
}

func TestContractStatusTransitions(t *testing.T) {
	all := []ContractStatus{
		ContractStatusOpen,
		ContractStatusNegotiating,
		ContractStatusFulfilled,
		ContractStatusCancelled,
	}

	allowed := map[ContractStatus]map[ContractStatus]bool{
		ContractStatusOpen: {
			ContractStatusNegotiating: true,
			ContractStatusCancelled:   true,
		},
		ContractStatusNegotiating: {
			ContractStatusFulfilled: true,
			ContractStatusCancelled: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestContractStatusIsTerminal(t *testing.T) {
	assert.False(t, ContractStatusOpen.IsTerminal())
	assert.False(t, ContractStatusNegotiating.IsTerminal())
	assert.True(t, ContractStatusFulfilled.IsTerminal())
	assert.True(t, ContractStatusCancelled.IsTerminal())
}
