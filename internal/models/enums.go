package models

import "fmt"

type UserRole string

type ContractStatus string

type NegotiationType string

type NegotiationStatus string

type ImageRequestStatus string

const (
	UserRoleFarmer UserRole = "farmer"
	UserRoleTrader UserRole = "trader"
)

const (
	ContractStatusOpen        ContractStatus = "open"
	ContractStatusNegotiating ContractStatus = "negotiating"
	ContractStatusFulfilled   ContractStatus = "fulfilled"
	ContractStatusCancelled   ContractStatus = "cancelled"
)

const (
	NegotiationTypeInterest NegotiationType = "interest"
)

const (
	NegotiationStatusPending  NegotiationStatus = "pending"
	NegotiationStatusAccepted NegotiationStatus = "accepted"
)

const (
	ImageRequestStatusPending   ImageRequestStatus = "pending"
	ImageRequestStatusFulfilled ImageRequestStatus = "fulfilled"
)

// ParseUserRole maps a stored role string to a UserRole. Unknown values
// are rejected rather than passed through.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleFarmer, UserRoleTrader:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("unknown user role %q", s)
}

// ParseContractStatus maps a stored status string to a ContractStatus.
// Unknown values are rejected rather than passed through.
func ParseContractStatus(s string) (ContractStatus, error) {
	switch ContractStatus(s) {
	case ContractStatusOpen, ContractStatusNegotiating, ContractStatusFulfilled, ContractStatusCancelled:
		return ContractStatus(s), nil
	}
	return "", fmt.Errorf("unknown contract status %q", s)
}

// IsTerminal reports whether no further transition is defined out of s.
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusFulfilled || s == ContractStatusCancelled
}

// CanTransitionTo reports whether the edge s -> next is part of the
// contract lifecycle: open -> negotiating, open -> cancelled,
// negotiating -> fulfilled, negotiating -> cancelled.
func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	switch s {
	case ContractStatusOpen:
		return next == ContractStatusNegotiating || next == ContractStatusCancelled
	case ContractStatusNegotiating:
		return next == ContractStatusFulfilled || next == ContractStatusCancelled
	}
	return false
}
