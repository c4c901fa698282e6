package ledger

import "fmt"

// Type is the direction of a coin movement.
type Type uint8

const (
	// Debit records coins leaving a user's balance.
	Debit Type = iota
	// Credit records coins entering a user's balance.
	Credit
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Debit:
		return "debit"
	case Credit:
		return "credit"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == Debit || t == Credit
}

// Reason classifies why a coin movement happened.
type Reason uint8

const (
	// ReasonEaterReward is an eater's redemption-intent debit.
	ReasonEaterReward Reason = iota
	// ReasonPointsExpenditure is a generic points spend.
	ReasonPointsExpenditure
	// ReasonEaterReview rewards an eater for reviewing a purchase.
	ReasonEaterReview
	// ReasonEaterQRScan rewards an eater for scanning a vendor QR code.
	ReasonEaterQRScan
	// ReasonVendorRedeemed credits a vendor for a completed redemption.
	ReasonVendorRedeemed
	// ReasonAdminPoints is a manual balance correction by staff.
	ReasonAdminPoints
	// ReasonDietaryPreference rewards an eater for saving dietary preferences.
	ReasonDietaryPreference
)

// String implements fmt.Stringer.
func (r Reason) String() string {
	switch r {
	case ReasonEaterReward:
		return "eater reward"
	case ReasonPointsExpenditure:
		return "points expenditure"
	case ReasonEaterReview:
		return "eater review"
	case ReasonEaterQRScan:
		return "eater qr scan"
	case ReasonVendorRedeemed:
		return "vendor redeemed"
	case ReasonAdminPoints:
		return "admin adjustment"
	case ReasonDietaryPreference:
		return "dietary preference"
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// Valid reports whether r is a known transaction reason.
func (r Reason) Valid() bool {
	return r <= ReasonDietaryPreference
}

// Status is the lifecycle state of a ledger entry.
//
// Pending is used only for eater-initiated redemption debits awaiting
// vendor completion. The only transitions are Pending→Success (vendor
// completes the redemption) and Pending→Failed (manual admin void);
// every other entry is created directly in Success.
type Status uint8

const (
	// Pending awaits vendor completion of a redemption.
	Pending Status = iota
	// Success is the terminal state of an applied ledger entry.
	Success
	// Failed is the terminal state of a voided pending redemption.
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Valid reports whether s is a known transaction status.
func (s Status) Valid() bool {
	return s <= Failed
}
