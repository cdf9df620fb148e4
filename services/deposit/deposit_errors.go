package deposit

import "fmt"

var (
	ErrInvalidAmount       = fmt.Errorf("enter a valid amount e.g. 5000")
	ErrBelowInstantMinimum = fmt.Errorf("minimum instant deposit is ₦500")
	ErrSenderNameRequired  = fmt.Errorf("enter sender account name exactly as in your bank app")
	ErrSenderBankRequired  = fmt.Errorf("enter sender bank e.g. GTBank, Opay, Kuda")
	ErrSubmissionInFlight  = fmt.Errorf("deposit submission already in flight")
	ErrNoPaymentLink       = fmt.Errorf("unable to start payment, please contact support")
)
