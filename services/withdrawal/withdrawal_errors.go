package withdrawal

import "fmt"

var (
	ErrBelowMinimum         = fmt.Errorf("below minimum withdrawal")
	ErrBankRequired         = fmt.Errorf("select a bank")
	ErrAccountNumberInvalid = fmt.Errorf("account number must be exactly 10 digits")
	ErrAccountNameRequired  = fmt.Errorf("account name is required")
	ErrPINInvalid           = fmt.Errorf("transaction PIN must be exactly 4 digits")
	ErrFormIncomplete       = fmt.Errorf("please fill all required fields correctly")
	ErrSubmissionInFlight   = fmt.Errorf("withdrawal submission already in flight")
	ErrResolveFailed        = fmt.Errorf("could not resolve account name, enter manually")
	ErrOTPIncomplete        = fmt.Errorf("enter the 6-digit OTP sent to your email")
	ErrMissingReference     = fmt.Errorf("missing withdrawal reference")
	ErrNoOTPSession         = fmt.Errorf("no withdrawal awaiting confirmation")
)
