package withdrawal

import (
	"context"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/utils"
	"github.com/shopspring/decimal"
)

// ConfirmClient is the slice of the API client the OTP step needs.
type ConfirmClient interface {
	ConfirmWithdrawal(ctx context.Context, reference, otp string) error
}

// OTPSession is the time-boxed confirmation step handed out after a
// withdrawal initiation. It stays open across failed attempts; the countdown
// reaching zero is policy ("start a fresh withdrawal"), not a hard block.
type OTPSession struct {
	Reference string
	ExpiresAt time.Time
	Fee       decimal.Decimal

	client ConfirmClient
}

// Remaining is the time left before the code expires, clamped at zero.
func (s *OTPSession) Remaining(now time.Time) time.Duration {
	remaining := s.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *OTPSession) Expired(now time.Time) bool {
	return s.Remaining(now) == 0
}

// CountdownDisplay renders the remaining window as m:ss.
func (s *OTPSession) CountdownDisplay(now time.Time) string {
	return utils.FormatMinutesSeconds(s.Remaining(now))
}

// NormalizeCode strips everything but digits so pasted codes with spacing
// still validate.
func NormalizeCode(code string) string {
	return utils.DigitsOnly(code)
}

// Confirm submits the code. A failure keeps the session open for another
// attempt; the caller surfaces the server message inline.
func (s *OTPSession) Confirm(ctx context.Context, code string) error {
	code = NormalizeCode(code)
	if len(code) != utils.OTPLength {
		return ErrOTPIncomplete
	}
	if s.Reference == "" {
		return ErrMissingReference
	}

	return s.client.ConfirmWithdrawal(ctx, s.Reference, code)
}
