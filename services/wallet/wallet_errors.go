package wallet

import "fmt"

var (
	ErrNoSession       = fmt.Errorf("no valid session")
	ErrRefreshInFlight = fmt.Errorf("balance refresh already in flight")
)
