package transaction

// DisplayRow is a render-ready history line: signed formatted amount, status
// label and relative time. The underlying record stays server-owned.
type DisplayRow struct {
	Title     string
	Amount    string
	Status    string
	Reference string
	When      string
}
