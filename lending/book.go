package lending

// Book is a catalog entry. AvailableCopies is decremented by a borrow and
// incremented by a return and always stays within [0, TotalCopies].
type Book struct {
	ID              BookIDInt64 `json:"id"`
	Title           string      `json:"title"`
	Author          string      `json:"author"`
	ISBN            ISBNString  `json:"isbn"`
	TotalCopies     int         `json:"total_copies"`
	AvailableCopies int         `json:"available_copies"`
}

// IsAvailable reports whether at least one copy can currently be borrowed.
func (b Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
