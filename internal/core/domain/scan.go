package domain

import "time"

type ScanEvent struct {
	ID        string
	Barcode   string
	ScannedAt time.Time
}

type ScanOutcome struct {
	Code string
	Hit  bool
	// Line is the resulting cart line on a hit.
	Line CartLine
	// Candidate is the pre-filled item-creation request on a miss.
	Candidate *NewItem
}
