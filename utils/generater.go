package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

func GenerateResetCode() string {
	// Generate a 6-digit reset code
	var number [4]byte
	rand.Read(number[:])
	n := int(number[0])<<16 | int(number[1])<<8 | int(number[2])
	return fmt.Sprintf("%06d", n%1000000)
}

// GenerateInvoiceNumber returns a unique invoice number.
func GenerateInvoiceNumber() string {
	return "INV-" + uuid.NewString()
}
