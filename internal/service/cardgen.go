package service

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// cardDetails holds the synthetic card attached to a new account.
type cardDetails struct {
	Number string
	CVV    string
	Expiry string // MM/YY
}

// generateCardDetails synthesizes card data for a new account: a
// 16-digit number starting with 4 or 5 whose last digit is the Luhn
// check digit, a 3-digit CVV, and an expiry three years out.
func generateCardDetails(now time.Time) cardDetails {
	prefix := "4"
	if rand.IntN(2) == 1 {
		prefix = "5"
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for i := 0; i < 14; i++ {
		sb.WriteByte(byte('0' + rand.IntN(10)))
	}
	partial := sb.String()
	number := partial + strconv.Itoa(luhnCheckDigit(partial))

	cvv := strconv.Itoa(100 + rand.IntN(900))
	expiry := now.AddDate(3, 0, 0).Format("01/06")

	return cardDetails{Number: number, CVV: cvv, Expiry: expiry}
}

// luhnCheckDigit computes the digit that makes partial pass the Luhn check.
func luhnCheckDigit(partial string) int {
	sum := 0
	double := true
	for i := len(partial) - 1; i >= 0; i-- {
		digit := int(partial[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return (10 - sum%10) % 10
}

// validateLuhn reports whether a full card number passes the Luhn check.
func validateLuhn(cardNumber string) bool {
	if len(cardNumber) < 13 || len(cardNumber) > 19 {
		return false
	}

	sum := 0
	isEven := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		digit, err := strconv.Atoi(string(cardNumber[i]))
		if err != nil {
			return false
		}
		if isEven {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		isEven = !isEven
	}
	return sum%10 == 0
}
