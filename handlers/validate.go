package handlers

import "regexp"

// Input format checks for the booking forms. Format failures are validation
// errors surfaced straight to the client.
var (
	phonePattern         = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	bankAccountPattern   = regexp.MustCompile(`^[0-9]{6,20}$`)
	accountHolderPattern = regexp.MustCompile(`^[\p{L} .'-]{2,80}$`)
)

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func validBankAccount(number string) bool {
	return bankAccountPattern.MatchString(number)
}

func validAccountHolder(name string) bool {
	return accountHolderPattern.MatchString(name)
}
