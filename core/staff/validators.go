package staff

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/tmugisha/amali/core"
)

// password policy
var (
	pwdMinLen     = 8
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceText   = "password must not contain whitespace"
	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimText = "password cannot be similar to account attributes"
)

// validatePassword applies the password policy:
// - minLen: 8
// - no whitespace
// - no all numeric
// - no username/email similarity
func validatePassword(pwd, uname, email string) *core.FieldError {
	fieldErr := func(text string) *core.FieldError {
		return &core.FieldError{Field: "password", Error: text}
	}

	if len(pwd) < pwdMinLen {
		return fieldErr(pwdMinLenText)
	}

	digitCount := 0
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			return fieldErr(pwdNoSpaceText)
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if digitCount == len(pwd) {
		return fieldErr(pwdNotAllNumText)
	}

	getRatio := func(attr string) float64 {
		if attr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(strings.ToLower(pwd), ""), strings.Split(attr, "")).QuickRatio()
	}
	if getRatio(uname) >= pwdMaxSim || getRatio(email) >= pwdMaxSim {
		return fieldErr(pwdAttrSimText)
	}
	return nil
}
