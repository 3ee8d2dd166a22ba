package notify

import "strings"

const koreaCountryCode = "+82"

// ToE164KR turns a domestic number such as 01012345678 into +821012345678.
// Only a single leading zero is replaced; anything else passes through.
func ToE164KR(phone string) string {
	if strings.HasPrefix(phone, "0") {
		return koreaCountryCode + phone[1:]
	}
	return phone
}
