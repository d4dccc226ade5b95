package enclavechat

import "strings"

// recoveryGroupSize is the number of digits per display group.
const recoveryGroupSize = 4

// FormatRecoveryCode groups a recovery code's digits by four with dashes
// for display: "12345678901234567890" becomes "1234-5678-9012-3456-7890".
// A trailing group shorter than four digits is kept as-is.
func FormatRecoveryCode(code string) string {
	if code == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(code) + len(code)/recoveryGroupSize)
	for i := 0; i < len(code); i += recoveryGroupSize {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + recoveryGroupSize
		if end > len(code) {
			end = len(code)
		}
		b.WriteString(code[i:end])
	}
	return b.String()
}

// ParseRecoveryCode strips display formatting from a recovery code. It is
// the exact inverse of FormatRecoveryCode and also accepts codes typed with
// spaces or no separators at all.
func ParseRecoveryCode(code string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, code)
}
