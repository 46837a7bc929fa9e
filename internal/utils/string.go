package utils

import "fmt"

// FormatWithCommas formats an integer with comma separators.
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	str := fmt.Sprintf("%d", n)
	result := ""
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(char)
	}
	return result
}

// UnescapeControls turns the printable escape sequences accepted on the
// command line into real control characters for the typing simulator.
func UnescapeControls(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 't':
				out = append(out, '\t')
				i++
				continue
			case 'b':
				out = append(out, '\b')
				i++
				continue
			case 'n':
				out = append(out, '\n')
				i++
				continue
			case '0':
				out = append(out, 0)
				i++
				continue
			case '\\':
				out = append(out, '\\')
				i++
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
