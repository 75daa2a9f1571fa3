package oob

import "sort"

// EncodeMSSP builds an MSSP telnet subnegotiation from key-value pairs.
// Format: IAC SB 70 VAR "key" VAL "value" ... IAC SE. Keys are emitted in
// sorted order so the frame is deterministic.
func EncodeMSSP(data map[string]string) []byte {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := []byte{IAC, SB, TeloptMSSP}
	for _, k := range keys {
		buf = append(buf, MSSPVar)
		buf = append(buf, []byte(k)...)
		buf = append(buf, MSSPVal)
		buf = append(buf, []byte(data[k])...)
	}
	buf = append(buf, IAC, SE)
	return buf
}
