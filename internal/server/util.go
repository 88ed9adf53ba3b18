package server

import "strconv"

// parseTaskID akzeptiert nur Dezimalzahlen, wie sie der Store vergibt.
func parseTaskID(raw string) (int64, bool) {
	if raw == "" || raw[0] == '+' || raw[0] == '-' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
