package format

import "time"

func init() {
	register("date-time", isDateTime)
	register("date", isDate)
	register("time", isTime)
}

func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isTime(s string) bool {
	_, err := time.Parse("15:04:05Z07:00", s)
	if err == nil {
		return true
	}
	_, err = time.Parse("15:04:05.999999999Z07:00", s)
	return err == nil
}
