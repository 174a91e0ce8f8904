package attendance

import "time"

// Holiday labels for the shipped 2025 table.
const (
	HolidayNewYear      = "New Year's Day"
	HolidaySpring       = "Spring Festival"
	HolidayTombSweeping = "Tomb-sweeping Day"
	HolidayLabour       = "Labour Day"
	HolidayDragonBoat   = "Dragon Boat Festival"
	HolidayNational     = "National Day"
	HolidayMidAutumn    = "Mid-autumn Festival"
)

// Year2025Holidays is the fixed public holiday table for 2025.
func Year2025Holidays() map[Date]string {
	return map[Date]string{
		NewDate(2025, time.January, 1):   HolidayNewYear,
		NewDate(2025, time.January, 28):  HolidaySpring,
		NewDate(2025, time.January, 29):  HolidaySpring,
		NewDate(2025, time.January, 30):  HolidaySpring,
		NewDate(2025, time.January, 31):  HolidaySpring,
		NewDate(2025, time.April, 4):     HolidayTombSweeping,
		NewDate(2025, time.May, 1):       HolidayLabour,
		NewDate(2025, time.May, 2):       HolidayLabour,
		NewDate(2025, time.May, 31):      HolidayDragonBoat,
		NewDate(2025, time.October, 1):   HolidayNational,
		NewDate(2025, time.October, 2):   HolidayNational,
		NewDate(2025, time.October, 3):   HolidayNational,
		NewDate(2025, time.October, 6):   HolidayMidAutumn,
	}
}

// Year2025Adjustments are the compensatory schedule shifts around the 2025
// Spring Festival block: the surrounding stretch becomes rest days, with the
// two make-up Saturdays flipped back to workdays. Order matters.
func Year2025Adjustments() []Adjustment {
	return []Adjustment{
		{From: NewDate(2025, time.January, 26), To: NewDate(2025, time.February, 4), Kind: DayRest},
		{From: NewDate(2025, time.January, 25), To: NewDate(2025, time.January, 25), Kind: DayWork},
		{From: NewDate(2025, time.February, 8), To: NewDate(2025, time.February, 8), Kind: DayWork},
	}
}

// NewYear2025Calendar builds the calendar with the shipped 2025 table.
func NewYear2025Calendar() (*Calendar, error) {
	return NewCalendar(2025, Year2025Holidays(), Year2025Adjustments())
}
