package expense

// Samples returns the records used to seed an empty store on first run.
func Samples() []Expense {
	return []Expense{
		Restore("1", "2026-01-05", Food, 42.50, "Grocery run – Whole Foods"),
		Restore("2", "2026-01-08", Transport, 28.00, "Uber to airport"),
		Restore("3", "2026-01-12", Housing, 1450.00, "January rent"),
		Restore("4", "2026-01-15", Entertainment, 15.99, "Netflix subscription"),
		Restore("5", "2026-01-18", Health, 85.00, "Gym membership"),
		Restore("6", "2026-01-22", Food, 63.75, "Dinner with colleagues"),
		Restore("7", "2026-01-25", Transport, 4.50, "Bus pass top-up"),
		Restore("8", "2026-02-02", Food, 11.20, "Coffee & pastry"),
		Restore("9", "2026-02-05", Other, 34.99, "Phone case replacement"),
		Restore("10", "2026-02-10", Health, 22.00, "Prescription top-up"),
		Restore("11", "2026-02-14", Entertainment, 48.00, "Valentine dinner (drinks)"),
		Restore("12", "2026-02-18", Transport, 55.00, "Monthly train pass"),
	}
}
