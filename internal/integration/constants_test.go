package integration_test

const (
	// Accounts
	TestAdminEmail    = "admin@example.com"
	TestAdminPassword = "Admin123!@#"
	TestAdminSecret   = "box-office-secret"
	TestUserName      = "Freddie Mercury"
	TestUserEmail     = "freddie@example.com"
	TestUserPassword  = "Test123!@#"

	// Catalog
	TestMovieTitle    = "Interstellar"
	TestMovieShowDate = "2025-06-20"
	TestMovieShowTime = "20:00"
	TestScreenName    = "Audi 1"

	// The default layout is rows A-G with 12 seats each.
	DefaultSeatCount = 84
)
