package integration_test

import "time"

const (
	dbName         = "cinema_seating"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	// Layout seeded by testdata/layout_up.sql
	TestShowingID      = 1
	TestVipShowingID   = 2
	TestShowingTitle   = "Test Movie"
	TestRoomName       = "Test Room"
	TestCustomerID     = "customer-1"
	TestOtherCustomer  = "customer-2"
	TestHoldTTL        = 10 * time.Minute
	testdataLayoutUp   = "testdata/layout_up.sql"
	testdataLayoutDown = "testdata/layout_down.sql"
)

var TestClockStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
