// Package core provides the business logic behind the competition dashboard.
//
// The package holds no HTTP or rendering code. Handlers in internal/web, the
// arenactl CLI, and tests all drive the same [Service].
//
// # Architecture
//
//   - Store: the data layer interface, satisfied by the PostgreSQL and
//     in-memory stores of internal/store.
//   - Service: paginated competition listings, competition details, athlete
//     statistics, and the cached athlete rating.
//   - RankingRefresher: a cron job that reloads the rating cache.
//   - ExportLimiter: bounds concurrent report rendering.
//
// # Pagination
//
// Listings are paginated with internal/pagination. Requested pages outside
// [1, last page] are clamped, so a stale link never renders an empty grid:
//
//	page, err := svc.ListCompetitions(ctx, domain.RequestFilter{}, 3)
//	// page.Pager.Page() is at most page.Pager.LastPage()
//
// # Statistics
//
// [Service.AthleteStatistics] loads the profile, rating card, chart data,
// achievements and history concurrently with errgroup. The first failing
// section cancels the rest and fails the load.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - COMP001, ATH001: record not found
//   - VAL001-VAL002: malformed identifiers and parameters
//   - EXP001-EXP002: export capacity and failures
//   - DB004-DB006: database connectivity
//   - RATE001: request throttling
package core
