// Package timezone resolves the hotel timezone from APP_TIMEZONE once at import.
//
// Timestamps (audit metadata, token expiry) use Now. Stay boundaries are calendar
// dates: Today, Tomorrow and ParseDate return midnight UTC values so they compare
// equal to DATE columns regardless of the hotel zone.
package timezone
