// Package normalize turns raw event and booking input into canonical values.
//
// Everything here is pure: no storage access, no clock. Services compose these
// functions before any write is attempted, so a rejected submission never
// reaches the database.
package normalize
