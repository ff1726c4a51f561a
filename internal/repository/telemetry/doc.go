// Package telemetry persists battery samples for later analysis.
//
// CSVSink appends one row per sample to a CSV file, SQLiteSink inserts one row
// per sample into a SQLite database, and MultiSink fans a sample out to several
// sinks. The monitor depends only on the Sink interface.
package telemetry
