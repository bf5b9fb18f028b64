// Package influxdb ships recorded control states to an InfluxDB v2 bucket.
//
// It is an optional sink (influxdb.enabled in config.yaml). Points carry
// the control UUID, readable type, and room as tags; numeric states are
// written as floats so dashboards can graph them directly.
//
// Writes are batched and asynchronous. Failures surface through the
// SetOnError callback and never stall the monitor's sampling loop.
package influxdb
