// Package collector reads local host metrics with gopsutil and reports them
// to a hwmon server.
//
// Collector maps gopsutil stats into a telemetry.Sample. The Source interface
// sits between the two so the mapping can be exercised without a real
// machine. Agent wraps a Collector with an interval loop that POSTs each
// sample to /api/hardware.
package collector
