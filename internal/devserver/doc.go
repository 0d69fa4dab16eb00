// Package devserver is a small in-memory telemetry backend for running hwmon
// end to end without external infrastructure.
//
// Agents POST samples to /api/hardware. Every accepted sample is stored in a
// bounded per-host buffer and pushed to websocket clients as a hardware_info
// frame carrying the latest sample of each host. New websocket clients first
// receive a host_list frame with the full retained history.
//
// Routes:
//
//	POST /api/hardware          ingest one sample
//	GET  /api/latest            {hostname: sample}
//	GET  /api/hosts             {hostname: {hostname, hardware_info}}
//	GET  /api/hosts/:hostname   ?limit=N, newest N samples oldest first
//	GET  /ws                    push channel
//
// The /api group is rate limited per client IP.
package devserver
