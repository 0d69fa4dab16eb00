// Package telemetry defines the host sample model shared by the sync
// controller, the terminal views, and the demo server.
//
// Samples arrive as JSON with every nested section optional. Missing sections
// decode to nil pointers and the accessor methods substitute zero values, so
// callers never need nil checks of their own:
//
//	s.CPUUsage()    // 0 when cpu is absent
//	s.DiskUsage()   // mean of partition usage, 0 with no partitions
//	s.Interfaces()  // empty slice when network is absent
//
// Host liveness is derived from the age of the latest sample; see IsOnline.
package telemetry
