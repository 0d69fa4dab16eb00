package telemetry

import "time"

// Sample is one telemetry snapshot for a host. Nested sections are optional on
// the wire; use the accessor methods rather than dereferencing them directly.
type Sample struct {
	Hostname  string       `json:"hostname"`
	Timestamp time.Time    `json:"timestamp"`
	CPU       *CPUInfo     `json:"cpu,omitempty"`
	Memory    *MemoryInfo  `json:"memory,omitempty"`
	Disk      *DiskInfo    `json:"disk,omitempty"`
	Network   *NetworkInfo `json:"network,omitempty"`
	OS        *OSInfo      `json:"os,omitempty"`
}

// CPUInfo contains CPU usage information.
type CPUInfo struct {
	ModelName   string  `json:"model_name"`
	Cores       int     `json:"cores"`
	Usage       float64 `json:"usage"`
	Temperature float64 `json:"temperature,omitempty"`
	Frequency   float64 `json:"frequency,omitempty"`
}

// MemoryInfo contains memory usage information. Byte fields are raw counts.
type MemoryInfo struct {
	Total     uint64  `json:"total"`
	Used      uint64  `json:"used"`
	Free      uint64  `json:"free"`
	Usage     float64 `json:"usage"`
	SwapTotal uint64  `json:"swap_total"`
	SwapUsed  uint64  `json:"swap_used"`
	SwapFree  uint64  `json:"swap_free"`
}

// DiskInfo lists mounted partitions.
type DiskInfo struct {
	Partitions []PartitionUsage `json:"partitions"`
}

// PartitionUsage describes space on a single mount point.
type PartitionUsage struct {
	Device     string  `json:"device"`
	MountPoint string  `json:"mount_point"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Free       uint64  `json:"free"`
	Usage      float64 `json:"usage"`
}

// NetworkInfo lists network interfaces.
type NetworkInfo struct {
	Interfaces []InterfaceStats `json:"interfaces"`
}

// InterfaceStats contains cumulative I/O counters for a single interface.
type InterfaceStats struct {
	Name        string   `json:"name"`
	Addresses   []string `json:"addresses"`
	BytesSent   uint64   `json:"bytes_sent"`
	BytesRecv   uint64   `json:"bytes_recv"`
	PacketsSent uint64   `json:"packets_sent"`
	PacketsRecv uint64   `json:"packets_recv"`
}

// OSInfo contains general system information.
type OSInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Architecture string `json:"architecture"`
	Platform     string `json:"platform"`
}

// CPUUsage returns the CPU usage percent, or 0 when the section is absent.
func (s Sample) CPUUsage() float64 {
	if s.CPU == nil {
		return 0
	}
	return s.CPU.Usage
}

// MemoryUsage returns the memory usage percent, or 0 when the section is absent.
func (s Sample) MemoryUsage() float64 {
	if s.Memory == nil {
		return 0
	}
	return s.Memory.Usage
}

// DiskUsage returns the mean usage percent across partitions, or 0 with none.
func (s Sample) DiskUsage() float64 {
	parts := s.Partitions()
	if len(parts) == 0 {
		return 0
	}
	var total float64
	for _, p := range parts {
		total += p.Usage
	}
	return total / float64(len(parts))
}

// Partitions returns the disk partitions, never nil.
func (s Sample) Partitions() []PartitionUsage {
	if s.Disk == nil || s.Disk.Partitions == nil {
		return []PartitionUsage{}
	}
	return s.Disk.Partitions
}

// Interfaces returns the network interfaces, never nil.
func (s Sample) Interfaces() []InterfaceStats {
	if s.Network == nil || s.Network.Interfaces == nil {
		return []InterfaceStats{}
	}
	return s.Network.Interfaces
}

// OSName returns a display name like "ubuntu 22.04", or "" when unknown.
func (s Sample) OSName() string {
	if s.OS == nil {
		return ""
	}
	switch {
	case s.OS.Platform != "" && s.OS.Version != "":
		return s.OS.Platform + " " + s.OS.Version
	case s.OS.Platform != "":
		return s.OS.Platform
	default:
		return s.OS.Name
	}
}
