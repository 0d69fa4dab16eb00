package telemetry

import (
	"encoding/json"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

// Push frame types.
const (
	MessageHardwareInfo = "hardware_info"
	MessageHostList     = "host_list"
)

// Envelope is one frame on the push channel.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
	// Time is informational and kept raw: servers send unix seconds or an
	// RFC 3339 string, and neither should cost the frame.
	Time json.RawMessage `json:"time,omitempty"`
}

// IsSnapshot reports whether the frame carries a fleet snapshot.
// Both known frame types are treated as a full replacement.
func (e Envelope) IsSnapshot() bool {
	return e.Type == MessageHardwareInfo || e.Type == MessageHostList
}

// HostHistory is the payload of GET /api/hosts/{hostname}.
type HostHistory struct {
	Hostname     string   `json:"hostname"`
	HardwareInfo []Sample `json:"hardware_info"`
}

// DecodeEnvelope parses a raw push frame.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, errors.WrapWithCode(err, errors.ErrDecode,
			"Malformed push frame", "")
	}
	return env, nil
}

// DecodeSnapshot parses a hostname-keyed fleet snapshot.
//
// Entries may be a bare Sample or a HostHistory; for the latter the newest
// sample is used and hosts with empty history are dropped. Null entries are
// dropped. A sample missing its hostname takes it from the map key.
func DecodeSnapshot(raw []byte) (map[string]Sample, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDecode,
			"Malformed host snapshot", "")
	}

	snapshot := make(map[string]Sample, len(entries))
	for hostname, entry := range entries {
		sample, ok, err := decodeEntry(entry)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrDecode,
				"Malformed sample for host "+hostname, "")
		}
		if !ok {
			continue
		}
		if sample.Hostname == "" {
			sample.Hostname = hostname
		}
		snapshot[hostname] = sample
	}
	return snapshot, nil
}

func decodeEntry(entry json.RawMessage) (Sample, bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return Sample{}, false, err
	}
	if fields == nil {
		return Sample{}, false, nil
	}

	if _, isHistory := fields["hardware_info"]; isHistory {
		var h HostHistory
		if err := json.Unmarshal(entry, &h); err != nil {
			return Sample{}, false, err
		}
		if len(h.HardwareInfo) == 0 {
			return Sample{}, false, nil
		}
		latest := h.HardwareInfo[len(h.HardwareInfo)-1]
		if latest.Hostname == "" {
			latest.Hostname = h.Hostname
		}
		return latest, true, nil
	}

	var s Sample
	if err := json.Unmarshal(entry, &s); err != nil {
		return Sample{}, false, err
	}
	return s, true, nil
}

// DecodeHistory parses the body of GET /api/hosts/{hostname}.
func DecodeHistory(raw []byte) (HostHistory, error) {
	var h HostHistory
	if err := json.Unmarshal(raw, &h); err != nil {
		return HostHistory{}, errors.WrapWithCode(err, errors.ErrDecode,
			"Malformed host history", "")
	}
	if h.HardwareInfo == nil {
		h.HardwareInfo = []Sample{}
	}
	return h, nil
}
