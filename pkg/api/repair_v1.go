// pkg/api/repair_v1.go
package api

// RepairRequestV1 is the body of POST /api/repair.
type RepairRequestV1 struct {
	Sequence string `json:"sequence"`
}

// RepairV1 is the stable JSON schema for one repaired sequence, shared by
// the REST service and the CLI json output.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RepairV1 struct {
	Repaired  string `json:"repaired"`
	Success   bool   `json:"success"`
	InputLen  int    `json:"inputLen"`
	OutputLen int    `json:"outputLen"`
	Changes   int    `json:"changes"`
	ID        string `json:"id,omitempty"`
	Damaged   *bool  `json:"damaged,omitempty"`
}
