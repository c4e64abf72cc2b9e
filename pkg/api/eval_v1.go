// pkg/api/eval_v1.go
package api

// DamageTypeV1 is the per-label accuracy row of an evaluation report.
// Accuracy is a ratio in [0,1].
type DamageTypeV1 struct {
	DamageType string  `json:"damage_type"`
	Samples    int     `json:"samples"`
	Accuracy   float64 `json:"accuracy"`
}

// EvalReportV1 is the stable JSON schema of mitoseqfix-eval.
type EvalReportV1 struct {
	Dataset        string         `json:"dataset"`
	Samples        int            `json:"samples"`
	Overall        float64        `json:"overall_accuracy"`
	ByDamageType   []DamageTypeV1 `json:"by_damage_type"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
	WindowSize     int            `json:"window_size"`
	WindowOverlap  int            `json:"window_overlap"`
}
