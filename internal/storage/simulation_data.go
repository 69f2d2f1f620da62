package storage

// SimulationData holds summary data about a completed run that isn't part
// of the recorded history CSV, for use by report generation.
type SimulationData struct {
	ModelName string  `json:"modelName" yaml:"modelName"`
	NumJoints int     `json:"numJoints" yaml:"numJoints"`
	TEnd      float64 `json:"tEnd" yaml:"tEnd"`
	Steps     int     `json:"steps" yaml:"steps"`
}
