package models

// StatVector is the six-axis performance rating of a car: acceleration,
// maneuverability, traction, control, efficiency, finish. Every axis is kept
// inside [0,100] once derived stats are computed.
type StatVector struct {
	AC int `json:"ac"`
	MN int `json:"mn"`
	TR int `json:"tr"`
	CN int `json:"cn"`
	ES int `json:"es"`
	FI int `json:"fi"`
}

// SparseStatVector carries part bonuses. A nil axis contributes nothing; it
// never zeroes the running total.
type SparseStatVector struct {
	AC *int `json:"ac,omitempty"`
	MN *int `json:"mn,omitempty"`
	TR *int `json:"tr,omitempty"`
	CN *int `json:"cn,omitempty"`
	ES *int `json:"es,omitempty"`
	FI *int `json:"fi,omitempty"`
}
