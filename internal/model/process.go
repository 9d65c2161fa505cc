package model

// ProcessNode is one entry of a transient process-table snapshot. The tree
// is rebuilt on every call; no persistent structure is kept.
type ProcessNode struct {
	PID     int    `yaml:"pid"            json:"pid"`
	PPID    int    `yaml:"ppid"           json:"ppid"`
	Command string `yaml:"command,omitempty" json:"command,omitempty"`
}

// TerminateOutcome is the tagged result of terminating one process.
// An already-dead pid reports ProcessNotFound with OK=true: the goal state
// is reached, so it is not a failure.
type TerminateOutcome struct {
	PID     int    `yaml:"pid"               json:"pid"`
	OK      bool   `yaml:"ok"                json:"ok"`
	Forced  bool   `yaml:"forced,omitempty"  json:"forced,omitempty"`
	Reason  Reason `yaml:"reason,omitempty"  json:"reason,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// TreeResult aggregates the outcomes of a bottom-up tree termination.
// OK is true only when every attempted termination succeeded; a failed
// child never aborts the remaining attempts.
type TreeResult struct {
	OK       bool               `yaml:"ok"       json:"ok"`
	Outcomes []TerminateOutcome `yaml:"outcomes" json:"outcomes"`
}
