package model

// ActionKind identifies what an attendance log row records. The fixed kinds
// below cover the primary and halfday sessions; timed interruptions (breaks,
// errands) carry the configured action name as their kind.
type ActionKind string

const (
	KindTimeIn       ActionKind = "Time_In"
	KindTimeOut      ActionKind = "Time_Out"
	KindTimeInOut    ActionKind = "Time_in/Time_out"
	KindHalfdayIn    ActionKind = "Halfday_Time_In"
	KindHalfdayOut   ActionKind = "Halfday_Time_Out"
	KindHalfdayInOut ActionKind = "Halfday_Time_In/Halfday_Time_Out"
)

// Status is the derived punctuality classification of a log row.
type Status string

const (
	StatusNone       Status = ""
	StatusOnTime     Status = "On Time"
	StatusLate       Status = "Late"
	StatusOverbreak  Status = "Overbreak"
	StatusInvalid    Status = "Invalid Time-In"
	StatusHalfdayIn  Status = "Halfday Time-In"
	StatusHalfdayOut Status = "Halfday Time-Out"
)
