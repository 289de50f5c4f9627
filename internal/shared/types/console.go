package types

// ConsoleInterface defines the interface for console output.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	ProgressWithTotal(title string, total int) ProgressHandle

	CreateTable() TableInterface
	DisplayScoreBars(title string, points []ScorePoint)
}

// StatusHandle updates a status spinner.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// ProgressHandle updates a progress bar.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface defines the interface for building and rendering tables.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// ScorePoint is one labelled value on a terminal bar display, e.g. a month's
// search interest for a keyword.
type ScorePoint struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
