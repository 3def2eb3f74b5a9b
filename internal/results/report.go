package results

import "github.com/mind-engage/mindengage-practice/internal/session"

// Report is a Result dressed for the results page.
type Report struct {
	session.Result
	Correct  int               `json:"correct"`
	Label    string            `json:"label"`
	Grade    string            `json:"grade"`
	Insights []session.Insight `json:"insights"`
}

func NewReport(r session.Result) Report {
	return Report{
		Result:   r,
		Correct:  r.Correct(),
		Label:    session.Label(r.Score),
		Grade:    session.Grade(r.Score),
		Insights: session.Insights(r),
	}
}
