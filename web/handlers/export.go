package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"attendlog.com/attendlog/model"
	"attendlog.com/attendlog/utils"
	"attendlog.com/attendlog/web/common"
)

const (
	lateFillColor      = "FDEF81"
	overbreakFillColor = "FF9999"
)

var exportHeader = []string{"ID", "Employee ID", "Name", "Group", "Action", "Date", "Start", "End", "Elapsed", "Shift", "Lateness", "Status"}

// Export streams an xlsx workbook of the date range given by the from/to query
// params. Sessions, breaks, and halfdays land on separate sheets; late and
// overbreak rows are highlighted.
func (ep *ReportEndpoint) Export(c *gin.Context) {
	events, err := ep.store.EventsBetween(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	f, err := BuildWorkbook(events)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("attendance_report_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// BuildWorkbook lays the events out across Attendance, Breaks, and Halfday
// sheets.
func BuildWorkbook(events []model.AttendanceEvent) (*excelize.File, error) {
	f := excelize.NewFile()

	lateStyle, err := fillStyle(f, lateFillColor)
	if err != nil {
		return nil, err
	}
	overbreakStyle, err := fillStyle(f, overbreakFillColor)
	if err != nil {
		return nil, err
	}

	sheets := map[string][]model.AttendanceEvent{
		"Attendance": nil,
		"Breaks":     nil,
		"Halfday":    nil,
	}
	for _, ev := range events {
		sheets[sheetFor(ev.Kind)] = append(sheets[sheetFor(ev.Kind)], ev)
	}

	for _, name := range []string{"Attendance", "Breaks", "Halfday"} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, name, sheets[name], lateStyle, overbreakStyle); err != nil {
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return f, nil
}

func sheetFor(kind model.ActionKind) string {
	switch kind {
	case model.KindTimeIn, model.KindTimeOut, model.KindTimeInOut:
		return "Attendance"
	case model.KindHalfdayIn, model.KindHalfdayOut, model.KindHalfdayInOut:
		return "Halfday"
	default:
		return "Breaks"
	}
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
}

func writeSheet(f *excelize.File, sheet string, events []model.AttendanceEvent, lateStyle, overbreakStyle int) error {
	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	rows := utils.Map(events, func(ev model.AttendanceEvent) []any {
		return []any{
			ev.ID, ev.EmployeeID, ev.Name, ev.Group, string(ev.Kind),
			ev.Date, ev.StartTime, ev.EndTime, ev.Elapsed,
			ev.ShiftLabel, ev.Lateness, string(ev.Status),
		}
	})
	for i, values := range rows {
		row := i + 2
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}

		style := 0
		switch events[i].Status {
		case model.StatusLate:
			style = lateStyle
		case model.StatusOverbreak:
			style = overbreakStyle
		default:
			continue
		}
		first, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(values), row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, first, last, style); err != nil {
			return err
		}
	}
	return nil
}
