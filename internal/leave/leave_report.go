package leave

import "sort"

// BuildReport aggregates requests into one row per employee with total
// and per-type counts. Employees without a matching request get no row.
// Rows are sorted by employee id so output is deterministic.
func BuildReport(requests []LeaveRequest) []LeaveReportRow {
	byEmployee := make(map[uint]*LeaveReportRow)

	for i := range requests {
		l := &requests[i]
		row, ok := byEmployee[l.EmployeeID]
		if !ok {
			row = &LeaveReportRow{EmployeeID: l.EmployeeID}
			if l.Employee != nil {
				row.FullName = l.Employee.FullName
			}
			byEmployee[l.EmployeeID] = row
		}

		row.TotalLeaves++
		switch l.LeaveType {
		case TypeAnnual:
			row.AnnualLeaves++
		case TypeSick:
			row.SickLeaves++
		}
	}

	rows := make([]LeaveReportRow, 0, len(byEmployee))
	for _, row := range byEmployee {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows
}
