package leave

import (
	"strings"
	"time"
)

// SortField is the closed set of sortable columns. Unrecognized input
// falls back to the start date.
type SortField int

const (
	SortByStartDate SortField = iota
	SortByEndDate
)

func ParseSortField(s string) SortField {
	if strings.EqualFold(s, "EndDate") {
		return SortByEndDate
	}
	return SortByStartDate
}

func (f SortField) Column() string {
	if f == SortByEndDate {
		return "end_date"
	}
	return "start_date"
}

type SortOrder int

const (
	OrderAsc SortOrder = iota
	OrderDesc
)

func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, "desc") {
		return OrderDesc
	}
	return OrderAsc
}

// OrderClause renders the SQL ORDER BY expression. Ties between equal
// keys keep store iteration order, which is not deterministic.
func (o SortOrder) OrderClause(f SortField) string {
	if o == OrderDesc {
		return f.Column() + " DESC"
	}
	return f.Column() + " ASC"
}

// FilterCriteria are conjunctive; nil/empty members impose no
// constraint. Keyword is a case-sensitive substring match on reason.
type FilterCriteria struct {
	EmployeeID *uint
	LeaveType  *LeaveType
	Status     *LeaveStatus
	StartFrom  *time.Time
	EndTo      *time.Time
	Keyword    string
}
