package board

import (
	"html/template"

	"github.com/wrtgvr/statusboard/internal/domain"
)

const (
	ColorUp   = "#22c55e"
	ColorDown = "#ef4444"

	LabelUp   = "Up"
	LabelDown = "Down"

	indicatorStyle = "display:inline-block;width:12px;height:12px;border-radius:50%;margin-right:8px;background-color:"
)

// Row is one line of the status table: id, service name, status.
type Row struct {
	ID     string `json:"id"`
	Name   string `json:"service_name"`
	Status string `json:"status"`
	Up     bool   `json:"up"`
}

func NewRow(id domain.ServiceID, status domain.ServiceStatus) Row {
	return Row{
		ID:     id.String(),
		Name:   status.ServiceName,
		Status: status.Status,
		Up:     status.IsUp(),
	}
}

func (r Row) Label() string {
	if r.Up {
		return LabelUp
	}
	return LabelDown
}

func (r Row) IndicatorColor() string {
	if r.Up {
		return ColorUp
	}
	return ColorDown
}

// IndicatorStyle is the inline style of the round status indicator.
func (r Row) IndicatorStyle() template.CSS {
	return template.CSS(indicatorStyle + r.IndicatorColor())
}
